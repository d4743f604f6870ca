package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Tomlord1122/todoey/internal/domain"
)

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func printSections(w io.Writer, list []domain.Section) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No sections.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, s := range list {
		fmt.Fprintf(tw, "%s\t%s\n", shortID(s.ID), s.Name)
	}
	tw.Flush()
}

func printItems(w io.Writer, list []domain.Item) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No items.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRIORITY\tDONE\tNAME\tDESCRIPTION\tCREATED")
	for _, i := range list {
		done := ""
		if i.IsCompleted {
			done = "x"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(i.ID), i.Priority, done, i.Name, i.Description, i.CreatedAt.Format("Jan 2, 2006"))
	}
	tw.Flush()
}
