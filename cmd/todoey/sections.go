package main

import (
	"github.com/spf13/cobra"

	"github.com/Tomlord1122/todoey/internal/domain"
	"github.com/Tomlord1122/todoey/internal/service"
)

func newSectionsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List sections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec := &service.Recorder[domain.Section]{}
			c.sections.WithObserver(rec).FetchSections(cmd.Context())
			return c.showSections(cmd, rec)
		},
	}
}

func newSectionCmd(c *cli) *cobra.Command {
	sectionCmd := &cobra.Command{
		Use:   "section",
		Short: "Create, rename or delete a section",
	}

	sectionCmd.AddCommand(
		&cobra.Command{
			Use:   "add <name>",
			Short: "Create a section",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				rec := &service.Recorder[domain.Section]{}
				c.sections.WithObserver(rec).CreateSection(cmd.Context(), args[0])
				return c.showSections(cmd, rec)
			},
		},
		&cobra.Command{
			Use:   "rename <section> <name>",
			Short: "Rename a section",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				section, err := c.resolveSection(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				rec := &service.Recorder[domain.Section]{}
				c.sections.WithObserver(rec).EditSection(cmd.Context(), section, args[1])
				return c.showSections(cmd, rec)
			},
		},
		&cobra.Command{
			Use:   "rm <section>",
			Short: "Delete a section and all of its items",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				section, err := c.resolveSection(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				rec := &service.Recorder[domain.Section]{}
				c.sections.WithObserver(rec).DeleteSection(cmd.Context(), section)
				return c.showSections(cmd, rec)
			},
		},
	)
	return sectionCmd
}

func (c *cli) showSections(cmd *cobra.Command, rec *service.Recorder[domain.Section]) error {
	list, err := rec.Result()
	if err != nil {
		return err
	}
	printSections(cmd.OutOrStdout(), list)
	return nil
}
