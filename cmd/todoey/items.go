package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tomlord1122/todoey/internal/domain"
	"github.com/Tomlord1122/todoey/internal/service"
)

func newItemsCmd(c *cli) *cobra.Command {
	var search string
	var all bool

	cmd := &cobra.Command{
		Use:   "items <section>",
		Short: "List the items of a section",
		Long: `List the items of a section, highest priority first.

The section may be given by ID, ID prefix or name.

Examples:
  todoey items Work
  todoey items Work --search report
  todoey items 3f1c --all`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, err := c.resolveSection(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			rec := &service.Recorder[domain.Item]{}
			c.items.WithObserver(rec).FetchItems(cmd.Context(), service.ItemQuery{
				SearchText:    search,
				SectionID:     section.ID,
				ShowCompleted: all,
			})
			return c.showItems(cmd, rec)
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "only items whose name contains this text")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include completed items")
	return cmd
}

func newItemCmd(c *cli) *cobra.Command {
	itemCmd := &cobra.Command{
		Use:   "item",
		Short: "Create, edit, complete or delete an item",
	}
	itemCmd.AddCommand(
		newItemAddCmd(c),
		newItemEditCmd(c),
		&cobra.Command{
			Use:   "done <section> <item>",
			Short: "Mark an item as completed",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, item, err := c.resolveSectionItem(cmd, args)
				if err != nil {
					return err
				}
				rec := &service.Recorder[domain.Item]{}
				c.items.WithObserver(rec).CompleteItem(cmd.Context(), item)
				return c.showItems(cmd, rec)
			},
		},
		&cobra.Command{
			Use:   "rm <section> <item>",
			Short: "Delete an item",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				section, item, err := c.resolveSectionItem(cmd, args)
				if err != nil {
					return err
				}
				rec := &service.Recorder[domain.Item]{}
				c.items.WithObserver(rec).DeleteItem(cmd.Context(), item, section)
				return c.showItems(cmd, rec)
			},
		},
	)
	return itemCmd
}

func newItemAddCmd(c *cli) *cobra.Command {
	var desc, priority string

	cmd := &cobra.Command{
		Use:   "add <section> <name>",
		Short: "Create an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := domain.ParsePriority(priority)
			if err != nil {
				return err
			}
			section, err := c.resolveSection(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			rec := &service.Recorder[domain.Item]{}
			c.items.WithObserver(rec).CreateItem(cmd.Context(), args[1], desc, p, section)
			return c.showItems(cmd, rec)
		},
	}
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "item description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "medium", "high, medium or low")
	return cmd
}

func newItemEditCmd(c *cli) *cobra.Command {
	var name, desc, priority string

	cmd := &cobra.Command{
		Use:   "edit <section> <item>",
		Short: "Change the name, description or priority of an item",
		Long: `Change the name, description or priority of an item.
Fields whose flag is not given keep their current value.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("name") && !flags.Changed("desc") && !flags.Changed("priority") {
				return fmt.Errorf("nothing to change: give --name, --desc or --priority")
			}
			_, item, err := c.resolveSectionItem(cmd, args)
			if err != nil {
				return err
			}

			newName, newDesc, newPriority := item.Name, item.Description, item.Priority
			if flags.Changed("name") {
				newName = name
			}
			if flags.Changed("desc") {
				newDesc = desc
			}
			if flags.Changed("priority") {
				if newPriority, err = domain.ParsePriority(priority); err != nil {
					return err
				}
			}

			rec := &service.Recorder[domain.Item]{}
			c.items.WithObserver(rec).EditItem(cmd.Context(), item, newName, newDesc, newPriority)
			return c.showItems(cmd, rec)
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "new name")
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "new description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "new priority: high, medium or low")
	return cmd
}

func (c *cli) resolveSectionItem(cmd *cobra.Command, args []string) (*domain.Section, *domain.Item, error) {
	section, err := c.resolveSection(cmd.Context(), args[0])
	if err != nil {
		return nil, nil, err
	}
	item, err := c.resolveItem(cmd.Context(), section, args[1])
	if err != nil {
		return nil, nil, err
	}
	return section, item, nil
}

func (c *cli) showItems(cmd *cobra.Command, rec *service.Recorder[domain.Item]) error {
	list, err := rec.Result()
	if err != nil {
		return err
	}
	printItems(cmd.OutOrStdout(), list)
	return nil
}
