// Package main is the entry point for the todoey CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tomlord1122/todoey/internal/app"
	"github.com/Tomlord1122/todoey/internal/config"
	"github.com/Tomlord1122/todoey/internal/service"
)

// Version is set at build time via ldflags.
var Version = "dev"

// openStores is replaced in tests to share one memory store across runs.
var openStores = app.OpenStores

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// cli carries the managers opened for one invocation.
type cli struct {
	stores   *app.Stores
	items    *service.ItemManager
	sections *service.SectionManager
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	rootCmd := &cobra.Command{
		Use:   "todoey",
		Short: "todoey - sections and to-do items from the terminal",
		Long: `todoey manages to-do items grouped into sections.

Items are listed by priority (high first) and then by name. Completed
items are hidden unless --all is given.

The store is selected with TODOEY_STORE (postgres or memory) and the
TODOEY_DB_* variables; a .env file in the working directory is read.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.stores == nil {
				return nil
			}
			return c.stores.Close()
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("todoey version {{.Version}}\n")

	rootCmd.AddCommand(
		newSectionsCmd(c),
		newSectionCmd(c),
		newItemsCmd(c),
		newItemCmd(c),
	)
	return rootCmd
}

func (c *cli) open(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	stores, err := openStores(cfg)
	if err != nil {
		return err
	}
	if cfg.Store == config.StoreMemory {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: memory store does not persist between invocations")
	}
	c.stores = stores
	c.items = service.NewItemManager(stores.Items, nil)
	c.sections = service.NewSectionManager(stores.Sections, nil)
	return nil
}
