package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/safing/random/base/journal"
	"github.com/safing/random/service"
)

var (
	journalCmd = &cobra.Command{
		Use:   "journal",
		Short: "Manage named seed sequences for reproducible streams",
	}

	journalSaveCmd = &cobra.Command{
		Use:   "save <name> <seeds...>",
		Short: "Save seeds under a name",
		Args:  cobra.MinimumNArgs(2),
		RunE: withJournal(func(cmd *cobra.Command, j *journal.Journal, args []string) error {
			seeds := make([]any, 0, len(args)-1)
			for _, seed := range args[1:] {
				seeds = append(seeds, seed)
			}
			e, err := j.Save(args[0], seeds...)
			if err != nil {
				return err
			}
			return printLine(cmd, fmt.Sprintf("saved %s with %d seeds", e.Name, len(e.Seeds)))
		}),
	}

	journalShowCmd = &cobra.Command{
		Use:   "show <name> [count]",
		Short: "Show an entry and replay its stream",
		Args:  cobra.RangeArgs(1, 2),
		RunE: withJournal(func(cmd *cobra.Command, j *journal.Journal, args []string) error {
			count, err := parseLength(args, 1, 10)
			if err != nil {
				return err
			}
			e, err := j.Get(args[0])
			if err != nil {
				return err
			}
			g, err := e.Generator()
			if err != nil {
				return err
			}

			if err := printLine(cmd, fmt.Sprintf("%s: %q (created %s)", e.Name, e.Seeds, e.Created.Format(time.RFC3339))); err != nil {
				return err
			}
			return printStream(cmd, g, count)
		}),
	}

	journalListCmd = &cobra.Command{
		Use:   "list [prefix]",
		Short: "List entries",
		Args:  cobra.MaximumNArgs(1),
		RunE: withJournal(func(cmd *cobra.Command, j *journal.Journal, args []string) error {
			var prefix string
			if len(args) > 0 {
				prefix = args[0]
			}
			entries, err := j.List(prefix)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "NAME\tSEEDS\tCREATED")
			for _, e := range entries {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, strings.Join(e.Seeds, " "), e.Created.Format(time.RFC3339))
			}
			return tw.Flush()
		}),
	}

	journalDeleteCmd = &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: withJournal(func(cmd *cobra.Command, j *journal.Journal, args []string) error {
			if err := j.Delete(args[0]); err != nil {
				return err
			}
			return printLine(cmd, "deleted "+args[0])
		}),
	}
)

func init() {
	journalCmd.AddCommand(
		journalSaveCmd,
		journalShowCmd,
		journalListCmd,
		journalDeleteCmd,
	)
	rootCmd.AddCommand(journalCmd)
}

// withJournal runs fn with the configured journal. The instance is created
// for its configuration, but not started.
func withJournal(fn func(cmd *cobra.Command, j *journal.Journal, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		instance, err := service.New(svcCfg)
		if err != nil {
			return err
		}
		j, err := instance.OpenJournal()
		if err != nil {
			return err
		}
		defer func() {
			_ = j.Close()
		}()

		return fn(cmd, j, args)
	}
}
