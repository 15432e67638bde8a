// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-toolkit/internal/journal"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the operation journal (list, export, verify)",
	Long: `History reads the journal kept when journal.path (or --journal) is set.
Every operation is recorded with its inputs, outcome and the files it wrote,
each with a BLAKE2b digest so later changes can be detected.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded operations, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(context.Background(), queryOptsFromFlags(cmd))
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No operations recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-19s  %-14s  %-6s  %s\n", "ID", "When", "Operation", "Status", "Message")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))
	for _, e := range entries {
		status := "ok"
		if !e.OK {
			status = "failed"
		}
		msg := e.Message
		if len(msg) > 40 {
			msg = msg[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-19s  %-14s  %-6s  %s\n",
			e.ID, e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Op, status, msg)
	}
	fmt.Fprintf(os.Stdout, "\n%d operations\n", len(entries))
	return nil
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the journal to YAML or JSON",
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")

	store, err := openJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	w := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer f.Close()
		w = f
	}

	opts := queryOptsFromFlags(cmd)
	switch format {
	case "yaml", "":
		err = store.ExportYAML(context.Background(), w, opts)
	case "json":
		err = store.ExportJSON(context.Background(), w, opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	if outPath != "" {
		fmt.Fprintln(os.Stderr, "Exported to", outPath)
	}
	return nil
}

// --- verify subcommand ---

var historyVerifyCmd = &cobra.Command{
	Use:   "verify <operation-id>",
	Short: "Check that an operation's outputs are unchanged on disk",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openJournal()
		if err != nil {
			return err
		}
		defer store.Close()

		result, err := store.Verify(context.Background(), args[0])
		if err != nil {
			return err
		}

		paths := make([]string, 0, len(result))
		for p := range result {
			paths = append(paths, p)
		}
		sort.Strings(paths)

		changed := 0
		for _, p := range paths {
			if result[p] {
				fmt.Fprintf(os.Stdout, "unchanged: %s\n", p)
				continue
			}
			fmt.Fprintf(os.Stdout, "changed:   %s\n", p)
			changed++
		}
		if changed > 0 {
			fmt.Fprintf(os.Stderr, "ERROR: %d of %d outputs changed or missing\n", changed, len(paths))
			return errReported
		}
		return nil
	},
}

// --- shared helpers ---

func openJournal() (*journal.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Journal.Path == "" {
		return nil, fmt.Errorf("no journal configured: set journal.path or pass --journal")
	}
	return journal.Open(cfg.Journal.Path)
}

func queryOptsFromFlags(cmd *cobra.Command) journal.QueryOptions {
	op, _ := cmd.Flags().GetString("op")
	failed, _ := cmd.Flags().GetBool("failed")
	limit, _ := cmd.Flags().GetInt("limit")
	return journal.QueryOptions{Op: op, FailedOnly: failed, Limit: limit}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	historyCmd.PersistentFlags().String("op", "", "filter by operation: split, merge, compress, convert, sign, ...")
	historyCmd.PersistentFlags().Bool("failed", false, "only failed operations")

	historyListCmd.Flags().Int("limit", 0, "maximum operations to list (0 = 50)")

	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	historyExportCmd.Flags().String("out", "", "write to this file instead of stdout")

	// Wire subcommands.
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyVerifyCmd)

	rootCmd.AddCommand(historyCmd)
}
