// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf-toolkit/internal/pagerange"
	"github.com/pdiddy/pdf-toolkit/internal/split"
	"github.com/pdiddy/pdf-toolkit/internal/toolkit"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

var splitCmd = &cobra.Command{
	Use:   "split <file.pdf>",
	Short: "Split a PDF into several files",
	Long: `Split writes consecutive page ranges of a PDF into separate files named
<name>_part_<n>.pdf. Use --size for parts of equal length (the last part may
be shorter) or --sizes for an explicit list such as "3,2,4". Splitting starts
at --start (1-based).

With --dry-run the resolved parts are printed and nothing is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func runSplit(cmd *cobra.Command, args []string) error {
	size, _ := cmd.Flags().GetInt("size")
	sizes, _ := cmd.Flags().GetString("sizes")
	start, _ := cmd.Flags().GetInt("start")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	asYAML, _ := cmd.Flags().GetBool("yaml")

	req := toolkit.SplitRequest{Input: args[0], Size: size, Sizes: sizes, Start: start}

	if !dryRun {
		return withToolkit(func(tk *toolkit.Toolkit) types.Result {
			return tk.Split(cmd.Context(), req)
		})
	}

	tk, closeFn, err := openToolkit()
	if err != nil {
		return err
	}
	defer closeFn()

	parts, res := tk.PlanSplit(req)
	if !res.OK {
		return report(res)
	}
	if asYAML {
		return printPlanYAML(req, parts)
	}
	for i, p := range parts {
		fmt.Fprintf(os.Stdout, "%d. %s (pages %s, %d pages)\n", i+1, filepath.Base(p.Path), pagerange.Selection(p.Pages), p.Pages.Len())
	}
	fmt.Fprintf(os.Stdout, "\n%d files\n", len(parts))
	return nil
}

// splitPlanDoc is the YAML shape printed by split --dry-run --yaml.
type splitPlanDoc struct {
	Input string       `yaml:"input"`
	Plan  split.Plan   `yaml:"plan"`
	Parts []split.Part `yaml:"parts"`
}

func printPlanYAML(req toolkit.SplitRequest, parts []split.Part) error {
	doc := splitPlanDoc{
		Input: req.Input,
		Plan:  split.Plan{Size: req.Size, Start: req.Start},
		Parts: parts,
	}
	if req.Sizes != "" {
		doc.Plan.Size = 0
		doc.Plan.Sizes, _ = pagerange.ParseSizes(req.Sizes)
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("marshaling plan: %w", err)
	}
	return enc.Close()
}

func init() {
	splitCmd.Flags().IntP("size", "s", 0, "pages per output file")
	splitCmd.Flags().String("sizes", "", `comma-separated pages per file, e.g. "3,2,4" (overrides --size)`)
	splitCmd.Flags().Int("start", 1, "first page to split from (1-based)")
	splitCmd.Flags().Bool("dry-run", false, "print the parts without writing files")
	splitCmd.Flags().Bool("yaml", false, "with --dry-run, print the plan as YAML")

	rootCmd.AddCommand(splitCmd)
}
