// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-toolkit/internal/toolkit"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <a.pdf> <b.pdf> [more.pdf...]",
	Short: "Merge several PDFs into one",
	Long: `Merge appends the pages of every input, in the order given, into a single
PDF (merged_output.pdf unless --name is set). Use --preview to list the
inputs with their page counts without writing anything.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMerge,
}

func runMerge(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	preview, _ := cmd.Flags().GetBool("preview")

	if !preview {
		return withToolkit(func(tk *toolkit.Toolkit) types.Result {
			return tk.Merge(cmd.Context(), args, "", name)
		})
	}

	tk, closeFn, err := openToolkit()
	if err != nil {
		return err
	}
	defer closeFn()

	sum, res := tk.PreviewMerge(args)
	if !res.OK {
		return report(res)
	}
	fmt.Fprintln(os.Stdout, "Files to merge:")
	sum.Print(os.Stdout)
	return nil
}

func init() {
	mergeCmd.Flags().String("name", "", "output file name (default merged_output.pdf)")
	mergeCmd.Flags().Bool("preview", false, "list inputs and page counts without merging")

	rootCmd.AddCommand(mergeCmd)
}
