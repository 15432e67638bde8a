// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-toolkit/internal/toolkit"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

var compressCmd = &cobra.Command{
	Use:   "compress <file.pdf>",
	Short: "Shrink a PDF",
	Long: `Compress rewrites a PDF with unused objects removed and streams
compressed, and reports the size before and after.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		return withToolkit(func(tk *toolkit.Toolkit) types.Result {
			return tk.Compress(cmd.Context(), args[0], "", name)
		})
	},
}

func init() {
	compressCmd.Flags().String("name", "", "output file name (default compressed_<name>.pdf)")

	rootCmd.AddCommand(compressCmd)
}
