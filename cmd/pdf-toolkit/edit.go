// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-toolkit/internal/edit"
	"github.com/pdiddy/pdf-toolkit/internal/toolkit"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Delete, rotate or extract pages, or add text",
	Long: `Edit changes the pages of a PDF and writes the result to a new file.
Page lists are 1-based and accept single pages and ranges: "1,3,5-7".`,
}

// --- delete subcommand ---

var editDeleteCmd = &cobra.Command{
	Use:   "delete <file.pdf>",
	Short: "Remove pages from a PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pages, name := pageFlags(cmd)
		return withToolkit(func(tk *toolkit.Toolkit) types.Result {
			return tk.DeletePages(cmd.Context(), args[0], pages, "", name)
		})
	},
}

// --- rotate subcommand ---

var editRotateCmd = &cobra.Command{
	Use:   "rotate <file.pdf>",
	Short: "Rotate pages clockwise by a multiple of 90 degrees",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pages, name := pageFlags(cmd)
		degrees, _ := cmd.Flags().GetInt("degrees")
		return withToolkit(func(tk *toolkit.Toolkit) types.Result {
			return tk.RotatePages(cmd.Context(), args[0], pages, degrees, "", name)
		})
	},
}

// --- extract subcommand ---

var editExtractCmd = &cobra.Command{
	Use:   "extract <file.pdf>",
	Short: "Copy pages into a new PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pages, name := pageFlags(cmd)
		return withToolkit(func(tk *toolkit.Toolkit) types.Result {
			return tk.ExtractPages(cmd.Context(), args[0], pages, "", name)
		})
	},
}

// --- text subcommand ---

var editTextCmd = &cobra.Command{
	Use:   "text <file.pdf> <text>",
	Short: "Write text on a page",
	Long: `Text writes a line of black Helvetica text on one page. --x and --y
are measured in points from the top-left corner of the page and mark the
lower-left corner of the text, just below its baseline.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		page, _ := cmd.Flags().GetInt("page")
		x, _ := cmd.Flags().GetFloat64("x")
		y, _ := cmd.Flags().GetFloat64("y")
		size, _ := cmd.Flags().GetFloat64("font-size")

		req := edit.TextRequest{
			Page:     page,
			Text:     args[1],
			Pos:      types.Position{X: x, Y: y},
			FontSize: size,
		}
		return withToolkit(func(tk *toolkit.Toolkit) types.Result {
			return tk.AddText(cmd.Context(), args[0], req, "", name)
		})
	},
}

// --- shared helpers ---

func pageFlags(cmd *cobra.Command) (pages, name string) {
	pages, _ = cmd.Flags().GetString("pages")
	name, _ = cmd.Flags().GetString("name")
	return pages, name
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	editCmd.PersistentFlags().String("name", "", "output file name")

	for _, c := range []*cobra.Command{editDeleteCmd, editRotateCmd, editExtractCmd} {
		c.Flags().StringP("pages", "p", "", `pages to edit, e.g. "1,3,5-7"`)
		c.MarkFlagRequired("pages")
	}
	editRotateCmd.Flags().IntP("degrees", "d", 90, "clockwise rotation, a multiple of 90")

	editTextCmd.Flags().Int("page", 1, "page to write on (1-based)")
	editTextCmd.Flags().Float64("x", 72, "distance from the left edge in points")
	editTextCmd.Flags().Float64("y", 72, "distance from the top edge in points")
	editTextCmd.Flags().Float64("font-size", 0, "font size in points (default 12)")
	bindFlag("edit.font_size", editTextCmd.Flags().Lookup("font-size"))

	// Wire subcommands.
	editCmd.AddCommand(editDeleteCmd)
	editCmd.AddCommand(editRotateCmd)
	editCmd.AddCommand(editExtractCmd)
	editCmd.AddCommand(editTextCmd)

	rootCmd.AddCommand(editCmd)
}
