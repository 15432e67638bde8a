// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-toolkit/internal/sign"
	"github.com/pdiddy/pdf-toolkit/internal/toolkit"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Add a text, image or rendered signature",
	Long: `Sign stamps a signature on one page of a PDF and writes signed_<name>.pdf.
--position picks bottom-left, bottom-right, both, or custom; custom places a
signature at every --at x,y given (points from the top-left corner).`,
}

var signTextCmd = &cobra.Command{
	Use:   "text <file.pdf> <text>",
	Short: "Sign with a line of text",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pl, name, err := placementFlags(cmd)
		if err != nil {
			return err
		}
		return withToolkit(func(tk *toolkit.Toolkit) types.Result {
			return tk.SignText(cmd.Context(), args[0], "", name, pl, args[1], 0)
		})
	},
}

var signImageCmd = &cobra.Command{
	Use:   "image <file.pdf> <signature-image>",
	Short: "Sign with an image, scaled to fit --width x --height",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pl, name, err := placementFlags(cmd)
		if err != nil {
			return err
		}
		return withToolkit(func(tk *toolkit.Toolkit) types.Result {
			return tk.SignImage(cmd.Context(), args[0], "", name, pl, args[1], 0, 0)
		})
	},
}

var signRenderedCmd = &cobra.Command{
	Use:   "rendered <file.pdf> <text>",
	Short: "Sign with text drawn as an image",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pl, name, err := placementFlags(cmd)
		if err != nil {
			return err
		}
		return withToolkit(func(tk *toolkit.Toolkit) types.Result {
			return tk.SignRendered(cmd.Context(), args[0], "", name, pl, args[1])
		})
	},
}

// --- shared helpers ---

func placementFlags(cmd *cobra.Command) (sign.Placement, string, error) {
	name, _ := cmd.Flags().GetString("name")
	page, _ := cmd.Flags().GetInt("page")
	position, _ := cmd.Flags().GetString("position")
	at, _ := cmd.Flags().GetStringArray("at")

	preset, err := sign.ParsePreset(position)
	if err != nil {
		return sign.Placement{}, "", err
	}
	pl := sign.Placement{Page: page, Preset: preset}
	for _, s := range at {
		p, err := parsePoint(s)
		if err != nil {
			return sign.Placement{}, "", err
		}
		pl.Custom = append(pl.Custom, p)
	}
	if len(pl.Custom) > 0 && !cmd.Flags().Changed("position") {
		pl.Preset = types.PresetCustom
	}
	return pl, name, nil
}

// parsePoint reads "x,y".
func parsePoint(s string) (types.Position, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return types.Position{}, fmt.Errorf("position %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return types.Position{}, fmt.Errorf("position %q: bad x: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return types.Position{}, fmt.Errorf("position %q: bad y: %w", s, err)
	}
	return types.Position{X: x, Y: y}, nil
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	signCmd.PersistentFlags().String("name", "", "output file name (default signed_<name>.pdf)")
	signCmd.PersistentFlags().Int("page", 1, "page to sign (1-based)")
	signCmd.PersistentFlags().String("position", "bottom-left", "bottom-left, bottom-right, both or custom")
	signCmd.PersistentFlags().StringArray("at", nil, "custom position x,y in points from the top-left (repeatable)")
	signCmd.PersistentFlags().Float64("margin", 0, "distance of preset positions from the page edge (default 50)")
	bindFlag("sign.margin", signCmd.PersistentFlags().Lookup("margin"))

	signTextCmd.Flags().Float64("font-size", 0, "font size in points (default 14)")
	bindFlag("sign.text_size", signTextCmd.Flags().Lookup("font-size"))

	signImageCmd.Flags().Float64("width", 0, "signature box width in points (default 150)")
	signImageCmd.Flags().Float64("height", 0, "signature box height in points (default 75)")
	bindFlag("sign.image_width", signImageCmd.Flags().Lookup("width"))
	bindFlag("sign.image_height", signImageCmd.Flags().Lookup("height"))

	signRenderedCmd.Flags().Float64("width", 0, "signature box width in points (default 200)")
	signRenderedCmd.Flags().Float64("height", 0, "signature box height in points (default 100)")
	bindFlag("sign.rendered_width", signRenderedCmd.Flags().Lookup("width"))
	bindFlag("sign.rendered_height", signRenderedCmd.Flags().Lookup("height"))

	// Wire subcommands.
	signCmd.AddCommand(signTextCmd)
	signCmd.AddCommand(signImageCmd)
	signCmd.AddCommand(signRenderedCmd)

	rootCmd.AddCommand(signCmd)
}
