// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-toolkit/internal/toolkit"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file> [files...]",
	Short: "Convert between PDF, Word and image files",
	Long: `Convert picks the direction from each file's extension: a PDF becomes a
Word document, a Word document becomes a PDF, and an image (JPEG, PNG, BMP,
GIF, TIFF, WebP) becomes a one-page PDF.

Word conversions need LibreOffice, either installed locally (soffice) or run
from a container image with --backend container. Several files are
converted as a batch under their default names (<name>_converted.<ext>).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	skipExisting, _ := cmd.Flags().GetBool("skip-existing")

	if len(args) > 1 && name != "" {
		return fmt.Errorf("--name applies to a single file, got %d", len(args))
	}

	return withToolkit(func(tk *toolkit.Toolkit) types.Result {
		if len(args) == 1 && !skipExisting {
			return tk.Convert(cmd.Context(), args[0], "", name)
		}
		return tk.ConvertBatch(cmd.Context(), args, "", skipExisting)
	})
}

func init() {
	convertCmd.Flags().String("name", "", "output file name for a single input (default <name>_converted.<ext>)")
	convertCmd.Flags().Bool("skip-existing", false, "skip inputs whose output already exists")
	convertCmd.Flags().String("backend", "local", "LibreOffice backend: local or container")
	convertCmd.Flags().String("image", "", "container image for --backend container")
	convertCmd.Flags().Duration("timeout", 0, "time limit for one LibreOffice run (default 2m)")

	bindFlag("convert.backend", convertCmd.Flags().Lookup("backend"))
	bindFlag("convert.image", convertCmd.Flags().Lookup("image"))
	bindFlag("convert.timeout", convertCmd.Flags().Lookup("timeout"))

	rootCmd.AddCommand(convertCmd)
}
