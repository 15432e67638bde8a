// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <file> [files...]",
	Short: "Show page count, dimensions and size of files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tk, closeFn, err := openToolkit()
		if err != nil {
			return err
		}
		defer closeFn()

		failed := 0
		for _, path := range args {
			res := tk.Info(path)
			if !res.OK {
				fmt.Fprintln(os.Stderr, "ERROR:", res.Message)
				failed++
				continue
			}
			fmt.Fprintln(os.Stdout, res.Message)
		}
		if failed > 0 {
			return errReported
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
