package main

import (
	"fmt"

	"mediarm/internal/tui"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(cmdWatch)
}

var cmdWatch = &cobra.Command{
	Use:   "watch",
	Short: "Launch an interactive terminal UI showing live registry state",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := tui.Run(controller()); err != nil {
			return fmt.Errorf("watch exited with error: %w", err)
		}
		return nil
	},
}
