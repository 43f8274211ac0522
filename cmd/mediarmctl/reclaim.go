package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"mediarm/internal/app"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(cmdReclaim)
	cmdReclaim.Flags().IntVarP(&reclaimTimeoutSeconds, "timeout", "t", 5, "Timeout in seconds for the reclaim RPC")
}

var reclaimTimeoutSeconds int

var cmdReclaim = &cobra.Command{
	Use:   "reclaim <calling-pid> <resource>=<value>...",
	Short: "Ask the daemon to free up the given resources on behalf of calling-pid",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, err := strconv.Atoi(args[0])
		if err != nil || pid <= 0 {
			return errors.New("calling-pid must be a positive integer")
		}
		resources, err := app.ParseResources(args[1:])
		if err != nil {
			return err
		}

		success, err := controller().Reclaim(cmd.Context(), time.Duration(reclaimTimeoutSeconds)*time.Second, pid, resources)
		if err != nil {
			return err
		}
		if success {
			fmt.Fprintln(os.Stdout, "reclaimed")
			return nil
		}
		fmt.Fprintln(os.Stdout, "no victim found")
		return nil
	},
}
