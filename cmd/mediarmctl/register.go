package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"mediarm/internal/app"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(cmdRegister)
}

var cmdRegister = &cobra.Command{
	Use:   "register <pid> <resource>=<value>...",
	Short: "Register a synthetic client holding the given resources against pid",
	Long: `Opens a callback stream, registers the given resources on behalf of pid, and
keeps the stream open (auto-acknowledging reclaim requests) until interrupted.
Useful for exercising the daemon without a real media codec client.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, err := strconv.Atoi(args[0])
		if err != nil || pid <= 0 {
			return errors.New("pid must be a positive integer")
		}
		resources, err := app.ParseResources(args[1:])
		if err != nil {
			return err
		}

		rc, err := controller().Register(cmd.Context(), pid, resources)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Registered client %d for pid %d. Press Ctrl+C to release.\n", rc.ClientID, pid)

		spin := spinner.New(spinner.CharSets[21], 120*time.Millisecond, spinner.WithWriter(os.Stdout))
		spin.Suffix = " Holding resources..."
		spin.Start()

		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		<-sigc

		spin.Stop()
		rc.Close()
		fmt.Fprintln(os.Stdout, "Released.")
		return nil
	},
}
