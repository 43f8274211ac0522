package main

import (
	"context"
	"log"
	"time"

	"mediarm/internal/app"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "mediarmctl [command]",
	Short: "mediarmctl: operate the media resource arbiter daemon",
	Long:  `mediarmctl talks to the mediarmd daemon over its UNIX socket to inspect and drive media resource arbitration.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file used when starting the daemon")
}

// controllerAPI is the subset of app.App every subcommand depends on,
// narrowed so commands can be tested against a stub controller.
type controllerAPI interface {
	Ping(ctx context.Context, timeout time.Duration) (string, error)
	ConfigGet(ctx context.Context, timeout time.Duration) (app.PolicyView, error)
	ConfigSet(ctx context.Context, timeout time.Duration, multipleSecure, secureWithNonSecure *bool) (app.PolicyView, error)
	Register(ctx context.Context, pid int, resources []app.Resource) (*app.RegisteredClient, error)
	Reclaim(ctx context.Context, timeout time.Duration, callingPid int, resources []app.Resource) (bool, error)
	Snapshot(ctx context.Context, timeout time.Duration) ([]app.ProcessView, error)
	Status() (app.DaemonStatus, error)
	StopDaemon(force bool) error
	StartDaemon() (*app.DaemonHandle, error)
}

var controllerFactory = func() controllerAPI {
	return app.New(app.Options{ConfigPath: configPath})
}

func controller() controllerAPI {
	return controllerFactory()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
