package main

import (
	"fmt"
	"os"
	"time"

	"mediarm/internal/app"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(cmdConfig)
	cmdConfig.AddCommand(cmdConfigGet)
	cmdConfig.AddCommand(cmdConfigSet)

	cmdConfigGet.Flags().IntVarP(&configTimeoutSeconds, "timeout", "t", 2, "Timeout in seconds for contacting the daemon")

	cmdConfigSet.Flags().IntVarP(&configTimeoutSeconds, "timeout", "t", 2, "Timeout in seconds for contacting the daemon")
	cmdConfigSet.Flags().StringVar(&configMultipleSecure, "multiple-secure-codecs", "", "Set supports-multiple-secure-codecs (true|false)")
	cmdConfigSet.Flags().StringVar(&configSecureWithNonSecure, "secure-with-non-secure-codec", "", "Set supports-secure-with-non-secure-codec (true|false)")
}

var configTimeoutSeconds int
var configMultipleSecure string
var configSecureWithNonSecure string

var cmdConfig = &cobra.Command{
	Use:   "config",
	Short: "Read or update the daemon's codec policy flags",
}

var cmdConfigGet = &cobra.Command{
	Use:   "get",
	Short: "Print the daemon's current policy flags",
	RunE: func(cmd *cobra.Command, args []string) error {
		policy, err := controller().ConfigGet(cmd.Context(), time.Duration(configTimeoutSeconds)*time.Second)
		if err != nil {
			return err
		}
		printPolicy(policy)
		return nil
	},
}

var cmdConfigSet = &cobra.Command{
	Use:   "set",
	Short: "Update the daemon's policy flags",
	RunE: func(cmd *cobra.Command, args []string) error {
		multipleSecure, err := parseOptionalBoolFlag(configMultipleSecure)
		if err != nil {
			return fmt.Errorf("--multiple-secure-codecs: %w", err)
		}
		secureWithNonSecure, err := parseOptionalBoolFlag(configSecureWithNonSecure)
		if err != nil {
			return fmt.Errorf("--secure-with-non-secure-codec: %w", err)
		}
		policy, err := controller().ConfigSet(cmd.Context(), time.Duration(configTimeoutSeconds)*time.Second, multipleSecure, secureWithNonSecure)
		if err != nil {
			return err
		}
		printPolicy(policy)
		return nil
	},
}

func parseOptionalBoolFlag(v string) (*bool, error) {
	switch v {
	case "":
		return nil, nil
	case "true", "1":
		b := true
		return &b, nil
	case "false", "0":
		b := false
		return &b, nil
	default:
		return nil, fmt.Errorf("invalid boolean %q", v)
	}
}

func printPolicy(policy app.PolicyView) {
	fmt.Fprintf(os.Stdout, "supports-multiple-secure-codecs=%t supports-secure-with-non-secure-codec=%t\n",
		policy.SupportsMultipleSecureCodecs, policy.SupportsSecureWithNonSecureCodec)
}
