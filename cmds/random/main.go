package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/safing/random/base/info"
	"github.com/safing/random/base/random"
	"github.com/safing/random/service"
)

var (
	svcCfg = &service.ServiceConfig{}

	rootCmd = &cobra.Command{
		Use:   "random",
		Short: "Generate random values from a pluggable source",
		Long: "Generate random fractions, hex strings, identifiers, secrets and UUIDs.\n\n" +
			"Values are drawn from the fortuna CSPRNG or the operating system. With --seed, " +
			"all output is reproducible, but NOT cryptographically secure.",
		SilenceUsage: true,
	}
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&svcCfg.LogLevel, "log", "", "set log level (trace, debug, info, warning, error, critical)")
	flags.StringVar(&svcCfg.ConfigFile, "config", "", "set config file (.json or .yaml)")
	flags.StringVar(&svcCfg.Source, "source", "", "set random source (auto, fortuna, os, alea)")
	flags.StringArrayVar(&svcCfg.Seeds, "seed", nil, "seed the generator for reproducible output, may be repeated")

	rootCmd.AddCommand(versionCmd)
}

func main() {
	info.Set("random", "", "GPLv3")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withGenerator runs fn with the default generator of a started instance.
func withGenerator(fn func(cmd *cobra.Command, g *random.Generator, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		instance, err := service.New(svcCfg)
		if err != nil {
			return err
		}
		if err := instance.Start(); err != nil {
			return fmt.Errorf("failed to start: %w", err)
		}
		defer func() {
			_ = instance.Stop()
		}()

		return fn(cmd, instance.Generator(), args)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and related metadata.",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), info.FullVersion())
		return err
	},
}
