package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/safing/random/base/log"
	"github.com/safing/random/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve random values over the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  serve,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(cmd *cobra.Command, _ []string) error {
	svcCfg.EnableAPI = true
	instance, err := service.New(svcCfg)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := instance.Start(); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	log.Infof("random: serving, source is %s", instance.Generator().Kind())

	<-ctx.Done()
	log.Info("random: shutting down")
	return instance.Stop()
}

