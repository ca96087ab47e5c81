package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/shubh-37/social-manager/config"
	"github.com/shubh-37/social-manager/internal/logging"
	slackpkg "github.com/shubh-37/social-manager/internal/slack"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Slack bot",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "HTTP port for Slack events, health and metrics (env PORT)")
	_ = v.BindPFlag(config.KeyPort, serveCmd.Flags().Lookup("port"))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := cfg.ValidateSlack(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	log := logging.ForService(logger, "social-manager")
	log.Info("social media manager bot starting")

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	api := newBackend(reg, log)

	slackClient, err := slackpkg.NewClient(ctx, cfg.SlackToken)
	if err != nil {
		return err
	}
	botID := slackClient.GetBotID()

	approvals := slackpkg.NewApprovalHandler(slackClient, botID, cfg.ConfirmTimeout, log)
	sessions := slackpkg.NewSessionStore(api, approvals, log)
	commands := slackpkg.NewCommandHandler(slackClient, sessions, cfg.Defaults, log)
	messages := slackpkg.NewMessageHandler(botID, commands, log)
	server := slackpkg.NewServer(messages, approvals, cfg.SlackSigningSecret, reg, log)

	log.WithField("backend", api.BaseURL()).Info("bot is running, press Ctrl+C to stop")
	if err := server.Start(ctx, cfg.Port); err != nil {
		return fmt.Errorf("slack server: %w", err)
	}
	log.Info("shut down gracefully")
	return nil
}
