package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shubh-37/social-manager/config"
	"github.com/shubh-37/social-manager/internal/backend"
	"github.com/shubh-37/social-manager/internal/logging"
)

var (
	v      = viper.New()
	cfg    *config.Config
	logger *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "social-manager",
	Short: "Turn a business website into a week of social media posts",
	Long: `social-manager reads a business website, pulls industry news, drafts
posts in the chosen tone and plans them across the week. It runs as a
Slack bot (serve) or one command at a time from the terminal.`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.String("backend-url", "", "backend origin, /api is appended (env BACKEND_URL)")
	flags.String("log-level", "", "debug, info, warn or error (env LOG_LEVEL)")
	flags.String("log-format", "", "json or text (env LOG_FORMAT)")
	flags.Duration("request-timeout", 0, "timeout per backend request, 0 for none (env REQUEST_TIMEOUT)")

	_ = v.BindPFlag(config.KeyBackendURL, flags.Lookup("backend-url"))
	_ = v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = v.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))
	_ = v.BindPFlag(config.KeyRequestTimeout, flags.Lookup("request-timeout"))
}

func initConfig(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.LoadConfig(v)
	if err != nil {
		return err
	}
	logger = logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	logger.SetOutput(cmd.ErrOrStderr())
	return cfg.Validate()
}

// signalContext is cancelled on Ctrl+C or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func newBackend(reg prometheus.Registerer, log *logrus.Entry) *backend.Client {
	return backend.NewClient(cfg.BackendURL,
		backend.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		backend.WithMetrics(backend.NewMetrics(reg)),
		backend.WithLogger(log),
	)
}
