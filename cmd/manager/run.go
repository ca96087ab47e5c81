package main

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/shubh-37/social-manager/config"
	"github.com/shubh-37/social-manager/internal/logging"
	"github.com/shubh-37/social-manager/internal/manager"
	"github.com/shubh-37/social-manager/internal/models"
)

var runCmd = &cobra.Command{
	Use:     "run",
	Short:   "Generate drafts for a website and schedule them",
	Example: "  social-manager run --url https://crumb.example --tone friendly --count 3 --days Mon,Wed,Fri",
	Args:    cobra.NoArgs,
	RunE:    runPipeline,
}

func init() {
	flags := runCmd.Flags()
	flags.String("url", "", "business website to read")
	flags.String("tone", "", "tone of the posts (env DEFAULT_TONE)")
	flags.String("type", "", "promo, business_tips, industry_insights, seasonal or general (env DEFAULT_POST_TYPE)")
	flags.Int("count", 0, "number of posts to generate (env DEFAULT_POST_COUNT)")
	flags.Int("frequency", 0, "posts per week (env DEFAULT_FREQUENCY)")
	flags.String("days", "", "preferred days in order, e.g. Mon,Wed,Fri (env DEFAULT_DAYS)")
	flags.String("publish", "", "publish the post for this day once scheduled")
	_ = runCmd.MarkFlagRequired("url")

	_ = v.BindPFlag(config.KeyDefaultTone, flags.Lookup("tone"))
	_ = v.BindPFlag(config.KeyDefaultPostType, flags.Lookup("type"))
	_ = v.BindPFlag(config.KeyDefaultPostCount, flags.Lookup("count"))
	_ = v.BindPFlag(config.KeyDefaultFrequency, flags.Lookup("frequency"))
	_ = v.BindPFlag(config.KeyDefaultDays, flags.Lookup("days"))

	rootCmd.AddCommand(runCmd)
}

func newManager(cmd *cobra.Command, assumeYes bool) *manager.Manager {
	log := logging.ForService(logger, "social-manager")
	return manager.New(newBackend(prometheus.NewRegistry(), log),
		manager.WithPrompter(newTerminalPrompter(cmd.InOrStdin(), cmd.ErrOrStderr(), assumeYes)),
		manager.WithLogger(log),
	)
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	ctx, stop := signalContext(cmd)
	defer stop()

	out := cmd.OutOrStdout()
	mgr := newManager(cmd, false)
	mgr.Load(ctx)

	url, _ := cmd.Flags().GetString("url")
	err := mgr.Generate(ctx, manager.GenerateRequest{
		BusinessURL: url,
		Preferences: cfg.Defaults.Preferences,
	})
	printGeneration(out, mgr.Snapshot().Generation)
	if err != nil {
		return err
	}

	err = mgr.CreateSchedule(ctx, cfg.Defaults.Frequency, cfg.Defaults.Days)
	printSchedule(out, mgr.Schedule())
	if err != nil {
		return err
	}

	raw, _ := cmd.Flags().GetString("publish")
	if raw == "" {
		return nil
	}
	day, err := models.ParseWeekday(raw)
	if err != nil {
		return err
	}
	return connectAndPublish(ctx, out, mgr, day)
}

// connectAndPublish links the page first; a fresh process is never
// connected yet.
func connectAndPublish(ctx context.Context, out io.Writer, mgr *manager.Manager, day models.Weekday) error {
	if err := mgr.Connect(ctx); err != nil {
		fmt.Fprintf(out, "Facebook: %s\n", mgr.Snapshot().Connection)
		return err
	}
	fmt.Fprintf(out, "Facebook: %s\n", mgr.Snapshot().Connection)

	err := mgr.Publish(ctx, day)
	if result := mgr.Snapshot().Publish; result != nil {
		fmt.Fprintf(out, "%s: %s\n", result.Day, result.Status())
	}
	return err
}
