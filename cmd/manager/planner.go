package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shubh-37/social-manager/internal/manager"
	"github.com/shubh-37/social-manager/internal/models"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Show the weekly schedule",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signalContext(cmd)
		defer stop()

		mgr := newManager(cmd, false)
		mgr.Load(ctx)
		printSchedule(cmd.OutOrStdout(), mgr.Schedule())
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update DAY TEXT",
	Short: "Replace the post scheduled for a day",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := models.ParseWeekday(args[0])
		if err != nil {
			return err
		}
		ctx, stop := signalContext(cmd)
		defer stop()

		mgr := newManager(cmd, false)
		if err := mgr.UpdatePost(ctx, day, args[1]); err != nil {
			return err
		}
		printSchedule(cmd.OutOrStdout(), mgr.Schedule())
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove DAY",
	Short: "Delete the post scheduled for a day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := models.ParseWeekday(args[0])
		if err != nil {
			return err
		}
		yes, _ := cmd.Flags().GetBool("yes")
		ctx, stop := signalContext(cmd)
		defer stop()

		mgr := newManager(cmd, yes)
		mgr.Load(ctx)
		err = mgr.DeletePost(ctx, day)
		if errors.Is(err, manager.ErrDeclined) {
			fmt.Fprintf(cmd.OutOrStdout(), "Kept the post for %s.\n", day)
			return nil
		}
		if err != nil {
			return err
		}
		printSchedule(cmd.OutOrStdout(), mgr.Schedule())
		return nil
	},
}

var publishCmd = &cobra.Command{
	Use:   "publish DAY",
	Short: "Connect the page and publish the post scheduled for a day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := models.ParseWeekday(args[0])
		if err != nil {
			return err
		}
		ctx, stop := signalContext(cmd)
		defer stop()

		mgr := newManager(cmd, false)
		mgr.Load(ctx)
		return connectAndPublish(ctx, cmd.OutOrStdout(), mgr, day)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset-schedule",
	Short: "Clear every scheduled post",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signalContext(cmd)
		defer stop()

		if err := newManager(cmd, false).ResetSchedule(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Schedule cleared.")
		return nil
	},
}

func init() {
	removeCmd.Flags().BoolP("yes", "y", false, "delete without asking")
	rootCmd.AddCommand(scheduleCmd, updateCmd, removeCmd, publishCmd, resetCmd)
}
