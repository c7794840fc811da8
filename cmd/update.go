package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ranilearn/rani/internal/selfupdate"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update rani to the latest version",
	RunE: func(cmd *cobra.Command, args []string) error {
		checkOnly, _ := cmd.Flags().GetBool("check")
		target, _ := cmd.Flags().GetString("version")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		checker := selfupdate.NewChecker(
			selfupdate.WithRepository(cfg.Update.Owner, cfg.Update.Repo),
			selfupdate.WithTimeout(2*time.Minute),
		)

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		if checkOnly {
			res, err := checker.Check(ctx, version)
			if err != nil {
				return err
			}
			if res.UpdateAvailable {
				fmt.Printf("rani %s is available (running %s): %s\n", res.Latest.Tag, version, res.Latest.URL)
			} else {
				fmt.Printf("rani %s is the latest release (running %s).\n", res.Latest.Tag, version)
			}
			return nil
		}

		err = checker.Update(ctx, version, target, func(_ selfupdate.Stage, msg string) {
			fmt.Println(msg)
		})
		if err == nil {
			return nil
		}

		if errors.Is(err, selfupdate.ErrDevBuild) {
			fmt.Println("Cannot update a development build. Install a release build first.")
			return nil
		}
		if errors.Is(err, selfupdate.ErrAlreadyLatest) {
			fmt.Println("Already running the latest version.")
			return nil
		}
		if errors.Is(err, os.ErrPermission) {
			return fmt.Errorf("%w\n\nTry running: sudo rani update", err)
		}

		return err
	},
}

func init() {
	updateCmd.Flags().Bool("check", false, "Only report whether an update is available")
	updateCmd.Flags().String("version", "", "Install this release tag instead of the latest")
}
