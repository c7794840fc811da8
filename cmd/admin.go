package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ranilearn/rani/internal/admin"
	"github.com/ranilearn/rani/internal/catalog"
)

var errNotAdmin = errors.New("the stored learner is not an admin (use --force to override)")

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Show admin console totals and the user directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		session, _, err := e.session(cmd)
		if err != nil {
			return err
		}
		current := session.Profile()
		if !force && (current == nil || !current.IsAdmin) {
			return errNotAdmin
		}
		lang := session.Language()

		users := admin.Directory(current)
		stats := admin.Compute(users, session.Catalog().Track(catalog.TrackCore))

		recorded, err := e.store.EventRepo().LessonCompletions(cmd.Context())
		if err != nil {
			return fmt.Errorf("lesson completions: %w", err)
		}

		fmt.Printf("Total users:  %d\n", stats.TotalUsers)
		fmt.Printf("Engagements:  %d\n", stats.Engagements)
		fmt.Println()
		fmt.Printf("%-22s  %6s  %8s  %s\n", "Lesson", "Users", "Recorded", "Title")
		fmt.Println(strings.Repeat("─", 72))
		for _, lc := range stats.Lessons {
			fmt.Printf("%-22s  %6d  %8d  %s\n", lc.LessonID, lc.Users, recorded[lc.LessonID], lc.Title.In(lang))
		}

		fmt.Println()
		fmt.Println("User directory")
		fmt.Println(strings.Repeat("─", 72))
		for _, u := range users {
			role := ""
			if u.IsAdmin {
				role = "admin"
			}
			fmt.Printf("%-12s  %-12s  %-3s  %5d XP  %3d streak  %2d done  %s\n",
				u.Name, u.Phone, u.Language, u.XP, u.Streak, len(u.Completed), role)
		}
		return nil
	},
}

func init() {
	adminCmd.Flags().Bool("force", false, "Show the console even when the stored learner is not an admin")
}
