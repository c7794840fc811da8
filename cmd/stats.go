package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ranilearn/rani/internal/catalog"
	"github.com/ranilearn/rani/internal/progress"
	"github.com/ranilearn/rani/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the stored learner's progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		session, _, err := e.session(cmd)
		if err != nil {
			return err
		}
		p := session.Profile()
		if p == nil {
			fmt.Println("No learner yet. Run rani to log in.")
			return nil
		}
		lang := session.Language()
		ctx := cmd.Context()

		fmt.Printf("Learner:   %s (%s)\n", p.Name, p.Phone)
		fmt.Printf("Language:  %s\n", p.Language.NativeName())
		fmt.Printf("XP:        %d\n", p.XP)
		fmt.Printf("Streak:    %d\n", p.Streak)
		fmt.Printf("Completed: %d lessons, total quiz score %d\n", len(p.Completed), p.TotalScore())
		if p.IsAdmin {
			fmt.Println("Role:      admin")
		}

		for _, track := range []catalog.Track{catalog.TrackCore, catalog.TrackEnglish} {
			sum := session.Summary(track)
			fmt.Println()
			fmt.Printf("%s (%d%%)\n", track, sum.Percent())
			fmt.Println(strings.Repeat("─", 60))
			for _, st := range sum.Lessons {
				score := ""
				if st.HasScore {
					score = fmt.Sprintf("%d/%d", st.Score, len(st.Lesson.Quiz))
				}
				fmt.Printf("  %-10s  %5s  %s\n", statusLabel(st.Status), score, st.Lesson.Title.In(lang))
			}
		}

		totals, err := e.store.EventRepo().RewardTotals(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("reward totals: %w", err)
		}
		if len(totals) > 0 {
			fmt.Println()
			fmt.Println("XP by source")
			fmt.Println(strings.Repeat("─", 60))
			kinds := lo.Keys(totals)
			slices.Sort(kinds)
			for _, k := range kinds {
				fmt.Printf("  %-12s %6d\n", k, totals[k])
			}
		}

		events, err := e.store.EventRepo().QueryLessonEvents(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query lesson events: %w", err)
		}
		events = lo.Filter(events, func(ev store.LessonEventRecord, _ int) bool {
			return ev.ProfileID == p.ID
		})
		if len(events) > 0 {
			fmt.Println()
			fmt.Println("Recent activity")
			fmt.Println(strings.Repeat("─", 60))
			for _, ev := range events {
				line := fmt.Sprintf("  %s  %-9s  %s",
					ev.Timestamp.Local().Format("2006-01-02 15:04"), ev.Action, ev.LessonID)
				if ev.Action == store.LessonCompleted && ev.TotalQuestions > 0 {
					line += fmt.Sprintf("  %d/%d", ev.Score, ev.TotalQuestions)
				}
				fmt.Println(line)
			}
		}
		return nil
	},
}

func statusLabel(s progress.Status) string {
	return strings.ToUpper(s.String()[:1]) + s.String()[1:]
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 10, "Number of recent lesson events to show")
}
