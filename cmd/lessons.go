package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ranilearn/rani/internal/catalog"
	"github.com/ranilearn/rani/internal/i18n"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "List lessons and their state for the stored learner",
	RunE: func(cmd *cobra.Command, args []string) error {
		trackFlag, _ := cmd.Flags().GetString("track")
		langFlag, _ := cmd.Flags().GetString("lang")

		track, err := catalog.ParseTrack(trackFlag)
		if err != nil {
			return err
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		session, _, err := e.session(cmd)
		if err != nil {
			return err
		}
		lang := session.Language()
		if langFlag != "" {
			if lang, err = i18n.ParseLanguage(langFlag); err != nil {
				return err
			}
		}

		sum := session.Summary(track)
		fmt.Printf("%s track: %d/%d completed\n", track, sum.Completed, sum.Total)
		fmt.Println(strings.Repeat("─", 72))
		for i, st := range sum.Lessons {
			marker := " "
			if st.Active {
				marker = "▶"
			}
			score := ""
			if st.HasScore {
				score = fmt.Sprintf("%d/%d", st.Score, len(st.Lesson.Quiz))
			}
			fmt.Printf("%s %2d  %-20s  %-10s  %5s  %s\n",
				marker, i+1, st.Lesson.ID, st.Status, score, st.Lesson.Title.In(lang))
		}
		if !session.LoggedIn() {
			fmt.Println("\nNo learner has logged in yet; only the first lesson is open.")
		}
		return nil
	},
}

func init() {
	lessonsCmd.Flags().StringP("track", "t", string(catalog.TrackCore), "Track to list (core or english)")
	lessonsCmd.Flags().StringP("lang", "l", "", "Language for titles (en, hi, bn)")
}
