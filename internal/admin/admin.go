// Package admin computes the aggregates shown on the admin console.
package admin

import (
	"github.com/samber/lo"

	"github.com/ranilearn/rani/internal/catalog"
	"github.com/ranilearn/rani/internal/i18n"
	"github.com/ranilearn/rani/internal/profile"
)

// DemoUsers returns the fixed peer profiles the console shows alongside
// the current learner.
func DemoUsers() []*profile.Profile {
	return []*profile.Profile{
		demo("1", "12345", "Rina", i18n.HI, 150, 3, map[string]int{"l1_smartphone": 1},
			"l1_smartphone", "l2_payments_intro"),
		demo("2", "67890", "Sita", i18n.BN, 50, 1, nil,
			"l1_smartphone"),
		demo("3", "11223", "Gita", i18n.EN, 300, 10, map[string]int{"l3_upi_sim": 1},
			"l1_smartphone", "l2_payments_intro", "l3_upi_sim"),
	}
}

func demo(id, phone, name string, lang i18n.Language, xp, streak int, scores map[string]int, completed ...string) *profile.Profile {
	if scores == nil {
		scores = map[string]int{}
	}
	return &profile.Profile{
		ID:         id,
		Phone:      phone,
		Name:       name,
		Language:   lang,
		Completed:  lo.SliceToMap(completed, func(id string) (string, struct{}) { return id, struct{}{} }),
		QuizScores: scores,
		XP:         xp,
		Streak:     streak,
	}
}

// Directory lists the demo users followed by current, if any.
func Directory(current *profile.Profile) []*profile.Profile {
	users := DemoUsers()
	if current != nil {
		users = append(users, current.Clone())
	}
	return users
}

// LessonCount is the number of users who completed one lesson.
type LessonCount struct {
	LessonID string
	Title    i18n.Text
	Users    int
}

// Stats are the console aggregates.
type Stats struct {
	TotalUsers int
	// Engagements is the number of lesson completions over all users.
	Engagements int
	Lessons     []LessonCount
}

// Compute aggregates users over lessons, in lesson order.
func Compute(users []*profile.Profile, lessons []catalog.Lesson) Stats {
	return Stats{
		TotalUsers: len(users),
		Engagements: lo.SumBy(users, func(u *profile.Profile) int {
			return len(u.Completed)
		}),
		Lessons: lo.Map(lessons, func(l catalog.Lesson, _ int) LessonCount {
			return LessonCount{
				LessonID: l.ID,
				Title:    l.Title,
				Users: lo.CountBy(users, func(u *profile.Profile) bool {
					return u.HasCompleted(l.ID)
				}),
			}
		}),
	}
}
