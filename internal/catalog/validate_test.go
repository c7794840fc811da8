package catalog

import (
	"strings"
	"testing"

	"github.com/ranilearn/rani/internal/i18n"
)

func txt(s string) i18n.Text { return i18n.Text{i18n.EN: s} }

func validLesson(id string) Lesson {
	return Lesson{
		ID:    id,
		Title: txt(id),
		Steps: []Step{
			&InfoStep{StepBase: StepBase{ID: "s1", Title: txt("Info")}},
		},
		Quiz: []QuizQuestion{
			{ID: "q1", Question: txt("Q"), Options: []i18n.Text{txt("a"), txt("b")}, CorrectIndex: 0},
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	if err := Validate([]Lesson{validLesson("l1"), validLesson("l2")}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_Problems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(ls []Lesson) []Lesson
		want   string
	}{
		{
			name:   "duplicate lesson",
			mutate: func(ls []Lesson) []Lesson { return append(ls, validLesson("l1")) },
			want:   `duplicate lesson id "l1"`,
		},
		{
			name: "correct index out of range",
			mutate: func(ls []Lesson) []Lesson {
				ls[0].Quiz[0].CorrectIndex = 2
				return ls
			},
			want: "correct index 2 out of range",
		},
		{
			name: "unknown simulation",
			mutate: func(ls []Lesson) []Lesson {
				ls[0].Steps = append(ls[0].Steps, &SimulationStep{
					StepBase: StepBase{ID: "s2", Title: txt("Sim")},
					Kind:     "bhim",
				})
				return ls
			},
			want: `unknown simulation kind "bhim"`,
		},
		{
			name: "word missing from bank",
			mutate: func(ls []Lesson) []Lesson {
				ls[0].Steps = append(ls[0].Steps, &PracticeStep{
					StepBase:        StepBase{ID: "p1", Title: txt("Practice")},
					CorrectSentence: "I am Rani",
					WordBank:        []string{"I", "Rani"},
				})
				return ls
			},
			want: `word "am" not in word bank`,
		},
		{
			name: "missing english title",
			mutate: func(ls []Lesson) []Lesson {
				ls[0].Title = i18n.Text{i18n.HI: "एक"}
				return ls
			},
			want: "l1 title: missing english text",
		},
		{
			name: "duplicate step",
			mutate: func(ls []Lesson) []Lesson {
				ls[0].Steps = append(ls[0].Steps, ls[0].Steps[0])
				return ls
			},
			want: "l1/s1: duplicate step id",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.mutate([]Lesson{validLesson("l1")}))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	l := validLesson("l1")
	l.Quiz[0].CorrectIndex = 5
	l.Title = nil
	err := Validate([]Lesson{l, validLesson("l1")})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	for _, want := range []string{"duplicate lesson id", "out of range", "missing english text"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}
