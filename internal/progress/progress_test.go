package progress

import (
	"testing"

	"github.com/ranilearn/rani/internal/catalog"
	"github.com/ranilearn/rani/internal/i18n"
	"github.com/ranilearn/rani/internal/profile"
)

func freshProfile() *profile.Profile {
	return &profile.Profile{
		ID:         "p1",
		Language:   i18n.EN,
		Completed:  map[string]struct{}{},
		QuizScores: map[string]int{},
		XP:         100,
		Streak:     1,
	}
}

func withCompleted(ids ...string) *profile.Profile {
	p := freshProfile()
	for _, id := range ids {
		p.Completed[id] = struct{}{}
	}
	return p
}

func coreTrack() []catalog.Lesson {
	return catalog.Default().Track(catalog.TrackCore)
}

func TestIsUnlocked_LinearChain(t *testing.T) {
	lessons := coreTrack()
	profiles := []*profile.Profile{
		freshProfile(),
		withCompleted("l1_smartphone"),
		withCompleted("l1_smartphone", "l2_payments_intro", "l4_paytm_sim"),
		withCompleted("l3_upi_sim"),
	}
	for _, p := range profiles {
		if !IsUnlocked(p, lessons, 0) {
			t.Errorf("first lesson locked for %v", p.CompletedIDs())
		}
		for i := 1; i < len(lessons); i++ {
			want := p.HasCompleted(lessons[i-1].ID)
			if got := IsUnlocked(p, lessons, i); got != want {
				t.Errorf("IsUnlocked(%v, %s) = %v, want %v", p.CompletedIDs(), lessons[i].ID, got, want)
			}
		}
	}
}

func TestIsUnlocked_OutOfRange(t *testing.T) {
	lessons := coreTrack()
	if IsUnlocked(freshProfile(), lessons, -1) || IsUnlocked(freshProfile(), lessons, len(lessons)) {
		t.Error("out of range index should be locked")
	}
}

func TestIsUnlocked_TracksIndependent(t *testing.T) {
	p := withCompleted("l1_smartphone")
	eng := catalog.Default().Track(catalog.TrackEnglish)
	if IsUnlocked(p, eng, 1) {
		t.Error("core completion must not unlock english lessons")
	}
}

func TestActiveLesson(t *testing.T) {
	lessons := coreTrack()
	tests := []struct {
		name string
		p    *profile.Profile
		want string
	}{
		{"fresh", freshProfile(), "l1_smartphone"},
		{"nil profile", nil, "l1_smartphone"},
		{"after first", withCompleted("l1_smartphone"), "l2_payments_intro"},
		{"gap", withCompleted("l1_smartphone", "l3_upi_sim"), "l2_payments_intro"},
		{"all done", withCompleted("l1_smartphone", "l2_payments_intro", "l3_upi_sim", "l4_paytm_sim", "l5_gpay_sim", "l6_gov_schemes"), "l6_gov_schemes"},
		{"bookmark wins", func() *profile.Profile {
			p := withCompleted("l1_smartphone", "l2_payments_intro", "l3_upi_sim")
			p.LastActiveLessonID = "l2_payments_intro"
			return p
		}(), "l2_payments_intro"},
		{"bookmark in other track ignored", func() *profile.Profile {
			p := withCompleted("l1_smartphone")
			p.LastActiveLessonID = "e_unit3_k_o"
			return p
		}(), "l2_payments_intro"},
	}
	for _, tt := range tests {
		got, ok := ActiveLesson(tt.p, lessons)
		if !ok {
			t.Errorf("%s: ActiveLesson returned no lesson", tt.name)
			continue
		}
		if got.ID != tt.want {
			t.Errorf("%s: ActiveLesson = %q, want %q", tt.name, got.ID, tt.want)
		}
	}

	if _, ok := ActiveLesson(freshProfile(), nil); ok {
		t.Error("empty track should have no active lesson")
	}
}

func TestApplyLessonResult_Idempotent(t *testing.T) {
	p := freshProfile()
	p1, _ := ApplyLessonResult(p, "l1_smartphone", Result{Score: 1, Scored: true, XP: 30})
	p2, _ := ApplyLessonResult(p1, "l1_smartphone", Result{Score: 0, Scored: true, XP: 20})

	if len(p2.Completed) != 1 {
		t.Errorf("completed = %v, want exactly one id", p2.CompletedIDs())
	}
	if p2.QuizScores["l1_smartphone"] != 0 {
		t.Errorf("score = %d, want 0 (second completion overwrites)", p2.QuizScores["l1_smartphone"])
	}
	if p2.XP != 150 {
		t.Errorf("XP = %d, want 150", p2.XP)
	}
}

func TestApplyLessonResult_DoesNotMutateInput(t *testing.T) {
	p := freshProfile()
	p.LastActiveLessonID = "l1_smartphone"
	next, _ := ApplyLessonResult(p, "l1_smartphone", Result{Score: 1, Scored: true, XP: 30})

	if p.HasCompleted("l1_smartphone") || len(p.QuizScores) != 0 || p.XP != 100 {
		t.Error("input profile was mutated")
	}
	if p.LastActiveLessonID != "l1_smartphone" {
		t.Error("input bookmark was mutated")
	}
	if next.LastActiveLessonID != "" {
		t.Errorf("bookmark = %q, want cleared", next.LastActiveLessonID)
	}
}

func TestApplyLessonResult_XPMonotonic(t *testing.T) {
	p := freshProfile()
	results := []Result{{XP: 30}, {XP: 0}, {XP: -50}, {XP: 20}}
	prev := p.XP
	for i, r := range results {
		p, _ = ApplyLessonResult(p, "l1_smartphone", r)
		if p.XP < prev {
			t.Fatalf("step %d: XP decreased from %d to %d", i, prev, p.XP)
		}
		prev = p.XP
	}
	if p.XP != 150 {
		t.Errorf("XP = %d, want 150", p.XP)
	}
}

func TestApplyLessonResult_UnscoredLesson(t *testing.T) {
	next, _ := ApplyLessonResult(freshProfile(), "l1_smartphone", Result{XP: 20})
	if !next.HasCompleted("l1_smartphone") {
		t.Error("lesson not completed")
	}
	if _, ok := next.QuizScores["l1_smartphone"]; ok {
		t.Error("unscored result recorded a score")
	}
}

func TestApplyLessonResult_Route(t *testing.T) {
	if _, r := ApplyLessonResult(freshProfile(), "l2_payments_intro", Result{}); r != RouteHome {
		t.Errorf("core route = %v, want home", r)
	}
	if _, r := ApplyLessonResult(freshProfile(), "e_unit2_f_j", Result{}); r != RoutePathway {
		t.Errorf("english route = %v, want pathway", r)
	}
}

func TestEndToEnd_FirstLesson(t *testing.T) {
	lessons := coreTrack()
	p := freshProfile()

	active, _ := ActiveLesson(p, lessons)
	if active.ID != lessons[0].ID {
		t.Fatalf("active = %q, want %q", active.ID, lessons[0].ID)
	}

	p, _ = ApplyLessonResult(p, active.ID, Result{Score: 1, Scored: true, XP: 30})
	if !p.HasCompleted(active.ID) || p.QuizScores[active.ID] != 1 {
		t.Fatalf("profile after completion = %+v", p)
	}

	next, _ := ActiveLesson(p, lessons)
	if next.ID != lessons[1].ID {
		t.Errorf("active after completion = %q, want %q", next.ID, lessons[1].ID)
	}
}

func TestSetLastActiveAndAddExperience(t *testing.T) {
	p := freshProfile()
	q := SetLastActive(p, "l3_upi_sim")
	if q.LastActiveLessonID != "l3_upi_sim" || p.LastActiveLessonID != "" {
		t.Errorf("SetLastActive: got %q, input %q", q.LastActiveLessonID, p.LastActiveLessonID)
	}
	r := AddExperience(q, 10)
	if r.XP != 110 || q.XP != 100 {
		t.Errorf("AddExperience: got %d, input %d", r.XP, q.XP)
	}
	if AddExperience(r, -5).XP != 110 {
		t.Error("negative experience changed XP")
	}
}

func TestSummarize(t *testing.T) {
	p := withCompleted("l1_smartphone", "l2_payments_intro")
	p.QuizScores["l1_smartphone"] = 1
	s := Summarize(p, coreTrack())

	if s.Total != 6 || s.Completed != 2 {
		t.Errorf("summary = %d/%d, want 2/6", s.Completed, s.Total)
	}
	if s.ActiveID != "l3_upi_sim" {
		t.Errorf("active = %q, want l3_upi_sim", s.ActiveID)
	}
	want := []Status{Completed, Completed, Unlocked, Locked, Locked, Locked}
	for i, st := range s.Lessons {
		if st.Status != want[i] {
			t.Errorf("%s status = %v, want %v", st.Lesson.ID, st.Status, want[i])
		}
	}
	if !s.Lessons[0].HasScore || s.Lessons[0].Score != 1 {
		t.Errorf("l1 score = %d (%v), want 1", s.Lessons[0].Score, s.Lessons[0].HasScore)
	}
	if !s.Lessons[2].Active {
		t.Error("l3 should be marked active")
	}
	if s.Percent() != 33 {
		t.Errorf("Percent() = %d, want 33", s.Percent())
	}
}
