// Package learner holds the application state of the one learner using
// the app: the current profile, the UI language and the lesson attempt in
// progress. Session is the only writer of the stored profile.
package learner

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ranilearn/rani/internal/catalog"
	"github.com/ranilearn/rani/internal/i18n"
	"github.com/ranilearn/rani/internal/player"
	"github.com/ranilearn/rani/internal/profile"
	"github.com/ranilearn/rani/internal/progress"
	"github.com/ranilearn/rani/internal/rewards"
	"github.com/ranilearn/rani/internal/store"
)

// ErrNoProfile is returned for operations that need a logged-in learner.
var ErrNoProfile = errors.New("no profile")

// Start is the first screen to show after Begin.
type Start int

const (
	StartLanguage Start = iota
	StartLogin
	StartHome
)

func (s Start) String() string {
	switch s {
	case StartLogin:
		return "login"
	case StartHome:
		return "home"
	}
	return "language"
}

// Deps are the collaborators a Session writes through.
type Deps struct {
	Profiles *profile.Service
	Catalog  *catalog.Catalog
	Tables   i18n.Tables
	Ledger   *rewards.Ledger
	Events   store.EventRepo
	Policy   rewards.Policy
	// DemoPIN is the PIN simulated payment apps accept.
	DemoPIN string
	Logger  logrus.FieldLogger
}

// Session is the in-memory learner state. It is safe for concurrent use
// so that screens can persist from commands while rendering.
type Session struct {
	mu sync.RWMutex

	deps     Deps
	profile  *profile.Profile
	language i18n.Language
	// attempt is the id of the lesson attempt opened last.
	attempt string
}

// New creates a Session with no learner and the English UI.
func New(deps Deps) *Session {
	return &Session{deps: deps, language: i18n.EN}
}

// Begin restores the stored profile and language preference and reports
// where onboarding should resume. A stored profile's language wins over
// the stored preference.
func (s *Session) Begin(ctx context.Context) (Start, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lang, hasLang, err := s.deps.Profiles.StoredLanguage(ctx)
	if err != nil {
		return StartLanguage, fmt.Errorf("load language: %w", err)
	}
	p, err := s.deps.Profiles.Current(ctx)
	switch {
	case errors.Is(err, profile.ErrNotFound):
	case err != nil:
		return StartLanguage, fmt.Errorf("load profile: %w", err)
	default:
		s.profile = p
	}

	switch {
	case s.profile != nil:
		s.language = s.profile.Language
	case hasLang:
		s.language = lang
	}

	if s.profile != nil {
		return StartHome, nil
	}
	if hasLang {
		return StartLogin, nil
	}
	return StartLanguage, nil
}

// Profile returns the logged-in profile, nil before login. The returned
// value must not be modified.
func (s *Session) Profile() *profile.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

func (s *Session) Language() i18n.Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

func (s *Session) Translator() i18n.Translator {
	return s.deps.Tables.For(s.Language())
}

func (s *Session) LoggedIn() bool { return s.Profile() != nil }

func (s *Session) Catalog() *catalog.Catalog    { return s.deps.Catalog }
func (s *Session) RewardPolicy() rewards.Policy { return s.deps.Policy }
func (s *Session) Profiles() *profile.Service   { return s.deps.Profiles }
func (s *Session) Logger() logrus.FieldLogger   { return s.deps.Logger }
func (s *Session) DemoPIN() string              { return s.deps.DemoPIN }

// Login signs the learner in with the current language. A newly created
// profile earns the signup bonus in the reward ledger.
func (s *Session) Login(ctx context.Context, phone string) error {
	p, created, err := s.deps.Profiles.Login(ctx, phone, s.Language())
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()
	if created {
		s.deps.Ledger.Record(ctx, rewards.Award{
			ProfileID: p.ID,
			Kind:      rewards.KindSignup,
			Amount:    p.XP,
		})
	}
	return nil
}

// Logout forgets the in-memory profile. The stored profile is kept.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = nil
	s.attempt = ""
}

// SetLanguage switches the UI language and saves it, along with the
// profile when someone is logged in.
func (s *Session) SetLanguage(ctx context.Context, lang i18n.Language) error {
	if !lang.Valid() {
		return fmt.Errorf("%w: %q", i18n.ErrUnknownLanguage, lang)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.deps.Profiles.SetLanguage(ctx, s.profile, lang)
	if err != nil {
		return err
	}
	s.language = lang
	if next != nil {
		s.profile = next
	}
	return nil
}

// ActiveLesson returns the lesson to continue on a track.
func (s *Session) ActiveLesson(track catalog.Track) (catalog.Lesson, bool) {
	return progress.ActiveLesson(s.Profile(), s.deps.Catalog.Track(track))
}

// Summary returns the lesson states of a track for the current profile.
func (s *Session) Summary(track catalog.Track) progress.TrackSummary {
	return progress.Summarize(s.Profile(), s.deps.Catalog.Track(track))
}

// OpenLesson bookmarks the lesson as active and starts an attempt. Locked
// lessons cannot be opened.
func (s *Session) OpenLesson(ctx context.Context, id string, opts ...player.Option) (*player.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return nil, ErrNoProfile
	}
	lesson, err := s.deps.Catalog.Get(id)
	if err != nil {
		return nil, err
	}
	track := lesson.Track()
	if !progress.IsUnlocked(s.profile, s.deps.Catalog.Track(track), s.deps.Catalog.IndexIn(track, id)) {
		return nil, fmt.Errorf("lesson %s is locked", id)
	}

	next := progress.SetLastActive(s.profile, id)
	if err := s.deps.Profiles.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	s.profile = next

	pl := player.New(lesson, s.deps.Policy, opts...)
	s.attempt = pl.AttemptID()
	s.logLesson(ctx, store.LessonEventData{
		LessonID: id,
		Action:   store.LessonOpened,
	})
	return pl, nil
}

// Apply persists the outcome of player events and returns the route the
// UI should take next. The route is meaningful after LessonFinished or
// LessonAbandoned.
func (s *Session) Apply(ctx context.Context, events ...player.Event) (progress.Route, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	route := progress.RouteHome
	if s.profile == nil {
		return route, ErrNoProfile
	}
	for _, ev := range events {
		switch ev := ev.(type) {
		case player.PracticeAwarded:
			next := progress.AddExperience(s.profile, ev.XP)
			if err := s.deps.Profiles.Save(ctx, next); err != nil {
				return route, fmt.Errorf("save profile: %w", err)
			}
			s.profile = next
			s.deps.Ledger.Record(ctx, rewards.Award{
				ProfileID: next.ID,
				LessonID:  ev.LessonID,
				Kind:      rewards.KindPractice,
				Amount:    ev.XP,
			})

		case player.LessonFinished:
			var next *profile.Profile
			next, route = progress.ApplyLessonResult(s.profile, ev.LessonID, progress.Result{
				Score:  ev.Score,
				Scored: ev.Scored,
				XP:     ev.XP,
			})
			if err := s.deps.Profiles.Save(ctx, next); err != nil {
				return route, fmt.Errorf("save profile: %w", err)
			}
			s.profile = next
			s.logLesson(ctx, store.LessonEventData{
				LessonID:       ev.LessonID,
				Action:         store.LessonCompleted,
				Score:          ev.Score,
				TotalQuestions: ev.Total,
				XP:             ev.XP,
			})
			s.deps.Ledger.Record(ctx, s.deps.Policy.LessonAwards(next.ID, ev.LessonID, ev.Score)...)

		case player.LessonAbandoned:
			route = progress.RouteFor(ev.LessonID)
			s.logLesson(ctx, store.LessonEventData{
				LessonID:  ev.LessonID,
				Action:    store.LessonExited,
				StepIndex: ev.StepIndex,
			})
		}
	}
	return route, nil
}

// logLesson appends a lesson event for the current attempt. The event log
// is history only, so failures are logged and dropped. Callers hold the
// lock.
func (s *Session) logLesson(ctx context.Context, data store.LessonEventData) {
	data.AttemptID = s.attempt
	data.ProfileID = s.profile.ID
	err := s.deps.Events.AppendLessonEvent(ctx, data)
	entry := s.deps.Logger.WithFields(logrus.Fields{
		"attempt_id": data.AttemptID,
		"lesson_id":  data.LessonID,
		"action":     data.Action,
	})
	if err != nil {
		entry.WithError(err).Warn("failed to record lesson event")
		return
	}
	entry.Debug("lesson event recorded")
}
