package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ranilearn/rani/internal/i18n"
)

// ErrInvalidPhone is returned for a phone number with too few digits.
var ErrInvalidPhone = errors.New("invalid phone number")

// DefaultName is the display name given to new profiles.
const DefaultName = "Rani User"

// LoginPolicy configures login and profile creation.
type LoginPolicy struct {
	// Delay is a cosmetic pause before a login resolves.
	Delay      time.Duration
	AdminPhone string
	MinDigits  int
	// SignupBonus is the XP a new profile starts with.
	SignupBonus    int
	StartingStreak int
}

// Service applies the login and profile update rules on a Repository.
// It holds no session state; callers keep the current profile.
type Service struct {
	repo   Repository
	policy LoginPolicy
	logger logrus.FieldLogger
	newID  func() string
}

// NewService creates a Service.
func NewService(repo Repository, policy LoginPolicy, logger logrus.FieldLogger) *Service {
	return &Service{
		repo:   repo,
		policy: policy,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// NormalizePhone strips everything but digits from phone.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
}

// ValidPhone reports whether phone has enough digits to log in.
func (s *Service) ValidPhone(phone string) bool {
	return len(NormalizePhone(phone)) >= s.policy.MinDigits
}

// Login resumes the stored profile when its phone matches, updating its
// language, or creates and stores a new profile otherwise. created reports
// which happened.
func (s *Service) Login(ctx context.Context, phone string, lang i18n.Language) (p *Profile, created bool, err error) {
	digits := NormalizePhone(phone)
	if len(digits) < s.policy.MinDigits {
		return nil, false, fmt.Errorf("%w: need %d digits", ErrInvalidPhone, s.policy.MinDigits)
	}

	if s.policy.Delay > 0 {
		timer := time.NewTimer(s.policy.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, false, ctx.Err()
		case <-timer.C:
		}
	}

	stored, err := s.repo.LoadProfile(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	if stored != nil && stored.Phone == digits {
		p = stored.Clone()
		p.Language = lang
	} else {
		p = s.newProfile(digits, lang)
		created = true
	}

	if err := s.repo.SaveProfile(ctx, p); err != nil {
		return nil, false, err
	}
	if err := s.repo.SaveLanguage(ctx, lang); err != nil {
		return nil, false, err
	}

	s.logger.WithFields(logrus.Fields{
		"profile_id": p.ID,
		"created":    created,
		"language":   lang,
	}).Info("logged in")
	return p, created, nil
}

func (s *Service) newProfile(phone string, lang i18n.Language) *Profile {
	return &Profile{
		ID:         s.newID(),
		Phone:      phone,
		Name:       DefaultName,
		Language:   lang,
		Completed:  map[string]struct{}{},
		QuizScores: map[string]int{},
		IsAdmin:    s.policy.AdminPhone != "" && phone == s.policy.AdminPhone,
		XP:         s.policy.SignupBonus,
		Streak:     s.policy.StartingStreak,
	}
}

// Current returns the stored profile, or ErrNotFound.
func (s *Service) Current(ctx context.Context) (*Profile, error) {
	return s.repo.LoadProfile(ctx)
}

// StoredLanguage returns the stored language preference, if any.
func (s *Service) StoredLanguage(ctx context.Context) (i18n.Language, bool, error) {
	return s.repo.LoadLanguage(ctx)
}

// SetLanguage returns a copy of p with lang applied and saves it along
// with the language preference. p may be nil before login.
func (s *Service) SetLanguage(ctx context.Context, p *Profile, lang i18n.Language) (*Profile, error) {
	if err := s.repo.SaveLanguage(ctx, lang); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	next := p.Clone()
	next.Language = lang
	if err := s.repo.SaveProfile(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Save overwrites the stored profile with p.
func (s *Service) Save(ctx context.Context, p *Profile) error {
	return s.repo.SaveProfile(ctx, p)
}

// Reset deletes the stored profile and language preference.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.repo.DeleteProfile(ctx); err != nil {
		return err
	}
	return s.repo.DeleteLanguage(ctx)
}
