package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ranilearn/rani/internal/i18n"
	"github.com/ranilearn/rani/internal/store"
)

// ErrNotFound is returned when no profile has been stored.
var ErrNotFound = errors.New("profile not found")

// Repository loads and saves the profile document and the language
// preference.
type Repository interface {
	// LoadProfile returns the stored profile or ErrNotFound.
	LoadProfile(ctx context.Context) (*Profile, error)
	SaveProfile(ctx context.Context, p *Profile) error
	DeleteProfile(ctx context.Context) error
	// LoadLanguage returns the stored language and whether one was stored.
	LoadLanguage(ctx context.Context) (i18n.Language, bool, error)
	SaveLanguage(ctx context.Context, lang i18n.Language) error
	DeleteLanguage(ctx context.Context) error
}

// DocumentRepository implements Repository on a store.DocumentRepo.
type DocumentRepository struct {
	docs   store.DocumentRepo
	logger logrus.FieldLogger
}

// NewRepository creates a Repository backed by docs.
func NewRepository(docs store.DocumentRepo, logger logrus.FieldLogger) *DocumentRepository {
	return &DocumentRepository{docs: docs, logger: logger}
}

// LoadProfile returns ErrNotFound when the document is missing. An
// unparseable document is treated the same way and logged.
func (r *DocumentRepository) LoadProfile(ctx context.Context) (*Profile, error) {
	data, ok, err := r.docs.Get(ctx, ProfileKey)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if !ok {
		return nil, ErrNotFound
	}
	p, err := Decode(data)
	if err != nil {
		r.logger.WithError(err).WithField("key", ProfileKey).Warn("discarding unreadable profile document")
		return nil, ErrNotFound
	}
	return p, nil
}

func (r *DocumentRepository) SaveProfile(ctx context.Context, p *Profile) error {
	data, err := Encode(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := r.docs.Put(ctx, ProfileKey, data); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (r *DocumentRepository) DeleteProfile(ctx context.Context) error {
	return r.docs.Delete(ctx, ProfileKey)
}

// LoadLanguage ignores a stored value outside the supported set.
func (r *DocumentRepository) LoadLanguage(ctx context.Context) (i18n.Language, bool, error) {
	data, ok, err := r.docs.Get(ctx, LanguageKey)
	if err != nil {
		return "", false, fmt.Errorf("load language: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	lang, err := i18n.ParseLanguage(string(data))
	if err != nil {
		r.logger.WithField("value", string(data)).Warn("ignoring unknown stored language")
		return "", false, nil
	}
	return lang, true, nil
}

func (r *DocumentRepository) SaveLanguage(ctx context.Context, lang i18n.Language) error {
	if err := r.docs.Put(ctx, LanguageKey, []byte(lang)); err != nil {
		return fmt.Errorf("save language: %w", err)
	}
	return nil
}

func (r *DocumentRepository) DeleteLanguage(ctx context.Context) error {
	return r.docs.Delete(ctx, LanguageKey)
}
