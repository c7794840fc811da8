// Package translate fills missing interface strings for a language with
// the help of a language model and writes the merged locale file.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ranilearn/rani/internal/i18n"
	"github.com/ranilearn/rani/internal/llm"
)

const defaultBatchSize = 25

// Filler translates the keys a language is missing.
type Filler struct {
	provider  llm.Provider
	tables    i18n.Tables
	logger    logrus.FieldLogger
	batchSize int
}

func NewFiller(provider llm.Provider, tables i18n.Tables, logger logrus.FieldLogger) *Filler {
	return &Filler{provider: provider, tables: tables, logger: logger, batchSize: defaultBatchSize}
}

// Result is a merged locale table and the keys that were added.
type Result struct {
	Table map[string]string
	Added []string
}

// Entry is one translated string in a model reply.
type Entry struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

const purposePrefix = "translate-"

// Purpose labels the model calls made while filling lang.
func Purpose(lang i18n.Language) string { return purposePrefix + string(lang) }

// PurposeLanguage recovers the target language from a call label.
func PurposeLanguage(purpose string) (i18n.Language, bool) {
	code, ok := strings.CutPrefix(purpose, purposePrefix)
	if !ok {
		return "", false
	}
	lang := i18n.Language(code)
	return lang, lang.Valid() && lang != i18n.EN
}

// DecodeReply parses a model reply into its entries.
func DecodeReply(data []byte) ([]Entry, error) {
	var out struct {
		Translations []Entry `json:"translations"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode translations: %w", err)
	}
	return out.Translations, nil
}

// Fill asks the model for every key lang is missing and returns the
// language's table with the translations merged in. Existing strings are
// never replaced. A reply that skips a requested key is an error.
func (f *Filler) Fill(ctx context.Context, lang i18n.Language) (*Result, error) {
	if lang == i18n.EN || !lang.Valid() {
		return nil, fmt.Errorf("cannot fill %q: %w", lang, i18n.ErrUnknownLanguage)
	}
	table := maps.Clone(f.tables[lang])
	if table == nil {
		table = map[string]string{}
	}
	missing := f.tables.MissingKeys(lang)
	if len(missing) == 0 {
		return &Result{Table: table}, nil
	}

	ctx = llm.WithPurpose(ctx, Purpose(lang))
	source := f.tables[i18n.EN]
	for i, batch := range lo.Chunk(missing, f.batchSize) {
		got, err := f.translate(ctx, lang, source, batch)
		if err != nil {
			return nil, fmt.Errorf("batch %d: %w", i+1, err)
		}
		maps.Copy(table, got)
		f.logger.WithFields(logrus.Fields{
			"language": lang,
			"batch":    i + 1,
			"keys":     len(got),
		}).Info("translated batch")
	}
	return &Result{Table: table, Added: missing}, nil
}

func (f *Filler) translate(ctx context.Context, lang i18n.Language, source map[string]string, keys []string) (map[string]string, error) {
	req := llm.UserPrompt(systemPrompt, buildPrompt(lang, source, keys))
	req.Schema = TranslationSchema
	req.MaxTokens = 200 * len(keys)

	resp, err := f.provider.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	entries, err := DecodeReply(resp.Content)
	if err != nil {
		return nil, err
	}

	wanted := lo.SliceToMap(keys, func(k string) (string, struct{}) { return k, struct{}{} })
	got := make(map[string]string, len(keys))
	for _, tr := range entries {
		if _, ok := wanted[tr.Key]; !ok {
			f.logger.WithField("key", tr.Key).Warn("ignoring translation for unrequested key")
			continue
		}
		got[tr.Key] = tr.Text
	}
	if absent := lo.Filter(keys, func(k string, _ int) bool { return got[k] == "" }); len(absent) > 0 {
		return nil, fmt.Errorf("reply is missing keys %v", absent)
	}
	return got, nil
}

// WriteYAML writes table as a flat YAML map with keys in sorted order.
func WriteYAML(w io.Writer, table map[string]string) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range slices.Sorted(maps.Keys(table)) {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: table[k]},
		)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
