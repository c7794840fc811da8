package i18n

import (
	"embed"
	"fmt"
	"slices"
	"sync"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Tables maps each language to its key->string table.
type Tables map[Language]map[string]string

var (
	defaultOnce   sync.Once
	defaultTables Tables
	defaultErr    error
)

// Default returns the translation tables embedded in the binary.
// It panics if the embedded locales are malformed.
func Default() Tables {
	defaultOnce.Do(func() {
		defaultTables, defaultErr = LoadTables(localeFS, "locales")
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("i18n: embedded locales: %v", defaultErr))
	}
	return defaultTables
}

// ReadFileFS is the subset of fs.FS needed to load locale files.
type ReadFileFS interface {
	ReadFile(name string) ([]byte, error)
}

// LoadTables reads <dir>/<lang>.yaml for every supported language.
// A missing file is an error; missing keys within a file are not.
func LoadTables(fsys ReadFileFS, dir string) (Tables, error) {
	tables := make(Tables, len(All()))
	for _, lang := range All() {
		data, err := fsys.ReadFile(dir + "/" + string(lang) + ".yaml")
		if err != nil {
			return nil, fmt.Errorf("read %s locale: %w", lang, err)
		}
		table, err := ParseTable(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s locale: %w", lang, err)
		}
		tables[lang] = table
	}
	return tables, nil
}

// ParseTable decodes a flat YAML key->string map.
func ParseTable(data []byte) (map[string]string, error) {
	table := map[string]string{}
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, err
	}
	return table, nil
}

// Lookup resolves key for lang. A key absent from the language's table
// resolves to the key itself.
func (t Tables) Lookup(lang Language, key string) string {
	if s, ok := t[lang][key]; ok {
		return s
	}
	return key
}

// Keys returns the sorted English key set, which is the reference set
// every other language should cover.
func (t Tables) Keys() []string {
	keys := lo.Keys(t[EN])
	slices.Sort(keys)
	return keys
}

// MissingKeys returns the sorted keys present in English but absent (or
// empty) in lang.
func (t Tables) MissingKeys(lang Language) []string {
	table := t[lang]
	return lo.Filter(t.Keys(), func(k string, _ int) bool {
		return table[k] == ""
	})
}

// Translator is a Tables view bound to one language.
type Translator struct {
	tables Tables
	lang   Language
}

// For binds the tables to lang.
func (t Tables) For(lang Language) Translator {
	return Translator{tables: t, lang: lang}
}

// T resolves key in the bound language.
func (tr Translator) T(key string) string {
	return tr.tables.Lookup(tr.lang, key)
}

// Language returns the bound language.
func (tr Translator) Language() Language { return tr.lang }
