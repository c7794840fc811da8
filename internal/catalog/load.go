package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/ranilearn/rani/internal/i18n"
)

//go:embed data/lessons.yaml
var lessonsYAML []byte

//go:embed data/catalog.schema.json
var schemaJSON []byte

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog embedded in the binary. It panics if the
// embedded data is invalid; the catalog tests guard against that.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(lessonsYAML)
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("catalog: embedded lessons: %v", defaultErr))
	}
	return defaultCatalog
}

// Parse decodes a YAML catalog document, checks it against the catalog
// schema and validates the resulting lessons.
func Parse(data []byte) (*Catalog, error) {
	if err := checkSchema(data); err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	lessons := make([]Lesson, 0, len(doc.Lessons))
	for _, ld := range doc.Lessons {
		l, err := ld.lesson()
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return New(lessons)
}

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compiledErr    error
)

func catalogSchema() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			compiledErr = fmt.Errorf("parse catalog schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://catalog.json"
		if err := c.AddResource(url, def); err != nil {
			compiledErr = fmt.Errorf("add catalog schema: %w", err)
			return
		}
		compiledSchema, compiledErr = c.Compile(url)
	})
	return compiledSchema, compiledErr
}

// checkSchema validates the raw document shape before typed decoding so
// that misspelled or misplaced fields are reported instead of dropped.
func checkSchema(data []byte) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode catalog: %w", err)
	}
	// Round-trip through JSON so the validator sees JSON value types.
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("convert catalog: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(b, &parsed); err != nil {
		return fmt.Errorf("convert catalog: %w", err)
	}

	sch, err := catalogSchema()
	if err != nil {
		return err
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("catalog schema: %w", err)
	}
	return nil
}

type document struct {
	Lessons []lessonDoc `yaml:"lessons"`
}

type lessonDoc struct {
	ID          string        `yaml:"id"`
	Icon        string        `yaml:"icon"`
	Title       i18n.Text     `yaml:"title"`
	Description i18n.Text     `yaml:"description"`
	Steps       []stepDoc     `yaml:"steps"`
	Quiz        []questionDoc `yaml:"quiz"`
}

type stepDoc struct {
	ID          string       `yaml:"id"`
	Type        string       `yaml:"type"`
	Title       i18n.Text    `yaml:"title"`
	Description i18n.Text    `yaml:"description"`
	Image       string       `yaml:"image"`
	Video       i18n.Text    `yaml:"video"`
	Simulation  string       `yaml:"simulation"`
	Practice    *practiceDoc `yaml:"practice"`
}

type practiceDoc struct {
	SourceText      i18n.Text `yaml:"source_text"`
	CorrectSentence string    `yaml:"correct_sentence"`
	WordBank        []string  `yaml:"word_bank"`
}

type questionDoc struct {
	ID           string      `yaml:"id"`
	Question     i18n.Text   `yaml:"question"`
	Options      []i18n.Text `yaml:"options"`
	CorrectIndex int         `yaml:"correct_index"`
	Explanation  i18n.Text   `yaml:"explanation"`
}

func (ld lessonDoc) lesson() (Lesson, error) {
	l := Lesson{
		ID:          ld.ID,
		Icon:        ld.Icon,
		Title:       ld.Title,
		Description: ld.Description,
		Steps:       make([]Step, 0, len(ld.Steps)),
		Quiz:        make([]QuizQuestion, 0, len(ld.Quiz)),
	}
	for _, sd := range ld.Steps {
		s, err := sd.step()
		if err != nil {
			return Lesson{}, fmt.Errorf("lesson %q: %w", ld.ID, err)
		}
		l.Steps = append(l.Steps, s)
	}
	for _, qd := range ld.Quiz {
		l.Quiz = append(l.Quiz, QuizQuestion(qd))
	}
	return l, nil
}

func (sd stepDoc) step() (Step, error) {
	base := StepBase{ID: sd.ID, Title: sd.Title, Description: sd.Description}
	switch sd.Type {
	case "info":
		return &InfoStep{StepBase: base, Image: sd.Image, Video: sd.Video}, nil
	case "simulation":
		return &SimulationStep{StepBase: base, Kind: SimulationKind(sd.Simulation)}, nil
	case "language_practice":
		if sd.Practice == nil {
			return nil, fmt.Errorf("step %q: language_practice without practice block", sd.ID)
		}
		return &PracticeStep{
			StepBase:        base,
			SourceText:      sd.Practice.SourceText,
			CorrectSentence: sd.Practice.CorrectSentence,
			WordBank:        sd.Practice.WordBank,
		}, nil
	}
	return nil, fmt.Errorf("step %q: unknown type %q", sd.ID, sd.Type)
}
