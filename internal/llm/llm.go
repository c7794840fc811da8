// Package llm talks to hosted language models. It is used at authoring
// time to translate interface text; the learner-facing app never calls it.
//
// Every provider returns JSON. When a request carries a Schema the
// provider asks the model for structured output and validates the reply
// before returning it.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates a response for a request.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	// ModelID is the model the provider sends requests to.
	ModelID() string
}

// Request is one generation call.
type Request struct {
	System   string
	Messages []Message
	// Schema, when set, constrains the reply to a JSON document.
	Schema      *Schema
	MaxTokens   int
	Temperature float64
}

// Role identifies who wrote a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// UserPrompt builds a single-turn request.
func UserPrompt(system, prompt string) Request {
	return Request{
		System:   system,
		Messages: []Message{{Role: RoleUser, Content: prompt}},
	}
}

// Schema is a named JSON Schema. The name doubles as the tool or schema
// name some providers require, so keep it kebab-case.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Stop reasons, normalised across providers.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Response is a model reply.
type Response struct {
	// Content is the validated JSON document, or the raw text when the
	// request had no schema.
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

func newUsage(in, out int) Usage {
	return Usage{InputTokens: in, OutputTokens: out, TotalTokens: in + out}
}

type purposeKey struct{}

// WithPurpose labels the calls made with ctx, e.g. "translate-hi". The
// label is stored with each recorded request.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}

// finish validates content against the request schema and assembles the
// response. Providers call it once they have extracted the reply text.
func finish(req Request, content json.RawMessage, usage Usage, model, stop string) (*Response, error) {
	if stop == StopMaxTokens && req.Schema != nil {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}

// resolveModel maps a short alias to the provider's model id. Unknown
// names are passed through unchanged.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
