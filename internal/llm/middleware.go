package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ranilearn/rani/internal/store"
)

// Retrying retries transient failures with exponential backoff and
// jitter. An invalid response is retried once; truncation and context
// errors are not retried.
type Retrying struct {
	inner Provider
	cfg   RetryConfig
	sleep func(context.Context, time.Duration) error
}

func WithRetry(p Provider, cfg RetryConfig) *Retrying {
	return &Retrying{inner: p, cfg: cfg, sleep: sleepCtx}
}

func (r *Retrying) ModelID() string { return r.inner.ModelID() }

func (r *Retrying) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.cfg.MaxAttempts, 1)
	retriedInvalid := false
	var err error
	for attempt := range attempts {
		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !retryable(err, &retriedInvalid) || attempt == attempts-1 {
			return nil, err
		}
		if serr := r.sleep(ctx, r.wait(attempt, err)); serr != nil {
			return nil, serr
		}
	}
	return nil, err
}

func retryable(err error, retriedInvalid *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var truncated *ErrMaxTokensExceeded
	if errors.As(err, &truncated) {
		return false
	}
	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		if *retriedInvalid {
			return false
		}
		*retriedInvalid = true
	}
	return true
}

func (r *Retrying) wait(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	d := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt))
	d = math.Min(d, float64(r.cfg.MaxWait))
	d += d * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(math.Max(d, 0))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Recording appends every call to the event log. A failure to record is
// logged and never fails the call.
type Recording struct {
	inner    Provider
	provider string
	events   store.EventRepo
	logger   logrus.FieldLogger
}

// WithRecording wraps p. provider is the name stored with each event.
func WithRecording(p Provider, provider string, events store.EventRepo, logger logrus.FieldLogger) *Recording {
	return &Recording{inner: p, provider: provider, events: events, logger: logger}
}

func (r *Recording) ModelID() string { return r.inner.ModelID() }

func (r *Recording) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := r.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:    r.provider,
		Model:       r.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	entry := r.logger.WithFields(logrus.Fields{
		"provider":   ev.Provider,
		"model":      ev.Model,
		"purpose":    ev.Purpose,
		"latency_ms": ev.LatencyMs,
	})
	if err != nil {
		entry.WithError(err).Warn("llm request failed")
	} else {
		entry.WithField("output_tokens", ev.OutputTokens).Debug("llm request")
	}
	// Recording outlives a cancelled request.
	if rerr := r.events.AppendLLMRequest(context.WithoutCancel(ctx), ev); rerr != nil {
		entry.WithError(rerr).Warn("failed to record llm request")
	}
	return resp, err
}

// transcript renders a request as labelled sections for later inspection.
func transcript(req Request) string {
	var b strings.Builder
	section := func(label, body string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", label, body)
	}
	if req.System != "" {
		section("system", req.System)
	}
	for _, m := range req.Messages {
		section(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			section("schema: "+req.Schema.Name, string(def))
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
