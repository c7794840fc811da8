package llm

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranilearn/rani/internal/store"
)

func asErr[T error](err error, target *T) bool { return errors.As(err, target) }

func fastRetry(p Provider, attempts int) (*Retrying, *[]time.Duration) {
	r := WithRetry(p, RetryConfig{
		MaxAttempts: attempts,
		InitialWait: 10 * time.Millisecond,
		MaxWait:     40 * time.Millisecond,
		Multiplier:  2,
	})
	var waits []time.Duration
	r.sleep = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}
	return r, &waits
}

var down = &ErrProviderUnavailable{Err: errors.New("down")}

func TestRetry_TransientThenSuccess(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: down}, MockResponse{Content: json.RawMessage(`{}`)})
	r, waits := fastRetry(mock, 3)

	_, err := r.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 2, mock.CallCount())
	assert.Len(t, *waits, 1)
}

func TestRetry_GivesUp(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: down}, MockResponse{Err: down}, MockResponse{Err: down})
	r, waits := fastRetry(mock, 3)

	_, err := r.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, down)
	assert.Equal(t, 3, mock.CallCount())
	assert.Len(t, *waits, 2, "no sleep after the last attempt")
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	bad := &ErrInvalidResponse{Err: errors.New("bad")}
	mock := NewMockProvider(MockResponse{Err: bad}, MockResponse{Err: bad}, MockResponse{Content: json.RawMessage(`{}`)})
	r, _ := fastRetry(mock, 5)

	_, err := r.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, bad)
	assert.Equal(t, 2, mock.CallCount())
}

func TestRetry_NotRetried(t *testing.T) {
	for _, err := range []error{&ErrMaxTokensExceeded{}, context.Canceled} {
		mock := NewMockProvider(MockResponse{Err: err}, MockResponse{Content: json.RawMessage(`{}`)})
		r, _ := fastRetry(mock, 3)
		_, got := r.Generate(context.Background(), Request{})
		assert.Error(t, got)
		assert.Equal(t, 1, mock.CallCount(), "%T should not be retried", err)
	}
}

func TestRetry_BackoffHonoursRetryAfterAndCap(t *testing.T) {
	r, _ := fastRetry(nil, 3)
	assert.Equal(t, 3*time.Second, r.wait(0, &ErrRateLimit{RetryAfter: 3 * time.Second}))

	for range 20 {
		d := r.wait(5, down)
		assert.LessOrEqual(t, d, 48*time.Millisecond)
		assert.GreaterOrEqual(t, d, 32*time.Millisecond)
	}
}

func TestRecording(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "rani.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	logger, hook := logtest.NewNullLogger()

	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"text":"नमस्ते"}`), Usage: newUsage(30, 8)},
		MockResponse{Err: down},
	)
	rec := WithRecording(mock, ProviderMock, st.EventRepo(), logger)
	ctx := WithPurpose(context.Background(), "translate-hi")

	_, err = rec.Generate(ctx, translationRequest())
	require.NoError(t, err)
	_, err = rec.Generate(ctx, translationRequest())
	require.Error(t, err)

	events, err := st.EventRepo().QueryLLMEvents(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)

	failed, ok := events[0], events[1]
	assert.False(t, failed.Success)
	assert.Contains(t, failed.ErrorMessage, "down")
	assert.True(t, ok.Success)
	assert.Equal(t, "mock", ok.Provider)
	assert.Equal(t, "translate-hi", ok.Purpose)
	assert.Equal(t, 30, ok.InputTokens)
	assert.Contains(t, ok.RequestBody, "[system]\nYou translate app text.")
	assert.Contains(t, ok.RequestBody, "[schema: test-translation]")
	assert.Equal(t, `{"text":"नमस्ते"}`, ok.ResponseBody)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "llm request failed", hook.LastEntry().Message)
}

func TestPurposeFrom(t *testing.T) {
	assert.Equal(t, "unknown", PurposeFrom(context.Background()))
	assert.Equal(t, "x", PurposeFrom(WithPurpose(context.Background(), "x")))
}
