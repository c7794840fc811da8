package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// DocumentRepo stores whole documents under fixed keys. Each Put replaces
// the previous value.
type DocumentRepo interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put overwrites the value stored under key.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Lesson event actions.
const (
	LessonOpened    = "opened"
	LessonCompleted = "completed"
	LessonExited    = "exited"
)

// LessonEventData captures one lesson lifecycle event.
type LessonEventData struct {
	AttemptID      string
	ProfileID      string
	LessonID       string
	Action         string
	StepIndex      int
	Score          int
	TotalQuestions int
	XP             int
}

// LessonEventRecord is a stored lesson event.
type LessonEventRecord struct {
	LessonEventData
	Sequence  int64
	Timestamp time.Time
}

// Reward kinds.
const (
	RewardSignup     = "signup"
	RewardPractice   = "practice"
	RewardQuestion   = "question"
	RewardCompletion = "completion"
)

// RewardEventData captures one experience award.
type RewardEventData struct {
	ProfileID string
	LessonID  string
	Kind      string
	Amount    int
}

// RewardEventRecord is a stored reward event.
type RewardEventRecord struct {
	RewardEventData
	Sequence  int64
	Timestamp time.Time
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	LLMRequestEventData
	ID        int
	Sequence  int64
	Timestamp time.Time
}

// LLMUsage aggregates LLM calls for one purpose or model.
type LLMUsage struct {
	Key          string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to the event log.
type EventRepo interface {
	AppendLessonEvent(ctx context.Context, data LessonEventData) error
	QueryLessonEvents(ctx context.Context, opts QueryOpts) ([]LessonEventRecord, error)
	// LessonCompletions counts completed events per lesson id.
	LessonCompletions(ctx context.Context) (map[string]int, error)

	AppendRewardEvent(ctx context.Context, data RewardEventData) error
	// RewardTotals sums award amounts per kind for one profile.
	RewardTotals(ctx context.Context, profileID string) (map[string]int, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)
	// GetLLMEvent returns the event with the given id, or nil.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
