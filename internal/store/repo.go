package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a single event lookup matches nothing.
var ErrNotFound = errors.New("event not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	SessionID string    // only events of this session
}

// LLMRequestEventData captures one model call.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	SessionID    string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates calls per purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs float64
}

// ModelUsage aggregates token usage per model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// LessonAction names a lesson lifecycle transition.
type LessonAction string

const (
	ActionStart    LessonAction = "start"
	ActionSection  LessonAction = "section"
	ActionEvaluate LessonAction = "evaluate"
	ActionReset    LessonAction = "reset"
)

// DetailEmptyResponse marks a section call that succeeded but returned no
// text. Nothing was rendered for it.
const DetailEmptyResponse = "empty response"

// LessonEventData captures one lesson transition.
type LessonEventData struct {
	SessionID  string
	Action     LessonAction
	Language   string
	Difficulty string
	Sentence   string
	Custom     bool
	Purpose    string // set for section and evaluate events
	Success    bool
	Detail     string // failure message, if any
}

// LessonEventRecord is a stored lesson event.
type LessonEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LessonEventData
}

// LessonSummary folds the events of one started lesson.
type LessonSummary struct {
	SessionID  string
	StartedAt  time.Time
	Language   string
	Difficulty string
	Sentence   string
	Custom     bool
	Sections   int // sections rendered
	Failures   int // banners shown
	Evaluated  bool
}

// EventRepo provides append and query access to events.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	AppendLessonEvent(ctx context.Context, data LessonEventData) error
	QueryLessonEvents(ctx context.Context, opts QueryOpts) ([]LessonEventRecord, error)
	LessonHistory(ctx context.Context, limit int) ([]LessonSummary, error)
}
