// Package gateway performs one lesson call against the model and folds
// every outcome into a Result, so callers never see a raised error.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/lingua/internal/llm"
	"github.com/abhisek/lingua/internal/logging"
	"github.com/abhisek/lingua/internal/prompt"
)

// FailureKind classifies a failed call. There is a single kind today.
type FailureKind int

const (
	KindGatewayCallFailure FailureKind = iota + 1
)

func (k FailureKind) String() string {
	if k == KindGatewayCallFailure {
		return "gateway_call_failure"
	}
	return "unknown"
}

// Failure describes why a call produced no text.
type Failure struct {
	Kind    FailureKind
	Purpose prompt.Purpose
	Err     error

	// vendor is the name shown in the banner, e.g. "Claude".
	vendor string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s call failed: %v", f.Purpose, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Notice is the non-fatal banner text shown to the learner.
func (f *Failure) Notice() string {
	return fmt.Sprintf("%s API 오류: %v", f.vendor, f.Err)
}

// Result is the outcome of one call. Exactly one of Text and Failure is
// meaningful: Failure is nil on success, and Text may be empty when the
// model answered with nothing.
type Result struct {
	Purpose prompt.Purpose
	Text    string
	Failure *Failure
	Latency time.Duration
}

// OK reports whether the call succeeded.
func (r Result) OK() bool { return r.Failure == nil }

// Present reports whether there is text worth rendering.
func (r Result) Present() bool { return r.Failure == nil && r.Text != "" }

// Config controls every call made through a Gateway.
type Config struct {
	MaxTokens int
	Timeout   time.Duration // zero means no timeout
	Vendor    string        // banner label, default "Claude"
}

// DefaultConfig mirrors the lesson defaults: 2000 tokens, no timeout.
func DefaultConfig() Config {
	return Config{MaxTokens: 2000, Vendor: "Claude"}
}

// Gateway sends lesson prompts to one provider.
type Gateway struct {
	provider llm.Provider
	cfg      Config
}

// New creates a Gateway. A nil provider is allowed; every call then fails
// with llm.ErrNotConfigured.
func New(p llm.Provider, cfg Config) *Gateway {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultConfig().MaxTokens
	}
	if cfg.Vendor == "" {
		cfg.Vendor = DefaultConfig().Vendor
	}
	return &Gateway{provider: p, cfg: cfg}
}

// Model returns the model id calls are sent to, or "" without a provider.
func (g *Gateway) Model() string {
	if g.provider == nil {
		return ""
	}
	return g.provider.ModelID()
}

// Call sends text, with the display-language directive appended, as a
// single user message and returns the first text segment of the answer.
func (g *Gateway) Call(ctx context.Context, purpose prompt.Purpose, text string) Result {
	ctx = llm.WithPurpose(ctx, string(purpose))
	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	log := logging.WithContext(ctx)
	start := time.Now()

	answer, err := g.generate(ctx, text)
	res := Result{Purpose: purpose, Latency: time.Since(start)}

	if err != nil {
		res.Failure = &Failure{Kind: KindGatewayCallFailure, Purpose: purpose, Err: err, vendor: g.cfg.Vendor}
		log.WithError(err).WithFields(logrus.Fields{
			"latency_ms": res.Latency.Milliseconds(),
		}).Warn("gateway call failed")
		return res
	}

	res.Text = answer
	log.WithFields(logrus.Fields{
		"latency_ms": res.Latency.Milliseconds(),
		"empty":      strings.TrimSpace(answer) == "",
	}).Info("gateway call completed")
	return res
}

func (g *Gateway) generate(ctx context.Context, text string) (answer string, err error) {
	if g.provider == nil {
		return "", llm.ErrNotConfigured
	}

	// A misbehaving provider must not take the lesson down with it.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider panic: %v", r)
		}
	}()

	resp, err := g.provider.Generate(ctx, llm.UserPrompt(prompt.WithDirective(text), g.cfg.MaxTokens))
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", errors.New("provider returned no response")
	}
	return resp.Text, nil
}
