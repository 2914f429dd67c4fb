// Package advisor runs the advice and chat pipelines: gather weather and
// history, assemble a prompt, ask the completion provider and fall back to
// deterministic answers when that is not possible.
package advisor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/smartkisan/kisan-advisor/internal/completion"
	"github.com/smartkisan/kisan-advisor/internal/history"
	"github.com/smartkisan/kisan-advisor/internal/models"
	"github.com/smartkisan/kisan-advisor/internal/weather"
)

// Outcome tags how a response was produced.
type Outcome string

const (
	// OutcomeOK means the completion provider answered and was usable.
	OutcomeOK Outcome = "ok"
	// OutcomeUnconfigured means no provider is configured; deterministic
	// answers are the normal path.
	OutcomeUnconfigured Outcome = "unconfigured"
	// OutcomeDegraded means the provider failed and a fallback was served.
	OutcomeDegraded Outcome = "degraded"
)

// Response sources reported to clients.
const (
	SourceDynamicMock     = "dynamic-mock-data"
	SourceDynamicFallback = "dynamic-fallback"
	SourceChatMock        = "mock-data"
	SourceChatFallback    = "fallback"
)

// WeatherSource looks up a forecast, degrading to mock data on failure.
type WeatherSource interface {
	Lookup(ctx context.Context, lat, lng float64, days int) weather.Result
}

// Analyst answers historical questions for a crop and region.
type Analyst interface {
	Analyze(crop, region string) history.Analysis
}

// Recorder persists interactions. Failures are logged and ignored.
type Recorder interface {
	RecordInteraction(ctx context.Context, in models.Interaction) error
}

// Options tunes the pipelines. Zero values take the defaults.
type Options struct {
	ChatMaxTokens   int
	AdviceMaxTokens int
	HistoryWindow   int
	ForecastDays    int
	Timeout         time.Duration
}

const (
	defaultChatMaxTokens   = 1200
	defaultAdviceMaxTokens = 2000
	defaultHistoryWindow   = 10
	defaultTimeout         = 10 * time.Second
)

func (o Options) withDefaults() Options {
	if o.ChatMaxTokens <= 0 {
		o.ChatMaxTokens = defaultChatMaxTokens
	}
	if o.AdviceMaxTokens <= 0 {
		o.AdviceMaxTokens = defaultAdviceMaxTokens
	}
	if o.HistoryWindow <= 0 {
		o.HistoryWindow = defaultHistoryWindow
	}
	if o.ForecastDays <= 0 {
		o.ForecastDays = weather.DefaultDays
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return o
}

// Service is safe for concurrent use; it holds no per-request state.
type Service struct {
	weather  WeatherSource
	analyst  Analyst
	llm      completion.Client
	recorder Recorder
	logger   *zap.Logger
	opts     Options
	now      func() time.Time
}

// New wires a Service. llm may be nil, in which case every request is
// answered deterministically. recorder may be nil.
func New(ws WeatherSource, analyst Analyst, llm completion.Client, recorder Recorder, logger *zap.Logger, opts Options) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		weather:  ws,
		analyst:  analyst,
		llm:      llm,
		recorder: recorder,
		logger:   logger,
		opts:     opts.withDefaults(),
		now:      time.Now,
	}
}

// Configured reports whether a completion provider is available.
func (s *Service) Configured() bool { return s.llm != nil }

func (s *Service) record(ctx context.Context, in models.Interaction) {
	if s.recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.Timeout)
	defer cancel()
	if err := s.recorder.RecordInteraction(ctx, in); err != nil {
		s.logger.Warn("failed to record interaction",
			zap.String("id", in.ID),
			zap.String("endpoint", in.Endpoint),
			zap.Error(err))
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
