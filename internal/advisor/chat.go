package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartkisan/kisan-advisor/internal/advice"
	"github.com/smartkisan/kisan-advisor/internal/completion"
	"github.com/smartkisan/kisan-advisor/internal/convo"
	"github.com/smartkisan/kisan-advisor/internal/models"
	"github.com/smartkisan/kisan-advisor/internal/prompt"
	"github.com/smartkisan/kisan-advisor/internal/region"
)

// ChatRequest is one conversational turn.
type ChatRequest struct {
	Message    string
	History    []models.ChatTurn
	Language   models.Language
	UserRegion string
}

// ChatResult always carries a non-empty Response.
type ChatResult struct {
	ID          string
	Outcome     Outcome
	Response    string
	Source      string
	Err         error
	Context     models.ConversationContext
	WeatherUsed bool
	Weather     *models.WeatherBrief
	Latency     time.Duration
}

// Chat answers a conversational message. It never returns an error; a
// provider failure yields a canned reply with Outcome degraded.
func (s *Service) Chat(ctx context.Context, req ChatRequest) ChatResult {
	start := s.now()
	conv := convo.Extract(req.History, req.Message)

	// The user's saved region wins; the conversation only fills the gap.
	regionName := strings.TrimSpace(req.UserRegion)
	if regionName == "" {
		regionName = conv.Region
	}
	if regionName == "" {
		regionName = region.Default
	}

	data := s.gather(ctx, region.Resolve(regionName), conv.Crop, regionName)
	var brief *models.WeatherBrief
	if data.weather.Live() {
		b := data.weather.Report.Brief(regionName)
		brief = &b
	}

	res := ChatResult{
		ID:          uuid.NewString(),
		Context:     conv,
		WeatherUsed: brief != nil,
		Weather:     brief,
	}

	if s.llm == nil {
		res.Outcome = OutcomeUnconfigured
		res.Source = SourceChatMock
		res.Response = advice.Reply(req.Message, req.Language, brief)
	} else {
		p := prompt.BuildChat(prompt.ChatInput{
			Message:  req.Message,
			Context:  conv,
			Language: req.Language,
			Weather:  brief,
			Analysis: data.analysis,
		})
		reply, err := s.completeChat(ctx, p, recent(req.History, s.opts.HistoryWindow), req.Language)
		if err != nil {
			res.Outcome = OutcomeDegraded
			res.Source = SourceChatFallback
			res.Err = err
			res.Response = advice.Reply(req.Message, req.Language, brief)
		} else {
			res.Outcome = OutcomeOK
			res.Source = s.llm.Name()
			res.Response = reply
		}
	}

	res.Latency = s.now().Sub(start)
	s.logger.Info("chat answered",
		zap.String("id", res.ID),
		zap.String("region", regionName),
		zap.String("crop", conv.Crop),
		zap.String("outcome", string(res.Outcome)),
		zap.Bool("fallback_used", res.Outcome != OutcomeOK),
		zap.Bool("weather_used", res.WeatherUsed),
		zap.Int("history_turns", len(req.History)),
		zap.Duration("latency", res.Latency),
		zap.Error(res.Err))

	s.record(ctx, models.Interaction{
		ID:        res.ID,
		Endpoint:  "chat",
		Crop:      conv.Crop,
		Region:    regionName,
		Language:  req.Language,
		Source:    res.Source,
		Outcome:   string(res.Outcome),
		Error:     errString(res.Err),
		Latency:   res.Latency,
		CreatedAt: start,
	})
	return res
}

func (s *Service) completeChat(ctx context.Context, p prompt.Prompt, history []models.ChatTurn, lang models.Language) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	reply, err := s.llm.Complete(cctx, completion.ChatRequest(p.System, history, p.User, s.opts.ChatMaxTokens))
	if err != nil {
		return "", err
	}
	reply = advice.Polish(reply, lang)
	if reply == "" {
		return "", fmt.Errorf("chat: %w", completion.ErrEmptyCompletion)
	}
	return reply, nil
}

// recent keeps the last n turns in order.
func recent(turns []models.ChatTurn, n int) []models.ChatTurn {
	if len(turns) <= n {
		return turns
	}
	return turns[len(turns)-n:]
}
