package advisor

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/smartkisan/kisan-advisor/internal/advice"
	"github.com/smartkisan/kisan-advisor/internal/completion"
	"github.com/smartkisan/kisan-advisor/internal/history"
	"github.com/smartkisan/kisan-advisor/internal/models"
	"github.com/smartkisan/kisan-advisor/internal/prompt"
	"github.com/smartkisan/kisan-advisor/internal/region"
	"github.com/smartkisan/kisan-advisor/internal/weather"
)

// AdviceRequest asks for structured advice for one crop and region.
// Coordinates override the region's catalogue location when set.
type AdviceRequest struct {
	Crop             string
	Region           string
	Language         models.Language
	SpecificQuestion string
	Coordinates      *region.Coordinates
}

// AdviceResult always carries a complete Advice, whatever the outcome.
type AdviceResult struct {
	ID          string
	Outcome     Outcome
	Advice      models.AdvicePayload
	Source      string
	Err         error
	WeatherUsed bool
	Current     *models.CurrentWeather
	DataSources models.DataSources
	Latency     time.Duration
}

type gathered struct {
	weather  weather.Result
	analysis history.Analysis
}

// gather fetches weather and history concurrently. Neither step fails; both
// degrade on their own.
func (s *Service) gather(ctx context.Context, coords region.Coordinates, crop, regionName string) gathered {
	var out gathered
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		wctx, cancel := context.WithTimeout(gctx, s.opts.Timeout)
		defer cancel()
		out.weather = s.weather.Lookup(wctx, coords.Lat, coords.Lng, s.opts.ForecastDays)
		return nil
	})
	g.Go(func() error {
		out.analysis = s.analyst.Analyze(crop, regionName)
		return nil
	})
	_ = g.Wait()
	return out
}

// Advise produces structured advice. It never returns an error; failures are
// reported through Outcome and Err.
func (s *Service) Advise(ctx context.Context, req AdviceRequest) AdviceResult {
	start := s.now()
	req.Crop = strings.TrimSpace(req.Crop)
	if req.Crop == "" {
		req.Crop = "wheat"
	}
	if strings.TrimSpace(req.Region) == "" {
		req.Region = region.Default
	}

	coords := region.Resolve(req.Region)
	if req.Coordinates != nil {
		coords = *req.Coordinates
	}
	data := s.gather(ctx, coords, req.Crop, req.Region)
	cur := data.weather.Report.Current

	res := AdviceResult{
		ID:          uuid.NewString(),
		WeatherUsed: data.weather.Live(),
		DataSources: models.DataSources{
			RealTimeWeather:  data.weather.Live(),
			HistoricalTrends: data.analysis.Trend != nil,
			SoilAnalysis:     data.analysis.Soil != nil,
			CropPerformance:  data.analysis.Performance != nil,
		},
	}
	fallback := advice.Conditions{
		Crop:        req.Crop,
		Region:      req.Region,
		Language:    req.Language,
		Current:     cur,
		Forecast:    data.weather.Report.Forecast,
		Soil:        data.analysis.Soil,
		Performance: data.analysis.Performance,
	}

	logger := s.logger.With(
		zap.String("id", res.ID),
		zap.String("crop", req.Crop),
		zap.String("region", req.Region),
		zap.String("language", string(req.Language)),
	)

	switch {
	case s.llm == nil:
		res.Outcome = OutcomeUnconfigured
		res.Source = SourceDynamicMock
		res.Advice = advice.Structured(fallback)
	default:
		p := prompt.BuildAdvice(prompt.AdviceInput{
			Crop:             req.Crop,
			Region:           req.Region,
			Language:         req.Language,
			Current:          &cur,
			Forecast:         data.weather.Report.Forecast,
			Analysis:         data.analysis,
			SpecificQuestion: req.SpecificQuestion,
		})
		payload, err := s.completeAdvice(ctx, p)
		if err != nil {
			res.Outcome = OutcomeDegraded
			res.Source = SourceDynamicFallback
			res.Err = err
			res.WeatherUsed = false
			res.Advice = advice.Structured(fallback)
			break
		}
		res.Outcome = OutcomeOK
		res.Source = s.llm.Name()
		res.Advice = payload
		res.Current = &cur
	}

	res.Latency = s.now().Sub(start)
	logger.Info("advice generated",
		zap.String("outcome", string(res.Outcome)),
		zap.String("source", res.Source),
		zap.Bool("fallback_used", res.Outcome != OutcomeOK),
		zap.Bool("weather_live", data.weather.Live()),
		zap.Duration("latency", res.Latency),
		zap.Error(res.Err))

	s.record(ctx, models.Interaction{
		ID:        res.ID,
		Endpoint:  "advice",
		Crop:      req.Crop,
		Region:    req.Region,
		Language:  req.Language,
		Source:    res.Source,
		Outcome:   string(res.Outcome),
		Error:     errString(res.Err),
		Latency:   res.Latency,
		CreatedAt: start,
	})
	return res
}

func (s *Service) completeAdvice(ctx context.Context, p prompt.Prompt) (models.AdvicePayload, error) {
	cctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	raw, err := s.llm.Complete(cctx, completion.AdviceRequest(p.System, p.User, s.opts.AdviceMaxTokens))
	if err != nil {
		return models.AdvicePayload{}, err
	}
	return advice.Parse(raw)
}
