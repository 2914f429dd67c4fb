package advisor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartkisan/kisan-advisor/internal/completion"
	"github.com/smartkisan/kisan-advisor/internal/history"
	"github.com/smartkisan/kisan-advisor/internal/models"
	"github.com/smartkisan/kisan-advisor/internal/region"
	"github.com/smartkisan/kisan-advisor/internal/weather"
)

type fakeWeather struct {
	err    error
	lat    float64
	lng    float64
	called int
}

func (f *fakeWeather) Lookup(_ context.Context, lat, lng float64, days int) weather.Result {
	f.called++
	f.lat, f.lng = lat, lng
	report := weather.Mock(lat, lng, days, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC))
	if f.err != nil {
		return weather.Result{Report: report, Source: weather.SourceMock, Err: f.err}
	}
	return weather.Result{Report: report, Source: weather.SourceOpenMeteo}
}

type fakeAnalyst struct{}

func (fakeAnalyst) Analyze(crop, regionName string) history.Analysis {
	return history.Analysis{
		Trend: &models.HistoricalTrend{},
		Soil:  &models.SoilProfile{SoilTypes: []string{"loam"}},
	}
}

type fakeLLM struct {
	reply string
	err   error
	got   completion.Request
}

func (f *fakeLLM) Name() string { return "fake" }

func (f *fakeLLM) Complete(_ context.Context, req completion.Request) (string, error) {
	f.got = req
	return f.reply, f.err
}

type fakeRecorder struct {
	mu   sync.Mutex
	rows []models.Interaction
	err  error
}

func (f *fakeRecorder) RecordInteraction(_ context.Context, in models.Interaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, in)
	return f.err
}

const goodAdvice = `{"irrigation":{"recommendation":"a","schedule":"b","water_amount":"c","urgency":"low"},
"fertilizer":{"recommendation":"a","type":"b","quantity":"c","timing":"d"},
"pest_control":{"recommendation":"a","common_pests":"b","organic_options":"c","chemical_options":"d"},
"sowing_harvest":{"optimal_timing":"a","preparation":"b","harvest_window":"c","yield_expectation":"d"},
"weather_alerts":{"current_risks":"a","precautions":"b","timeline":"c"},
"summary":"s","confidence":"high"}`

func TestAdviseUnconfigured(t *testing.T) {
	ws := &fakeWeather{}
	rec := &fakeRecorder{}
	svc := New(ws, fakeAnalyst{}, nil, rec, nil, Options{})

	res := svc.Advise(context.Background(), AdviceRequest{Crop: "wheat", Region: "sindh", Language: models.English})
	assert.Equal(t, OutcomeUnconfigured, res.Outcome)
	assert.Equal(t, SourceDynamicMock, res.Source)
	assert.Empty(t, res.Advice.MissingSections())
	assert.True(t, res.WeatherUsed)
	assert.True(t, res.DataSources.SoilAnalysis)
	assert.False(t, res.DataSources.CropPerformance)
	assert.Equal(t, region.Resolve("sindh").Lat, ws.lat)

	require.Len(t, rec.rows, 1)
	assert.Equal(t, "advice", rec.rows[0].Endpoint)
	assert.Equal(t, res.ID, rec.rows[0].ID)
}

func TestAdviseUsesExplicitCoordinates(t *testing.T) {
	ws := &fakeWeather{}
	svc := New(ws, fakeAnalyst{}, nil, nil, nil, Options{})
	svc.Advise(context.Background(), AdviceRequest{Region: "punjab", Coordinates: &region.Coordinates{Lat: 1, Lng: 2}})
	assert.Equal(t, 1.0, ws.lat)
	assert.Equal(t, 2.0, ws.lng)
}

func TestAdviseOK(t *testing.T) {
	llm := &fakeLLM{reply: "```json\n" + goodAdvice + "\n```"}
	svc := New(&fakeWeather{}, fakeAnalyst{}, llm, nil, nil, Options{})

	res := svc.Advise(context.Background(), AdviceRequest{Crop: "rice", Region: "sindh"})
	assert.Equal(t, OutcomeOK, res.Outcome)
	assert.Equal(t, "fake", res.Source)
	assert.Equal(t, models.Text("s"), res.Advice.Summary)
	require.NotNil(t, res.Current)
	assert.Equal(t, defaultAdviceMaxTokens, llm.got.MaxTokens)
	assert.Contains(t, llm.got.System, "RESPONSE FORMAT REQUIREMENTS")
}

func TestAdviseDegradesOnProviderAndParseFailures(t *testing.T) {
	cases := map[string]*fakeLLM{
		"status": {err: &completion.StatusError{Provider: "openrouter", Code: 503}},
		"prose":  {reply: "I think you should water your wheat."},
	}
	for name, llm := range cases {
		t.Run(name, func(t *testing.T) {
			rec := &fakeRecorder{err: errors.New("db down")}
			svc := New(&fakeWeather{}, fakeAnalyst{}, llm, rec, nil, Options{})

			res := svc.Advise(context.Background(), AdviceRequest{Crop: "wheat", Region: "punjab", Language: models.Urdu})
			assert.Equal(t, OutcomeDegraded, res.Outcome)
			assert.Equal(t, SourceDynamicFallback, res.Source)
			assert.Error(t, res.Err)
			assert.False(t, res.WeatherUsed)
			assert.Empty(t, res.Advice.MissingSections())
			assert.NotEmpty(t, res.Advice.Confidence)
			require.Len(t, rec.rows, 1)
			assert.Equal(t, string(OutcomeDegraded), rec.rows[0].Outcome)
		})
	}
}

func TestChatUnconfiguredGreets(t *testing.T) {
	svc := New(&fakeWeather{}, fakeAnalyst{}, nil, nil, nil, Options{})
	res := svc.Chat(context.Background(), ChatRequest{Message: "hello", Language: models.English})

	assert.Equal(t, OutcomeUnconfigured, res.Outcome)
	assert.Contains(t, res.Response, "Hello! I'm SmartKisan AI")
	assert.True(t, res.WeatherUsed)
	require.NotNil(t, res.Weather)
	assert.Equal(t, region.Default, res.Weather.Region)
}

func TestChatWeatherFailureIsNotUsed(t *testing.T) {
	svc := New(&fakeWeather{err: errors.New("timeout")}, fakeAnalyst{}, nil, nil, nil, Options{})
	res := svc.Chat(context.Background(), ChatRequest{Message: "hello"})
	assert.False(t, res.WeatherUsed)
	assert.Nil(t, res.Weather)
	assert.NotEmpty(t, res.Response)
}

func TestChatRegionPrecedence(t *testing.T) {
	ws := &fakeWeather{}
	svc := New(ws, fakeAnalyst{}, nil, nil, nil, Options{})

	svc.Chat(context.Background(), ChatRequest{Message: "my farm is in sindh", UserRegion: "balochistan"})
	assert.Equal(t, region.Resolve("balochistan").Lat, ws.lat)

	svc.Chat(context.Background(), ChatRequest{Message: "my farm is in sindh"})
	assert.Equal(t, region.Resolve("sindh").Lat, ws.lat)

	svc.Chat(context.Background(), ChatRequest{Message: "what now"})
	assert.Equal(t, region.Resolve(region.Default).Lat, ws.lat)
}

func TestChatOKSendsWindowedHistoryAndPolishes(t *testing.T) {
	llm := &fakeLLM{reply: "<s>Plan your irrigation</s>"}
	svc := New(&fakeWeather{}, fakeAnalyst{}, llm, nil, nil, Options{HistoryWindow: 2})

	turns := []models.ChatTurn{
		{Role: "user", Content: "I grow cotton"},
		{Role: "assistant", Content: "nice"},
		{Role: "user", Content: "in punjab"},
		{Role: "assistant", Content: "ok"},
	}
	res := svc.Chat(context.Background(), ChatRequest{Message: "water?", History: turns, Language: models.English})

	assert.Equal(t, OutcomeOK, res.Outcome)
	assert.Equal(t, "Plan your irrigation 💧", res.Response)
	assert.Equal(t, turns[2:], llm.got.History)
	assert.Equal(t, "cotton", res.Context.Crop)
	assert.Equal(t, "water?", llm.got.User)
	assert.InDelta(t, 0.1, llm.got.PresencePenalty, 1e-6)
}

func TestChatDegradesOnProviderFailure(t *testing.T) {
	llm := &fakeLLM{err: completion.ErrEmptyCompletion}
	svc := New(&fakeWeather{}, fakeAnalyst{}, llm, nil, nil, Options{})

	res := svc.Chat(context.Background(), ChatRequest{Message: "wheat", Language: models.Urdu})
	assert.Equal(t, OutcomeDegraded, res.Outcome)
	assert.Equal(t, SourceChatFallback, res.Source)
	assert.ErrorIs(t, res.Err, completion.ErrEmptyCompletion)
	assert.Contains(t, res.Response, "گندم")
}

func TestChatEmptyPolishedReplyDegrades(t *testing.T) {
	llm := &fakeLLM{reply: "<s> </s>"}
	svc := New(&fakeWeather{}, fakeAnalyst{}, llm, nil, nil, Options{})
	res := svc.Chat(context.Background(), ChatRequest{Message: ""})
	assert.Equal(t, OutcomeDegraded, res.Outcome)
	assert.NotEmpty(t, res.Response)
}

func TestRecent(t *testing.T) {
	turns := []models.ChatTurn{{Content: "a"}, {Content: "b"}, {Content: "c"}}
	assert.Equal(t, turns, recent(turns, 10))
	assert.Equal(t, turns[1:], recent(turns, 2))
}
