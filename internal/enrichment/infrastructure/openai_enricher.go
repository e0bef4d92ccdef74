package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/felixgeelhaar/daybreak/internal/enrichment/domain"
	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker/v2"
)

// OpenAIEnricherConfig configures the LLM-backed enricher.
type OpenAIEnricherConfig struct {
	APIKey  string
	BaseURL string
	Model   string

	// RequestTimeout bounds a single completion call.
	RequestTimeout time.Duration

	// MaxRequests is the number of probes allowed in half-open state.
	MaxRequests uint32

	// Timeout is the period of the open state.
	Timeout time.Duration

	// FailureThreshold trips the breaker after this many consecutive failures.
	FailureThreshold uint32
}

// DefaultOpenAIEnricherConfig returns a sensible default configuration.
func DefaultOpenAIEnricherConfig(apiKey string) OpenAIEnricherConfig {
	return OpenAIEnricherConfig{
		APIKey:           apiKey,
		Model:            openai.GPT4oMini,
		RequestTimeout:   10 * time.Second,
		MaxRequests:      3,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// OpenAIEnricher derives memo defaults from a chat completion. All calls run
// through a circuit breaker; when the breaker is open or the request fails,
// the deterministic fallback answers instead, so Enrich never blocks memo
// creation on a flaky upstream.
type OpenAIEnricher struct {
	client   *openai.Client
	model    string
	timeout  time.Duration
	breaker  *gobreaker.CircuitBreaker[domain.Enrichment]
	fallback *FallbackEnricher
	logger   *slog.Logger
}

// NewOpenAIEnricher creates the LLM-backed enricher.
func NewOpenAIEnricher(config OpenAIEnricherConfig, logger *slog.Logger) *OpenAIEnricher {
	if logger == nil {
		logger = slog.Default()
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	settings := gobreaker.Settings{
		Name:        "openai-enricher",
		MaxRequests: config.MaxRequests,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &OpenAIEnricher{
		client:   openai.NewClientWithConfig(clientConfig),
		model:    config.Model,
		timeout:  config.RequestTimeout,
		breaker:  gobreaker.NewCircuitBreaker[domain.Enrichment](settings),
		fallback: NewFallbackEnricher(),
		logger:   logger,
	}
}

const enricherSystemPrompt = `You classify personal tasks. Given a task title and its kind
(deadline, routine or backlog), respond with JSON:
{"genre": one of [work, health, learning, finance, household, general],
 "session_minutes": realistic minutes for one working session (5-120),
 "total_minutes": realistic total minutes to finish (0 for routines)}`

// Enrich asks the model for defaults. Any failure path degrades to the
// deterministic fallback and reports domain.ErrEnrichmentUnavailable alongside
// the fallback values, so callers can both proceed and observe the outage.
func (e *OpenAIEnricher) Enrich(ctx context.Context, title, memoType string) (domain.Enrichment, error) {
	enrichment, err := e.breaker.Execute(func() (domain.Enrichment, error) {
		return e.complete(ctx, title, memoType)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			e.logger.Warn("enrichment circuit open, using fallback", "title", title)
		} else {
			e.logger.Warn("enrichment request failed, using fallback", "title", title, "error", err)
		}
		fallback, _ := e.fallback.Enrich(ctx, title, memoType)
		return fallback, domain.ErrEnrichmentUnavailable
	}
	return enrichment, nil
}

func (e *OpenAIEnricher) complete(ctx context.Context, title, memoType string) (domain.Enrichment, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		MaxTokens:   100,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: enricherSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("title: %s\nkind: %s", title, memoType)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return domain.Enrichment{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return domain.Enrichment{}, errors.New("empty completion response")
	}

	return parseEnrichment(resp.Choices[0].Message.Content)
}

func parseEnrichment(content string) (domain.Enrichment, error) {
	content = strings.TrimSpace(content)
	// Models occasionally wrap JSON in a code fence despite the response format.
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var raw struct {
		Genre          string `json:"genre"`
		SessionMinutes int    `json:"session_minutes"`
		TotalMinutes   int    `json:"total_minutes"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &raw); err != nil {
		return domain.Enrichment{}, fmt.Errorf("parse enrichment response: %w", err)
	}

	if raw.SessionMinutes < 0 {
		raw.SessionMinutes = 0
	}
	if raw.TotalMinutes < 0 {
		raw.TotalMinutes = 0
	}
	return domain.Enrichment{
		Genre:                  strings.ToLower(strings.TrimSpace(raw.Genre)),
		SessionDurationMinutes: raw.SessionMinutes,
		TotalDurationMinutes:   raw.TotalMinutes,
	}, nil
}
