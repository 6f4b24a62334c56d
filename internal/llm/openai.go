package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
)

// openaiClient implements LLMClient against any OpenAI-compatible chat
// completions endpoint.
type openaiClient struct {
	cfg      LLMConfig
	client   *openai.Client
	observer Observer
}

// NewOpenAIClient creates an LLMClient for cfg.Endpoint using cfg.APIKey.
func NewOpenAIClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		oc.BaseURL = cfg.Endpoint
	}
	oc.HTTPClient = &http.Client{}
	return &openaiClient{
		cfg:      cfg,
		client:   openai.NewClientWithConfig(oc),
		observer: observer,
	}
}

func (c *openaiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()
	temp, maxTok, timeout := c.cfg.resolve(req)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model:               c.cfg.Model,
		Temperature:         float32(temp),
		MaxCompletionTokens: maxTok,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt},
		},
	}
	if req.JSON {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	}

	resp, err := withRetry(ctx, c.cfg, func(ctx context.Context) (openai.ChatCompletionResponse, error) {
		r, err := c.client.CreateChatCompletion(ctx, chatReq)
		return r, asStatusError(err)
	})
	if err == nil && len(resp.Choices) == 0 {
		err = fmt.Errorf("%w: provider returned no choices", ErrInvalidOutput)
	}
	latency := time.Since(start).Milliseconds()
	c.observer.OnCallComplete(LLMCallEvent{
		Task:      req.Task,
		Provider:  ProviderOpenAI,
		Model:     c.cfg.Model,
		LatencyMs: latency,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
	if err != nil {
		return nil, err
	}
	return &GenerateResponse{
		Text:      resp.Choices[0].Message.Content,
		Model:     resp.Model,
		LatencyMs: latency,
	}, nil
}

// asStatusError maps go-openai's HTTP failures onto statusError so the
// retry policy treats both providers alike.
func asStatusError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode > 0 {
		return &statusError{Code: apiErr.HTTPStatusCode, Body: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode > 0 {
		return &statusError{Code: reqErr.HTTPStatusCode, Body: fmt.Sprint(reqErr.Err)}
	}
	return err
}

func (c *openaiClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_, err := c.client.ListModels(ctx)
	return err == nil
}
