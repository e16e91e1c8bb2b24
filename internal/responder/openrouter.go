package responder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// defaultOpenRouterBaseURL is the default OpenRouter API base URL.
const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// defaultTemperature is applied to non-reasoning models.
const defaultTemperature = 0.7

// HTTPDoer abstracts HTTP clients used by responders.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// OpenRouter calls the OpenRouter chat-completions API.
type OpenRouter struct {
	APIKey  string
	BaseURL string
	Client  HTTPDoer
	Model   ModelSpec
}

// FromEnv builds an OpenRouter responder using environment credentials.
func FromEnv(model ModelSpec, client HTTPDoer) (*OpenRouter, error) {
	apiKey := strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY"))
	if apiKey == "" {
		return nil, Permanent(fmt.Errorf("OPENROUTER_API_KEY is required"))
	}
	return NewOpenRouter(model, apiKey, "", client)
}

// NewOpenRouter constructs an OpenRouter responder with explicit settings.
func NewOpenRouter(model ModelSpec, apiKey, baseURL string, client HTTPDoer) (*OpenRouter, error) {
	if strings.TrimSpace(model.Slug) == "" {
		return nil, fmt.Errorf("model slug is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &OpenRouter{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  client,
		Model:   model,
	}, nil
}

type openRouterRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature *float64  `json:"temperature,omitempty"`
	Usage       struct {
		Include bool `json:"include"`
	} `json:"usage"`
}

type openRouterResponse struct {
	Choices []struct {
		FinishReason string `json:"finish_reason"`
		Message      struct {
			Content   string `json:"content"`
			Reasoning string `json:"reasoning"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     *int     `json:"prompt_tokens"`
		CompletionTokens *int     `json:"completion_tokens"`
		Cost             *float64 `json:"cost"`
		IsBYOK           bool     `json:"is_byok"`
		CostDetails      struct {
			UpstreamInferenceCost *float64 `json:"upstream_inference_cost"`
		} `json:"cost_details"`
	} `json:"usage"`
}

// Propose sends the conversation to OpenRouter and returns the reply with
// token and cost accounting. Failures are classified: network errors,
// 429, 408, and 5xx are transient; other non-2xx statuses are permanent.
func (o *OpenRouter) Propose(ctx context.Context, messages []Message) (Reply, error) {
	requestBody := openRouterRequest{
		Model:    o.Model.Slug,
		Messages: messages,
	}
	requestBody.Usage.Include = true
	if !o.Model.Reasoning {
		temperature := defaultTemperature
		requestBody.Temperature = &temperature
	}
	payload, err := json.Marshal(requestBody)
	if err != nil {
		return Reply{}, Permanent(fmt.Errorf("marshal request: %w", err))
	}

	endpoint := o.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return Reply{}, Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+o.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return Reply{}, ctx.Err()
		}
		return Reply{}, Transient(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return Reply{}, classifyStatus(resp, strings.TrimSpace(string(body)))
	}

	var parsed openRouterResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Reply{}, Malformed(fmt.Errorf("decode response: %w", err))
	}
	return buildReply(parsed, messages)
}

// classifyStatus maps a non-2xx HTTP status to the failure taxonomy.
func classifyStatus(resp *http.Response, body string) *CallError {
	err := fmt.Errorf("openrouter error: %s", body)
	callErr := &CallError{Kind: KindPermanent, Status: resp.StatusCode, Err: err}
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		callErr.Kind = KindTransient
		callErr.RetryAfter = retryAfterHeader(resp)
	case resp.StatusCode == http.StatusRequestTimeout:
		callErr.Kind = KindTransient
	case resp.StatusCode >= 500:
		callErr.Kind = KindTransient
	}
	return callErr
}

// retryAfterHeader reads a seconds-valued Retry-After header if present.
func retryAfterHeader(resp *http.Response) time.Duration {
	value := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if value == "" {
		return 0
	}
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}

// buildReply extracts content, tokens, and costs from a parsed response.
// Reasoning models sometimes leave content empty and put the answer in the
// reasoning field. Malformed responses still carry their usage so the
// caller's token and cost accounting stays complete.
func buildReply(parsed openRouterResponse, messages []Message) (Reply, error) {
	content := ""
	finishReason := ""
	if len(parsed.Choices) > 0 {
		choice := parsed.Choices[0]
		finishReason = choice.FinishReason
		content = strings.TrimSpace(choice.Message.Content)
		if content == "" {
			content = strings.TrimSpace(choice.Message.Reasoning)
		}
	}

	reply := Reply{Content: content, TokenMethod: TokenMethodApproximate}
	usage := parsed.Usage
	if usage.PromptTokens != nil && usage.CompletionTokens != nil {
		reply.PromptTokens = *usage.PromptTokens
		reply.CompletionTokens = *usage.CompletionTokens
		reply.TokenMethod = TokenMethodAPI
	} else {
		reply.PromptTokens = ApproxMessagesTokenCount(messages)
		reply.CompletionTokens = ApproxTokenCount(content)
	}
	if usage.Cost != nil {
		reply.Cost = *usage.Cost
	}
	// Upstream cost is additive only for BYOK requests; otherwise the
	// total already includes the provider charge.
	if usage.IsBYOK && usage.CostDetails.UpstreamInferenceCost != nil {
		reply.UpstreamCost = *usage.CostDetails.UpstreamInferenceCost
	}

	if len(parsed.Choices) == 0 {
		return reply, Malformed(fmt.Errorf("response has no choices"))
	}
	if content == "" {
		return reply, Malformed(fmt.Errorf("response content is empty (finish_reason %q)", finishReason))
	}
	return reply, nil
}
