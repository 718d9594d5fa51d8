package reasoning

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go"
	contractx "github.com/wanderstay/concierge/agent/contract"
	llmx "github.com/wanderstay/concierge/agent/llm"
)

// Client adapts the chat-completions wire protocol to the orchestration
// core's ReasoningClient contract.
type Client struct {
	api          *openaisdk.Client
	model        string
	temperature  float64
	maxTokens    int
	systemPrompt string
}

var _ contractx.ReasoningClient = (*Client)(nil)

func NewClient(api *openaisdk.Client, cfg llmx.Config, systemPrompt string) (*Client, error) {
	if api == nil {
		return nil, errors.New("openai client is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		api:          api,
		model:        strings.TrimSpace(cfg.Model),
		temperature:  cfg.Temperature,
		maxTokens:    cfg.MaxCompletionToken,
		systemPrompt: strings.TrimSpace(systemPrompt),
	}, nil
}

func (c *Client) Send(ctx context.Context, history []contractx.Turn, specs []contractx.ToolSpec) (contractx.ModelReply, error) {
	msgs, err := toMessages(c.systemPrompt, history)
	if err != nil {
		return contractx.ModelReply{}, err
	}

	params := openaisdk.ChatCompletionNewParams{
		Model:       openaisdk.ChatModel(c.model),
		Messages:    msgs,
		Tools:       toToolParams(specs),
		Temperature: openaisdk.Float(c.temperature),
	}
	if c.maxTokens > 0 {
		params.MaxTokens = openaisdk.Int(int64(c.maxTokens))
	}

	completion, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return contractx.ModelReply{}, fmt.Errorf("%w: chat completion: %v", contractx.ErrModelInvoke, err)
	}
	if len(completion.Choices) == 0 {
		return contractx.ModelReply{}, fmt.Errorf("%w: completion has no choices", contractx.ErrModelInvoke)
	}

	return parseReply(completion.Choices[0].Message)
}
