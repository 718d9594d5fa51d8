package reasoning

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	openaisdk "github.com/openai/openai-go"
	contractx "github.com/wanderstay/concierge/agent/contract"
)

// toMessages lowers the session history into chat-completion messages. Each
// tool-call turn becomes an assistant message carrying the call; its paired
// tool-result turn becomes the matching tool message.
func toMessages(systemPrompt string, history []contractx.Turn) ([]openaisdk.ChatCompletionMessageParamUnion, error) {
	msgs := make([]openaisdk.ChatCompletionMessageParamUnion, 0, len(history)+1)
	if strings.TrimSpace(systemPrompt) != "" {
		msgs = append(msgs, openaisdk.SystemMessage(systemPrompt))
	}

	for i, turn := range history {
		switch turn.Role {
		case contractx.RoleUser:
			msgs = append(msgs, openaisdk.UserMessage(turn.Text))
		case contractx.RoleAssistant:
			msgs = append(msgs, openaisdk.AssistantMessage(turn.Text))
		case contractx.RoleToolCall:
			args, err := json.Marshal(turn.Args)
			if err != nil {
				return nil, fmt.Errorf("%w: marshal args for tool=%s: %v", contractx.ErrValidation, turn.Tool, err)
			}
			msgs = append(msgs, openaisdk.ChatCompletionMessageParamUnion{
				OfAssistant: &openaisdk.ChatCompletionAssistantMessageParam{
					ToolCalls: []openaisdk.ChatCompletionMessageToolCallParam{
						{
							ID: callID(turn, i),
							Function: openaisdk.ChatCompletionMessageToolCallFunctionParam{
								Name:      turn.Tool,
								Arguments: string(args),
							},
						},
					},
				},
			})
		case contractx.RoleToolResult:
			msgs = append(msgs, openaisdk.ToolMessage(turn.Result, callID(turn, i-1)))
		default:
			return nil, fmt.Errorf("%w: unknown turn role %q", contractx.ErrValidation, turn.Role)
		}
	}
	return msgs, nil
}

// callID keeps tool-call and tool-result messages paired even when the
// stored turn predates call-id tracking.
func callID(turn contractx.Turn, i int) string {
	if turn.CallID != "" {
		return turn.CallID
	}
	return fmt.Sprintf("call_%d", i)
}

func toToolParams(specs []contractx.ToolSpec) []openaisdk.ChatCompletionToolParam {
	if len(specs) == 0 {
		return nil
	}
	out := make([]openaisdk.ChatCompletionToolParam, 0, len(specs))
	for _, spec := range specs {
		out = append(out, openaisdk.ChatCompletionToolParam{
			Function: openaisdk.FunctionDefinitionParam{
				Name:        spec.Name,
				Description: openaisdk.String(spec.Desc),
				Parameters:  toJSONSchema(spec),
			},
		})
	}
	return out
}

func toJSONSchema(spec contractx.ToolSpec) openaisdk.FunctionParameters {
	properties := make(map[string]any, len(spec.Params))
	required := make([]string, 0)
	for name, p := range spec.Params {
		prop := map[string]any{"type": string(p.Type)}
		if p.Desc != "" {
			prop["description"] = p.Desc
		}
		properties[name] = prop
		if p.Required {
			required = append(required, name)
		}
	}
	sort.Strings(required)

	schema := openaisdk.FunctionParameters{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// parseReply guards the protocol xor: a round yields either final text or
// one-or-more tool requests, never both and never neither. Partial text next
// to tool calls is dropped; only an eventual final answer reaches the user.
func parseReply(msg openaisdk.ChatCompletionMessage) (contractx.ModelReply, error) {
	if len(msg.ToolCalls) > 0 {
		requests := make([]contractx.ToolRequest, 0, len(msg.ToolCalls))
		for _, call := range msg.ToolCalls {
			name := strings.TrimSpace(call.Function.Name)
			if name == "" {
				return contractx.ModelReply{}, fmt.Errorf("%w: tool call name is empty", contractx.ErrSchemaViolation)
			}

			args := map[string]any{}
			if raw := strings.TrimSpace(call.Function.Arguments); raw != "" {
				if err := json.Unmarshal([]byte(raw), &args); err != nil {
					return contractx.ModelReply{}, fmt.Errorf("%w: invalid tool args for tool=%s: %v", contractx.ErrSchemaViolation, name, err)
				}
			}

			requests = append(requests, contractx.ToolRequest{
				CallID: call.ID,
				Tool:   name,
				Args:   args,
			})
		}
		return contractx.ModelReply{ToolRequests: requests}, nil
	}

	text := strings.TrimSpace(msg.Content)
	if text == "" {
		return contractx.ModelReply{}, fmt.Errorf("%w: round produced neither text nor tool calls", contractx.ErrSchemaViolation)
	}
	return contractx.ModelReply{Text: text}, nil
}
