package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	contractx "github.com/wanderstay/concierge/agent/contract"
)

// UnknownFunctionOutcome is the fixed outcome for an unresolved tool name.
const UnknownFunctionOutcome = "Unknown function call."

// Executor dispatches validated tool calls through a Catalog. Every failure
// mode short of a programming bug in the Executor itself is normalized into
// a ToolResult so the reasoning loop can continue the conversation.
type Executor struct {
	catalog *Catalog
}

var _ contractx.ToolGateway = (*Executor)(nil)

func NewExecutor(catalog *Catalog) *Executor {
	return &Executor{catalog: catalog}
}

func (e *Executor) Specs() []contractx.ToolSpec {
	return e.catalog.Specs()
}

func (e *Executor) Execute(ctx context.Context, identity string, req contractx.ToolRequest) (result contractx.ToolResult) {
	result = contractx.ToolResult{CallID: req.CallID, Tool: req.Tool}

	handler, spec, ok := e.catalog.Resolve(req.Tool)
	if !ok {
		log.Warn().Str("tool", req.Tool).Msg("unknown tool requested")
		result.Error = UnknownFunctionOutcome
		return result
	}

	if err := validateArgs(spec, req.Args); err != nil {
		result.Error = err.Error()
		return result
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("tool", req.Tool).Any("panic", r).Msg("tool handler panicked")
			result.Result = ""
			result.Error = fmt.Sprintf("tool %s failed: %v", req.Tool, r)
		}
	}()

	out, err := handler(ctx, identity, req.Args)
	if err != nil {
		log.Warn().Err(err).Str("tool", req.Tool).Str("identity", identity).Msg("tool handler failed")
		result.Error = err.Error()
		return result
	}

	result.Result = out
	return result
}

func validateArgs(spec contractx.ToolSpec, args map[string]any) error {
	missing := make([]string, 0)
	for name, param := range spec.Params {
		val, present := args[name]
		if !present || val == nil {
			if param.Required {
				missing = append(missing, name)
			}
			continue
		}
		if err := checkType(name, param.Type, val); err != nil {
			return err
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing required arguments: %s", strings.Join(missing, ", "))
	}
	return nil
}

func checkType(name string, want contractx.ParamType, val any) error {
	switch want {
	case contractx.ParamString:
		if _, ok := val.(string); !ok {
			return fmt.Errorf("argument %s must be a string", name)
		}
	case contractx.ParamBoolean:
		if _, ok := val.(bool); !ok {
			return fmt.Errorf("argument %s must be a boolean", name)
		}
	case contractx.ParamNumber:
		if !isNumeric(val) {
			return fmt.Errorf("argument %s must be a number", name)
		}
	case contractx.ParamInteger:
		f, ok := numericValue(val)
		if !ok || f != float64(int64(f)) {
			return fmt.Errorf("argument %s must be an integer", name)
		}
	case contractx.ParamObject:
		if _, ok := val.(map[string]any); !ok {
			return fmt.Errorf("argument %s must be an object", name)
		}
	case contractx.ParamArray:
		if _, ok := val.([]any); !ok {
			return fmt.Errorf("argument %s must be an array", name)
		}
	}
	return nil
}

func isNumeric(val any) bool {
	_, ok := numericValue(val)
	return ok
}

// numericValue accepts the shapes JSON decoding produces for numbers.
func numericValue(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
