package llm

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/invopop/jsonschema"
)

// Conversation roles accepted by the gateway.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var (
	// ErrTransport wraps network, timeout, and throttling failures from the
	// provider. Not retried beyond the gateway's own bounded retry.
	ErrTransport = errors.New("provider call failed")

	// ErrNoToolInvocation means the model responded without invoking any
	// tool. The wrapped message carries a truncated raw-response snapshot.
	ErrNoToolInvocation = errors.New("model did not invoke a tool")

	// ErrUnexpectedTool means the model invoked a tool other than the one
	// declared for the operation. The wrapped message carries the name.
	ErrUnexpectedTool = errors.New("unexpected tool")

	// ErrMalformedArguments means a tool was invoked but its argument
	// payload could not be decoded into a JSON object. Distinct from
	// ErrNoToolInvocation.
	ErrMalformedArguments = errors.New("malformed tool arguments")
)

// Turn is one conversation turn sent to the provider.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ToolSpec declares the single tool the model must answer through.
type ToolSpec struct {
	Name        string
	Description string
	Schema      any // JSON Schema for the tool input
}

// Request is one outbound inference call.
type Request struct {
	System      string
	Turns       []Turn
	Tool        ToolSpec
	Temperature float64
	TopP        float64
	MaxTokens   int
}

// Gateway issues requests to the inference provider and returns the raw,
// undecoded response body. Response-shape interpretation is deliberately
// left to ExtractToolInvocation: the provider's shape is not stable across
// invocation modes or model families.
type Gateway interface {
	Invoke(ctx context.Context, req Request) (json.RawMessage, error)
	ModelID() string
	Region() string
}

// ToolInvocation is the normalized form of "the model decided to call
// exactly one tool". Arguments is always a JSON object, never a string.
type ToolInvocation struct {
	Name      string
	Arguments json.RawMessage
}

// ParseToolArguments unmarshals tool arguments into the target struct.
func ParseToolArguments[T any](arguments json.RawMessage) (T, error) {
	var result T
	if err := json.Unmarshal(arguments, &result); err != nil {
		return result, err
	}
	return result, nil
}

// GenerateSchemaFrom generates a JSON schema from an instance value.
func GenerateSchemaFrom(v any) any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return reflector.Reflect(v)
}
