package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"pageforge.app/planner/common/logger"
)

// snapshotLen bounds the raw-response excerpt attached to ErrNoToolInvocation.
const snapshotLen = 500

// Raw response shapes seen across invocation modes and SDK versions. All
// fields are optional; matchers below probe them in a fixed priority order.
type rawToolUse struct {
	Name      string          `json:"name"`
	ToolName  string          `json:"toolName"`
	Input     json.RawMessage `json:"input"`
	ToolInput json.RawMessage `json:"toolInput"`
}

type rawToolCall struct {
	Name      string          `json:"name"`
	ToolName  string          `json:"toolName"`
	Input     json.RawMessage `json:"input"`
	Arguments json.RawMessage `json:"arguments"`
	ToolInput json.RawMessage `json:"toolInput"`
}

type rawContentBlock struct {
	Text    string      `json:"text"`
	ToolUse *rawToolUse `json:"toolUse"`
}

type rawMessage struct {
	Role    string            `json:"role"`
	Content []rawContentBlock `json:"content"`
}

type rawOutput struct {
	Message        *rawMessage   `json:"message"`
	ToolCalls      []rawToolCall `json:"toolCalls"`
	ToolCallsLower []rawToolCall `json:"toolcalls"`
}

type rawResponse struct {
	Output   *rawOutput   `json:"output"`
	Messages []rawMessage `json:"messages"`
}

// candidate is a tool invocation found by a matcher, before name/argument
// resolution.
type candidate struct {
	name string
	args json.RawMessage
}

// ExtractToolInvocation normalizes one of several possible raw provider
// response shapes into a single ToolInvocation. Shapes are probed in
// priority order, first match wins:
//
//  1. output.message.content[] entries carrying a toolUse block
//  2. output.toolCalls[] (or the lowercased toolcalls[]) entries
//  3. messages[].content[] entries carrying a toolUse block
//
// A string-encoded argument payload is parsed as JSON; failure there is
// ErrMalformedArguments, never ErrNoToolInvocation. A tool other than
// expectedTool fails with ErrUnexpectedTool carrying the actual name.
func ExtractToolInvocation(raw json.RawMessage, expectedTool string) (ToolInvocation, error) {
	var resp rawResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return ToolInvocation{}, noInvocationErr(raw)
	}

	matchers := []func(rawResponse) (candidate, bool){
		matchOutputMessage,
		matchOutputToolCalls,
		matchMessages,
	}

	var cand candidate
	found := false
	for _, match := range matchers {
		if c, ok := match(resp); ok {
			cand = c
			found = true
			break
		}
	}
	if !found {
		return ToolInvocation{}, noInvocationErr(raw)
	}

	if cand.name != expectedTool {
		return ToolInvocation{}, fmt.Errorf("%w: %s", ErrUnexpectedTool, cand.name)
	}

	args, err := normalizeArguments(cand.args)
	if err != nil {
		return ToolInvocation{}, err
	}

	return ToolInvocation{Name: cand.name, Arguments: args}, nil
}

// ExtractText pulls the plain-text assistant output from a raw response.
// Used by the chat fallback path when no tool was invoked.
func ExtractText(raw json.RawMessage) string {
	var resp rawResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return ""
	}

	if resp.Output != nil && resp.Output.Message != nil {
		if text := joinText(resp.Output.Message.Content); text != "" {
			return text
		}
	}

	// Invoke-style shape: take the last assistant message with text.
	for i := len(resp.Messages) - 1; i >= 0; i-- {
		m := resp.Messages[i]
		if m.Role != "" && m.Role != RoleAssistant {
			continue
		}
		if text := joinText(m.Content); text != "" {
			return text
		}
	}

	return ""
}

func matchOutputMessage(resp rawResponse) (candidate, bool) {
	if resp.Output == nil || resp.Output.Message == nil {
		return candidate{}, false
	}
	return firstToolUse(resp.Output.Message.Content)
}

func matchOutputToolCalls(resp rawResponse) (candidate, bool) {
	if resp.Output == nil {
		return candidate{}, false
	}
	calls := resp.Output.ToolCalls
	if len(calls) == 0 {
		calls = resp.Output.ToolCallsLower
	}
	for _, tc := range calls {
		name := tc.Name
		if name == "" {
			name = tc.ToolName
		}
		args := firstPresent(tc.Input, tc.Arguments, tc.ToolInput)
		if name == "" && args == nil {
			continue
		}
		return candidate{name: name, args: args}, true
	}
	return candidate{}, false
}

func matchMessages(resp rawResponse) (candidate, bool) {
	for _, m := range resp.Messages {
		if c, ok := firstToolUse(m.Content); ok {
			return c, true
		}
	}
	return candidate{}, false
}

func firstToolUse(blocks []rawContentBlock) (candidate, bool) {
	for _, b := range blocks {
		if b.ToolUse == nil {
			continue
		}
		name := b.ToolUse.Name
		if name == "" {
			name = b.ToolUse.ToolName
		}
		return candidate{
			name: name,
			args: firstPresent(b.ToolUse.Input, b.ToolUse.ToolInput),
		}, true
	}
	return candidate{}, false
}

// normalizeArguments resolves the argument payload to a JSON object.
// A missing payload becomes the empty object; a string payload is parsed as
// JSON and must itself decode to an object.
func normalizeArguments(args json.RawMessage) (json.RawMessage, error) {
	args = bytes.TrimSpace(args)
	if len(args) == 0 || bytes.Equal(args, []byte("null")) {
		return json.RawMessage(`{}`), nil
	}

	if args[0] == '"' {
		var encoded string
		if err := json.Unmarshal(args, &encoded); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedArguments, err)
		}
		inner := strings.TrimSpace(encoded)
		if !json.Valid([]byte(inner)) {
			return nil, fmt.Errorf("%w: argument string is not valid JSON", ErrMalformedArguments)
		}
		args = json.RawMessage(inner)
	}

	if len(args) == 0 || args[0] != '{' {
		return nil, fmt.Errorf("%w: arguments are not a JSON object", ErrMalformedArguments)
	}
	return args, nil
}

func firstPresent(payloads ...json.RawMessage) json.RawMessage {
	for _, p := range payloads {
		if len(bytes.TrimSpace(p)) > 0 {
			return p
		}
	}
	return nil
}

func joinText(blocks []rawContentBlock) string {
	var parts []string
	for _, b := range blocks {
		if b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func noInvocationErr(raw json.RawMessage) error {
	return fmt.Errorf("%w: %s", ErrNoToolInvocation, logger.Truncate(string(raw), snapshotLen))
}
