package plan

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"pageforge.app/planner/common/llm"
)

var (
	ErrMalformedOutput   = errors.New("malformed tool output")
	ErrUnknownActionType = errors.New("unknown action type")
	ErrInvalidAction     = errors.New("invalid action")
	ErrUnsafePath        = errors.New("unsafe path")
)

// Contract describes the output contract of one operation: the tool the
// model must answer through, and whether assistant_message is required.
type Contract struct {
	Tool           string
	RequireMessage bool
}

// ValidatePlan asserts that a normalized tool invocation conforms to the
// plan contract and returns the validated Plan. Validation is a gate, not a
// transform: actions pass through unchanged and in order. Checks fail fast
// on the first violation.
func (c Contract) ValidatePlan(inv llm.ToolInvocation) (Plan, error) {
	var args struct {
		AssistantMessage *string         `json:"assistant_message"`
		Actions          json.RawMessage `json:"actions"`
	}
	if err := unmarshalObject(inv.Arguments, &args); err != nil {
		return Plan{}, err
	}

	if c.RequireMessage && (args.AssistantMessage == nil || strings.TrimSpace(*args.AssistantMessage) == "") {
		return Plan{}, fmt.Errorf("%w: missing required fields", ErrMalformedOutput)
	}

	rawActions, err := requireArray(args.Actions, "actions")
	if err != nil {
		return Plan{}, err
	}

	actions := make([]Action, 0, len(rawActions))
	for i, raw := range rawActions {
		action, err := validateAction(raw)
		if err != nil {
			return Plan{}, fmt.Errorf("actions[%d]: %w", i, err)
		}
		actions = append(actions, action)
	}

	p := Plan{Actions: actions}
	if args.AssistantMessage != nil {
		p.AssistantMessage = *args.AssistantMessage
	}
	return p, nil
}

// ValidateFiles asserts the emit_files contract: a present files array whose
// entries carry a safe relative path and non-empty contents.
func (c Contract) ValidateFiles(inv llm.ToolInvocation) ([]GeneratedFile, error) {
	var args struct {
		Files json.RawMessage `json:"files"`
	}
	if err := unmarshalObject(inv.Arguments, &args); err != nil {
		return nil, err
	}

	rawFiles, err := requireArray(args.Files, "files")
	if err != nil {
		return nil, err
	}
	if len(rawFiles) == 0 {
		return nil, fmt.Errorf("%w: files must not be empty", ErrMalformedOutput)
	}

	files := make([]GeneratedFile, 0, len(rawFiles))
	for i, raw := range rawFiles {
		var f GeneratedFile
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("files[%d]: %w: %v", i, ErrMalformedOutput, err)
		}
		if f.Path == "" {
			return nil, fmt.Errorf("files[%d]: %w: missing path", i, ErrMalformedOutput)
		}
		if err := checkPath(f.Path); err != nil {
			return nil, fmt.Errorf("files[%d]: %w", i, err)
		}
		if strings.TrimSpace(f.Contents) == "" {
			return nil, fmt.Errorf("files[%d]: %w: %q: contents must be a non-empty string", i, ErrMalformedOutput, f.Path)
		}
		files = append(files, f)
	}
	return files, nil
}

func validateAction(raw json.RawMessage) (Action, error) {
	var a struct {
		Type     string  `json:"type"`
		Path     string  `json:"path"`
		Contents *string `json:"contents"`
		Command  string  `json:"command"`
	}
	if err := json.Unmarshal(raw, &a); err != nil {
		return Action{}, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	switch ActionType(a.Type) {
	case ActionTypeCreateFile, ActionTypeUpdateFile:
		if a.Path == "" {
			return Action{}, invalidAction(a.Type, a.Path, "missing path")
		}
		if err := checkPath(a.Path); err != nil {
			return Action{}, err
		}
		if a.Contents == nil {
			return Action{}, invalidAction(a.Type, a.Path, "missing contents")
		}
		if strings.TrimSpace(*a.Contents) == "" {
			return Action{}, invalidAction(a.Type, a.Path, "contents must be non-empty")
		}
		return Action{Type: ActionType(a.Type), Path: a.Path, Contents: *a.Contents}, nil

	case ActionTypeDeleteFile:
		if a.Path == "" {
			return Action{}, invalidAction(a.Type, a.Path, "missing path")
		}
		if err := checkPath(a.Path); err != nil {
			return Action{}, err
		}
		return Action{Type: ActionTypeDeleteFile, Path: a.Path}, nil

	case ActionTypeRunCommand:
		if strings.TrimSpace(a.Command) == "" {
			return Action{}, invalidAction(a.Type, "", "missing command")
		}
		return Action{Type: ActionTypeRunCommand, Command: a.Command}, nil

	default:
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownActionType, a.Type)
	}
}

// checkPath rejects paths that could escape the project root. The model is
// only ever instructed to emit root-relative paths; this makes that a real
// invariant instead of a prompt suggestion.
func checkPath(p string) error {
	if strings.HasPrefix(p, "/") || strings.Contains(p, "\\") || strings.Contains(p, ":") {
		return fmt.Errorf("%w: %q", ErrUnsafePath, p)
	}
	cleaned := path.Clean(p)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf("%w: %q", ErrUnsafePath, p)
	}
	return nil
}

func invalidAction(actionType, actionPath, reason string) error {
	if actionPath != "" {
		return fmt.Errorf("%w: %s %q: %s", ErrInvalidAction, actionType, actionPath, reason)
	}
	return fmt.Errorf("%w: %s: %s", ErrInvalidAction, actionType, reason)
}

func unmarshalObject(arguments json.RawMessage, target any) error {
	trimmed := bytes.TrimSpace(arguments)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("%w: not an object", ErrMalformedOutput)
	}
	if err := json.Unmarshal(trimmed, target); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	return nil
}

func requireArray(raw json.RawMessage, field string) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: %s must be an array", ErrMalformedOutput, field)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: %s must be an array: %v", ErrMalformedOutput, field, err)
	}
	return items, nil
}
