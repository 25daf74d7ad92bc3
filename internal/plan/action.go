package plan

// ActionType discriminates the four permissible plan-action shapes.
type ActionType string

const (
	ActionTypeCreateFile ActionType = "create_file"
	ActionTypeUpdateFile ActionType = "update_file"
	ActionTypeDeleteFile ActionType = "delete_file"
	ActionTypeRunCommand ActionType = "run_command"
)

// Action is one step of a plan. Which fields are set depends on Type:
// create_file/update_file carry path+contents (contents is always the
// complete file body, never a diff), delete_file carries path, run_command
// carries command.
type Action struct {
	Type     ActionType `json:"type"`
	Path     string     `json:"path,omitempty"`
	Contents string     `json:"contents,omitempty"`
	Command  string     `json:"command,omitempty"`
}

// Plan is the structured output of the planning operation: a human-readable
// summary plus an ordered list of actions. Actions may be empty for
// chat-only turns. Constructed fresh per request, never persisted.
type Plan struct {
	AssistantMessage string   `json:"assistant_message"`
	Actions          []Action `json:"actions"`
}

// GeneratedFile is one file emitted by the code-generation operation.
type GeneratedFile struct {
	Path     string `json:"path"`
	Contents string `json:"contents"`
}
