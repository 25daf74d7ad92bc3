package plan

import "pageforge.app/planner/common/llm"

// Tool names declared to the provider. Each operation declares exactly one.
const (
	ToolEmitPlan  = "emit_plan"
	ToolEmitFiles = "emit_files"
)

// EmitPlanParams is the JSON schema for the emit_plan tool.
type EmitPlanParams struct {
	AssistantMessage string        `json:"assistant_message" jsonschema:"required,description=Short human-readable summary of the plan"`
	Actions          []ActionParam `json:"actions" jsonschema:"required,description=Ordered list of file and command actions"`
}

// ActionParam is the JSON schema for a single action in emit_plan.
type ActionParam struct {
	Type     string `json:"type" jsonschema:"required,enum=create_file,enum=update_file,enum=delete_file,enum=run_command"`
	Path     string `json:"path,omitempty" jsonschema:"description=File path relative to the project root"`
	Contents string `json:"contents,omitempty" jsonschema:"description=Complete new file body (never a diff)"`
	Command  string `json:"command,omitempty" jsonschema:"description=Terminating shell command"`
}

// EmitFilesParams is the JSON schema for the emit_files tool.
type EmitFilesParams struct {
	Files []FileParam `json:"files" jsonschema:"required,description=Generated files"`
}

type FileParam struct {
	Path     string `json:"path" jsonschema:"required,description=File path relative to the project root"`
	Contents string `json:"contents" jsonschema:"required,description=Complete file body"`
}

// EmitPlanTool declares the plan tool for an outbound request.
func EmitPlanTool() llm.ToolSpec {
	return llm.ToolSpec{
		Name:        ToolEmitPlan,
		Description: "Emit a JSON plan of actions to modify the project",
		Schema:      llm.GenerateSchemaFrom(EmitPlanParams{}),
	}
}

// EmitFilesTool declares the codegen tool for an outbound request.
func EmitFilesTool() llm.ToolSpec {
	return llm.ToolSpec{
		Name:        ToolEmitFiles,
		Description: "Emit the complete set of generated source files",
		Schema:      llm.GenerateSchemaFrom(EmitFilesParams{}),
	}
}
