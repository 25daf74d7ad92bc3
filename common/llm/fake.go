package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

type fakeGateway struct {
	modelID string
	region  string
}

// NewFakeGateway returns a Gateway that never leaves the process. It answers
// with canned raw responses in the provider's native shape, so the full
// normalize/validate path still runs. Enabled via PLANNER_FAKE for local
// development and tests without AWS credentials.
func NewFakeGateway(modelID, region string) Gateway {
	return &fakeGateway{modelID: modelID, region: region}
}

func (g *fakeGateway) Invoke(ctx context.Context, req Request) (json.RawMessage, error) {
	slog.DebugContext(ctx, "fake gateway invoked", "tool", req.Tool.Name, "turns", len(req.Turns))

	switch req.Tool.Name {
	case "emit_plan":
		return toolUseResponse(req.Tool.Name, fakePlanArgs), nil
	case "emit_files":
		return toolUseResponse(req.Tool.Name, fakeFilesArgs), nil
	default:
		return json.RawMessage(`{"output":{"message":{"role":"assistant","content":[{"text":"Understood."}]}}}`), nil
	}
}

func (g *fakeGateway) ModelID() string { return g.modelID }
func (g *fakeGateway) Region() string  { return g.region }

// toolUseResponse wraps canned tool arguments in the converse-style
// output.message.content shape.
func toolUseResponse(tool string, args string) json.RawMessage {
	body := fmt.Sprintf(
		`{"output":{"message":{"role":"assistant","content":[{"toolUse":{"toolUseId":"fake-1","name":%q,"input":%s}}]}},"stopReason":"tool_use"}`,
		tool, args)
	return json.RawMessage(body)
}

const fakePlanArgs = `{
  "assistant_message": "Created a hello page at app/hello/page.tsx.",
  "actions": [
    {
      "type": "create_file",
      "path": "app/hello/page.tsx",
      "contents": "export default function HelloPage() {\n  return (\n    <main className=\"p-8\">\n      <h1 className=\"text-2xl font-bold\">Hello</h1>\n      <p>This page was generated by the planner.</p>\n    </main>\n  );\n}\n"
    }
  ]
}`

const fakeFilesArgs = `{
  "files": [
    {
      "path": "index.html",
      "contents": "<!doctype html>\n<html>\n<head><title>Preview</title></head>\n<body>\n<h1>Generated page</h1>\n<nav data-preview-hide>debug navigation</nav>\n<p>Hello from the fake gateway.</p>\n</body>\n</html>\n"
    }
  ]
}`
