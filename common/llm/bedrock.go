package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/bedrockruntime"
)

// Timeouts and retry bound for the Bedrock runtime call. A single synchronous
// round-trip per request; failures surface to the caller.
const (
	bedrockReadTimeout    = 60 * time.Second
	bedrockConnectTimeout = 10 * time.Second
	bedrockMaxRetries     = 2
)

// Config holds Bedrock gateway configuration.
type Config struct {
	Region  string
	ModelID string
	// UseConverse sends system instructions as a dedicated top-level field.
	// Some model configurations reject a distinguished system role; with
	// UseConverse off, instructions are prefixed to the first user turn.
	UseConverse bool
}

type bedrockGateway struct {
	client      *bedrockruntime.BedrockRuntime
	modelID     string
	region      string
	useConverse bool
}

// NewBedrockGateway creates a Gateway backed by the Bedrock runtime API.
// Responses are returned as raw JSON; shape normalization happens in
// ExtractToolInvocation.
func NewBedrockGateway(cfg Config) (Gateway, error) {
	if cfg.ModelID == "" {
		return nil, fmt.Errorf("bedrock model id is required")
	}

	httpClient := &http.Client{
		Timeout: bedrockReadTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{Timeout: bedrockConnectTimeout}).DialContext,
		},
	}

	sess, err := session.NewSession(aws.NewConfig().
		WithRegion(cfg.Region).
		WithMaxRetries(bedrockMaxRetries).
		WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("creating aws session: %w", err)
	}

	return &bedrockGateway{
		client:      bedrockruntime.New(sess),
		modelID:     cfg.ModelID,
		region:      cfg.Region,
		useConverse: cfg.UseConverse,
	}, nil
}

func (g *bedrockGateway) Invoke(ctx context.Context, req Request) (json.RawMessage, error) {
	body, err := json.Marshal(g.buildBody(req))
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	start := time.Now()
	out, err := g.client.InvokeModelWithContext(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(g.modelID),
		Body:        body,
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	slog.DebugContext(ctx, "bedrock invoke completed",
		"model", g.modelID,
		"duration_ms", time.Since(start).Milliseconds(),
		"response_bytes", len(out.Body))

	return json.RawMessage(out.Body), nil
}

func (g *bedrockGateway) ModelID() string { return g.modelID }
func (g *bedrockGateway) Region() string  { return g.region }

// Wire types for the model-native request body.
type bedrockBody struct {
	System          []bedrockText    `json:"system,omitempty"`
	Messages        []bedrockMessage `json:"messages"`
	ToolConfig      *bedrockToolCfg  `json:"toolConfig,omitempty"`
	InferenceConfig bedrockInference `json:"inferenceConfig"`
}

type bedrockText struct {
	Text string `json:"text"`
}

type bedrockMessage struct {
	Role    string        `json:"role"`
	Content []bedrockText `json:"content"`
}

type bedrockToolCfg struct {
	Tools []bedrockTool `json:"tools"`
}

type bedrockTool struct {
	ToolSpec bedrockToolSpec `json:"toolSpec"`
}

type bedrockToolSpec struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	InputSchema bedrockToolSchema `json:"inputSchema"`
}

type bedrockToolSchema struct {
	JSON any `json:"json"`
}

type bedrockInference struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"topP"`
	MaxTokens   int     `json:"maxTokens,omitempty"`
}

func (g *bedrockGateway) buildBody(req Request) bedrockBody {
	turns := req.Turns
	body := bedrockBody{
		InferenceConfig: bedrockInference{
			Temperature: req.Temperature,
			TopP:        req.TopP,
			MaxTokens:   req.MaxTokens,
		},
	}

	if g.useConverse {
		if req.System != "" {
			body.System = []bedrockText{{Text: req.System}}
		}
	} else if req.System != "" {
		// System role rejected by this configuration: fold the instructions
		// into the first user turn instead.
		turns = prefixSystem(req.System, turns)
	}

	body.Messages = make([]bedrockMessage, 0, len(turns))
	for _, t := range turns {
		body.Messages = append(body.Messages, bedrockMessage{
			Role:    t.Role,
			Content: []bedrockText{{Text: t.Text}},
		})
	}

	if req.Tool.Name != "" {
		body.ToolConfig = &bedrockToolCfg{
			Tools: []bedrockTool{{
				ToolSpec: bedrockToolSpec{
					Name:        req.Tool.Name,
					Description: req.Tool.Description,
					InputSchema: bedrockToolSchema{JSON: req.Tool.Schema},
				},
			}},
		}
	}

	return body
}

func prefixSystem(system string, turns []Turn) []Turn {
	out := make([]Turn, len(turns))
	copy(out, turns)
	for i, t := range out {
		if t.Role == RoleUser {
			out[i].Text = strings.Join([]string{system, t.Text}, "\n\n")
			return out
		}
	}
	// No user turn to attach to; send the instructions as one.
	return append([]Turn{{Role: RoleUser, Text: system}}, out...)
}
