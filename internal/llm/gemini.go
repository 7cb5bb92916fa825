package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/SURENDHAN/ai-interview/internal/agent"
	"github.com/SURENDHAN/ai-interview/internal/tools"
)

// maxToolRounds bounds the function-calling loop so a misbehaving model
// cannot spin the turn forever.
const maxToolRounds = 4

// GeminiClient generates interview turns via the Gemini API. Tool invocation
// is mediated here explicitly: declared functions are advertised, and every
// FunctionCall part is answered with a FunctionResponse part before the model
// produces its final text.
type GeminiClient struct {
	client *genai.Client
	model  string
	tools  *tools.Registry
}

func NewGeminiClient(ctx context.Context, apiKey, model string, reg *tools.Registry) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &GeminiClient{client: client, model: model, tools: reg}, nil
}

// GenerateWithTools implements agent.LLM.
func (g *GeminiClient) GenerateWithTools(ctx context.Context, system string, history []agent.Message) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+2*maxToolRounds)
	for _, m := range history {
		var role genai.Role = genai.RoleUser
		if m.Role == agent.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}
	if g.tools != nil {
		cfg.Tools = []*genai.Tool{{FunctionDeclarations: g.tools.Declarations()}}
	}

	for round := 0; round < maxToolRounds; round++ {
		res, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
		if err != nil {
			return "", fmt.Errorf("gemini: generate content: %w", err)
		}
		calls := res.FunctionCalls()
		if len(calls) == 0 {
			return strings.TrimSpace(res.Text()), nil
		}
		if len(res.Candidates) > 0 && res.Candidates[0].Content != nil {
			contents = append(contents, res.Candidates[0].Content)
		}
		parts := make([]*genai.Part, 0, len(calls))
		for _, call := range calls {
			out := g.tools.Dispatch(ctx, call.Name, call.Args)
			parts = append(parts, genai.NewPartFromFunctionResponse(call.Name, out))
		}
		contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))
	}
	return "", fmt.Errorf("gemini: tool loop exceeded %d rounds", maxToolRounds)
}

// GenerateText runs a single-shot prompt without tools (used for feedback
// synthesis).
func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	res, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	text := strings.TrimSpace(res.Text())
	if text == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return text, nil
}
