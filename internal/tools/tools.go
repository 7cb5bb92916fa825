// Package tools declares the capability set exposed to the interviewer model:
// a fixed mapping from tool name to schema and handler, invoked explicitly by
// the LLM adapter rather than through runtime introspection.
package tools

import (
	"context"
	"log"

	"google.golang.org/genai"

	"github.com/SURENDHAN/ai-interview/internal/questionbank"
)

// CouldNotVerify is the fixed reply for any concept-lookup failure.
const CouldNotVerify = "Could not verify."

// ConceptVerifier looks up a short fact-check for a topic.
type ConceptVerifier interface {
	Verify(ctx context.Context, topic string) (string, error)
}

// ProblemPayload is the JSON shape of a coding problem as shown to the model
// and to the client in the show_button control message.
type ProblemPayload struct {
	ID          string                  `json:"id"`
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	StarterCode string                  `json:"starter_code"`
	TestCases   []questionbank.TestCase `json:"test_cases"`
}

// Registry holds the declared tools and their handlers.
type Registry struct {
	bank     *questionbank.Bank
	verifier ConceptVerifier
}

func NewRegistry(bank *questionbank.Bank, verifier ConceptVerifier) *Registry {
	return &Registry{bank: bank, verifier: verifier}
}

// Declarations returns the function declarations advertised to the model.
func (r *Registry) Declarations() []*genai.FunctionDeclaration {
	return []*genai.FunctionDeclaration{
		{
			Name:        "get_random_problem",
			Description: "Returns a random easy coding problem with test cases.",
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{},
			},
		},
		{
			Name:        "verify_concept",
			Description: "Verifies a technical concept using an encyclopedia lookup.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"topic": {Type: genai.TypeString, Description: "Concept to fact-check."},
				},
				Required: []string{"topic"},
			},
		},
	}
}

// Dispatch runs the named tool and returns its response payload. Tools never
// propagate errors to the model loop; failures become in-band messages.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) map[string]any {
	switch name {
	case "get_random_problem":
		p, err := r.RandomProblem()
		if err != nil {
			return map[string]any{"error": "No questions"}
		}
		return map[string]any{
			"id":           p.ID,
			"title":        p.Title,
			"description":  p.Description,
			"starter_code": p.StarterCode,
			"test_cases":   p.TestCases,
		}
	case "verify_concept":
		topic, _ := args["topic"].(string)
		return map[string]any{"result": r.VerifyConcept(ctx, topic)}
	default:
		log.Printf("tools: model requested unknown tool %q", name)
		return map[string]any{"error": "unknown tool"}
	}
}

// RandomProblem picks a random easy problem, falling back to the whole bank.
func (r *Registry) RandomProblem() (*ProblemPayload, error) {
	p, err := r.bank.PickRandom("easy")
	if err != nil {
		return nil, err
	}
	return &ProblemPayload{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		StarterCode: p.StarterCode,
		TestCases:   p.TestCases,
	}, nil
}

// VerifyConcept fact-checks a topic, degrading to a fixed string on any
// lookup failure.
func (r *Registry) VerifyConcept(ctx context.Context, topic string) string {
	if r.verifier == nil || topic == "" {
		return CouldNotVerify
	}
	summary, err := r.verifier.Verify(ctx, topic)
	if err != nil {
		log.Printf("tools: verify_concept(%q) failed: %v", topic, err)
		return CouldNotVerify
	}
	return "Fact Check:\n" + summary
}
