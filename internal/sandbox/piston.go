package sandbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/SURENDHAN/ai-interview/internal/questionbank"
)

// NetworkErrorSentinel is returned verbatim when the sandbox is unreachable.
// The client UI shows it to the user as-is.
const NetworkErrorSentinel = "Network Error"

// PistonClient submits source code to a Piston execution endpoint.
type PistonClient struct {
	HTTPClient *http.Client
	Endpoint   string
	Language   string
	Version    string
}

type executeRequest struct {
	Language string        `json:"language"`
	Version  string        `json:"version"`
	Files    []executeFile `json:"files"`
}

type executeFile struct {
	Content string `json:"content"`
}

type executeRun struct {
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
	Code   int    `json:"code"`
}

type executeResponse struct {
	Run executeRun `json:"run"`
}

// NewPistonClient returns a client for the given execute endpoint.
func NewPistonClient(endpoint string) *PistonClient {
	return &PistonClient{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Endpoint:   endpoint,
		Language:   "python",
		Version:    "3.10.0",
	}
}

// execute submits one script. A nil response means the sandbox was unreachable
// or returned garbage; callers degrade gracefully.
func (c *PistonClient) execute(ctx context.Context, script string) (*executeResponse, error) {
	body, _ := json.Marshal(executeRequest{
		Language: c.Language,
		Version:  c.Version,
		Files:    []executeFile{{Content: script}},
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("piston error: status=%d body=%s", resp.StatusCode, string(b))
	}
	var er executeResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return nil, err
	}
	return &er, nil
}

// RunPlayground executes source without test cases and returns trimmed
// stdout+stderr. A single attempt only; transport failures surface as the
// network error sentinel.
func (c *PistonClient) RunPlayground(ctx context.Context, source string) string {
	resp, err := c.execute(ctx, source)
	if err != nil {
		log.Printf("sandbox: playground run failed: %v", err)
		return NetworkErrorSentinel
	}
	return strings.TrimSpace(resp.Run.Stdout + "\n" + resp.Run.Stderr)
}

// RunAgainstTests executes source against every test case of the problem, in
// order, and returns one verdict line per test. A failing test does not stop
// the remaining tests. Overall success is the absence of "FAILED" in the output.
func (c *PistonClient) RunAgainstTests(ctx context.Context, problem *questionbank.Problem, source string) string {
	results := make([]string, 0, len(problem.TestCases))
	for i, tc := range problem.TestCases {
		script := source + "\n\n" + tc.InputCode
		resp, err := c.execute(ctx, script)
		if err != nil {
			log.Printf("sandbox: test %d run failed: %v", i+1, err)
			results = append(results, fmt.Sprintf("Test %d: FAILED %s", i+1, NetworkErrorSentinel))
			continue
		}
		if strings.TrimSpace(resp.Run.Stdout) == strings.TrimSpace(tc.Expected) {
			results = append(results, fmt.Sprintf("Test %d: PASSED", i+1))
		} else {
			results = append(results, fmt.Sprintf("Test %d: FAILED %s", i+1, resp.Run.Stderr))
		}
	}
	return strings.Join(results, "\n")
}
