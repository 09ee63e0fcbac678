package apicheck

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tiendalab/tienda-bff/internal/config"
	"github.com/tiendalab/tienda-bff/internal/redact"
)

// Assertion failures recorded in a Result.
var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrMissingKey       = errors.New("response is missing a key")
	ErrNotJSONObject    = errors.New("response body is not a JSON object")
)

// Result is the outcome of one scenario.
type Result struct {
	Scenario string
	Group    string
	Status   int
	Duration time.Duration
	// Fixture is the path written for a passing scenario.
	Fixture string
	Err     error
}

// Passed reports whether every assertion held.
func (r Result) Passed() bool {
	return r.Err == nil
}

// Report collects the results of one run, in scenario order.
type Report struct {
	Results []Result
}

// Passed returns the number of passing scenarios.
func (r *Report) Passed() int {
	n := 0
	for _, res := range r.Results {
		if res.Passed() {
			n++
		}
	}
	return n
}

// Failed returns the number of failing scenarios.
func (r *Report) Failed() int {
	return len(r.Results) - r.Passed()
}

// Err joins the failures of the run, or returns nil when all passed.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Scenario, res.Err))
		}
	}
	return errors.Join(errs...)
}

// Runner executes scenarios against one base URL.
type Runner struct {
	client    *http.Client
	baseURL   string
	outDir    string
	scenarios []Scenario
	logger    *slog.Logger
	randInt   func() int
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithRunnerHTTPClient replaces the HTTP client.
func WithRunnerHTTPClient(c *http.Client) RunnerOption {
	return func(r *Runner) {
		r.client = c
	}
}

// WithRunnerLogger sets the logger used for progress output.
func WithRunnerLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithRandom fixes the source of the {{rand}} value.
func WithRandom(fn func() int) RunnerOption {
	return func(r *Runner) {
		r.randInt = fn
	}
}

// NewRunner creates a Runner for cfg.BaseURL writing fixtures to cfg.OutputDir.
func NewRunner(cfg config.CheckConfig, scenarios []Scenario, opts ...RunnerOption) *Runner {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := &Runner{
		client:    &http.Client{Timeout: timeout},
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		outDir:    cfg.OutputDir,
		scenarios: scenarios,
		logger:    slog.Default(),
		randInt:   func() int { return rand.IntN(10000) },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every scenario once, in order. A failing scenario does not
// stop later ones. The returned error is reserved for problems that prevent
// the run itself, such as an unwritable output directory; assertion
// failures are reported through the Report.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", r.outDir, err)
	}
	defer r.client.CloseIdleConnections()

	n := r.randInt()
	report := &Report{Results: make([]Result, 0, len(r.scenarios))}

	for _, s := range r.scenarios {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		res := r.runScenario(ctx, s, n)
		report.Results = append(report.Results, res)

		if res.Passed() {
			r.logger.Info("scenario passed",
				"scenario", s.Name,
				"status", res.Status,
				"duration_ms", res.Duration.Milliseconds())
		} else {
			r.logger.Warn("scenario failed",
				"scenario", s.Name,
				"status", res.Status,
				"error", redact.Error(res.Err))
		}
	}
	return report, nil
}

func (r *Runner) runScenario(ctx context.Context, s Scenario, n int) Result {
	res := Result{Scenario: s.Name, Group: s.Group}

	var reader io.Reader
	if s.Body != nil {
		payload, err := json.Marshal(renderBody(s.Body, n))
		if err != nil {
			res.Err = fmt.Errorf("failed to encode body: %w", err)
			return res
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, s.Method, r.baseURL+s.Path, reader)
	if err != nil {
		res.Err = fmt.Errorf("failed to build request: %w", err)
		return res
	}
	req.Header.Set("Accept", "application/json")
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		res.Duration = time.Since(start)
		res.Err = fmt.Errorf("request failed: %w", err)
		return res
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	res.Duration = time.Since(start)
	res.Status = resp.StatusCode
	if err != nil {
		res.Err = fmt.Errorf("failed to read response: %w", err)
		return res
	}

	if resp.StatusCode != s.ExpectStatus {
		res.Err = fmt.Errorf("%w: got %d, want %d", ErrUnexpectedStatus, resp.StatusCode, s.ExpectStatus)
		return res
	}

	if err := checkKeys(raw, s.ExpectKeys); err != nil {
		res.Err = err
		return res
	}

	path, err := r.writeFixture(s.Fixture, raw)
	if err != nil {
		res.Err = err
		return res
	}
	res.Fixture = path
	return res
}

// checkKeys asserts that body is a JSON object holding every key.
func checkKeys(body []byte, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		return ErrNotJSONObject
	}
	for _, k := range keys {
		if _, ok := obj[k]; !ok {
			return fmt.Errorf("%w: %q", ErrMissingKey, k)
		}
	}
	return nil
}

// writeFixture stores body indented by two spaces, keeping member order.
func (r *Runner) writeFixture(name string, body []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotJSONObject, err)
	}

	path := filepath.Join(r.outDir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write fixture %s: %w", path, err)
	}
	return path, nil
}
