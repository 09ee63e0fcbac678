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
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidLoadConfig is returned by NewLoadGenerator for unusable settings.
var ErrInvalidLoadConfig = errors.New("invalid load configuration")

// Task is one weighted request in the load mix.
type Task struct {
	Name   string
	Weight int
	Method string
	Path   string
	Body   any
}

// DefaultTasks returns the product task mix: list 3, show 2, and one each
// of create, update and delete.
func DefaultTasks() []Task {
	return []Task{
		{Name: "get_all_products", Weight: 3, Method: http.MethodGet, Path: "/products"},
		{Name: "get_single_product", Weight: 2, Method: http.MethodGet, Path: "/products/1"},
		{Name: "create_product", Weight: 1, Method: http.MethodPost, Path: "/products", Body: map[string]any{
			"title":       "Test Product",
			"price":       13.5,
			"description": "Lorem ipsum set",
			"image":       "https://fakestoreapi.com/img/81fPKd-2AYL._AC_SL1500_.jpg",
			"category":    "test",
		}},
		{Name: "update_product", Weight: 1, Method: http.MethodPut, Path: "/products/1", Body: map[string]any{
			"title": "Updated Test Product",
			"price": 15.99,
		}},
		{Name: "delete_product", Weight: 1, Method: http.MethodDelete, Path: "/products/1"},
	}
}

// LoadConfig controls a load run.
type LoadConfig struct {
	BaseURL  string        `validate:"required,url"`
	Users    int           `validate:"gte=1"`
	Duration time.Duration `validate:"gt=0"`
	// Each virtual user pauses for a random time in [MinWait, MaxWait]
	// after every task.
	MinWait time.Duration `validate:"gte=0"`
	MaxWait time.Duration `validate:"gtefield=MinWait"`
	Timeout time.Duration `validate:"gte=0"`
}

// TaskStats aggregates the requests issued for one task.
type TaskStats struct {
	Name         string
	Requests     int
	Failures     int
	TotalLatency time.Duration
	MaxLatency   time.Duration
}

// AvgLatency returns the mean request latency.
func (s TaskStats) AvgLatency() time.Duration {
	if s.Requests == 0 {
		return 0
	}
	return s.TotalLatency / time.Duration(s.Requests)
}

// LoadStats is safe for concurrent use by the virtual users.
type LoadStats struct {
	mu      sync.Mutex
	tasks   map[string]*TaskStats
	Elapsed time.Duration
}

func newLoadStats() *LoadStats {
	return &LoadStats{tasks: make(map[string]*TaskStats)}
}

func (s *LoadStats) record(name string, d time.Duration, failed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts, ok := s.tasks[name]
	if !ok {
		ts = &TaskStats{Name: name}
		s.tasks[name] = ts
	}
	ts.Requests++
	if failed {
		ts.Failures++
	}
	ts.TotalLatency += d
	if d > ts.MaxLatency {
		ts.MaxLatency = d
	}
}

// Tasks returns a snapshot of the per-task stats sorted by name.
func (s *LoadStats) Tasks() []TaskStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]TaskStats, 0, len(s.tasks))
	for _, ts := range s.tasks {
		out = append(out, *ts)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Totals sums every task.
func (s *LoadStats) Totals() TaskStats {
	total := TaskStats{Name: "total"}
	for _, ts := range s.Tasks() {
		total.Requests += ts.Requests
		total.Failures += ts.Failures
		total.TotalLatency += ts.TotalLatency
		if ts.MaxLatency > total.MaxLatency {
			total.MaxLatency = ts.MaxLatency
		}
	}
	return total
}

// LoadGenerator drives concurrent virtual users against one base URL.
type LoadGenerator struct {
	cfg      LoadConfig
	tasks    []Task
	payloads map[string][]byte
	weight   int
	client   *http.Client
	logger   *slog.Logger
}

// LoadOption customizes a LoadGenerator.
type LoadOption func(*LoadGenerator)

// WithLoadHTTPClient replaces the HTTP client.
func WithLoadHTTPClient(c *http.Client) LoadOption {
	return func(g *LoadGenerator) {
		g.client = c
	}
}

// WithLoadLogger sets the logger.
func WithLoadLogger(l *slog.Logger) LoadOption {
	return func(g *LoadGenerator) {
		g.logger = l
	}
}

// NewLoadGenerator validates cfg and tasks and pre-encodes task bodies.
func NewLoadGenerator(cfg LoadConfig, tasks []Task, opts ...LoadOption) (*LoadGenerator, error) {
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLoadConfig, err)
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("%w: no tasks", ErrInvalidLoadConfig)
	}

	g := &LoadGenerator{
		cfg:      cfg,
		tasks:    tasks,
		payloads: make(map[string][]byte, len(tasks)),
		logger:   slog.Default(),
	}
	for _, t := range tasks {
		if t.Weight <= 0 {
			return nil, fmt.Errorf("%w: task %q has weight %d", ErrInvalidLoadConfig, t.Name, t.Weight)
		}
		g.weight += t.Weight
		if t.Body == nil {
			continue
		}
		payload, err := json.Marshal(t.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: task %q body: %v", ErrInvalidLoadConfig, t.Name, err)
		}
		g.payloads[t.Name] = payload
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	g.client = &http.Client{Timeout: timeout}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Run starts cfg.Users virtual users and stops them after cfg.Duration or
// when ctx is canceled, whichever comes first.
func (g *LoadGenerator) Run(ctx context.Context) (*LoadStats, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Duration)
	defer cancel()
	defer g.client.CloseIdleConnections()

	stats := newLoadStats()
	start := time.Now()

	g.logger.Info("load test started",
		"base_url", g.cfg.BaseURL,
		"users", g.cfg.Users,
		"duration", g.cfg.Duration.String())

	eg, egCtx := errgroup.WithContext(ctx)
	for i := 0; i < g.cfg.Users; i++ {
		eg.Go(func() error {
			g.virtualUser(egCtx, stats)
			return nil
		})
	}
	err := eg.Wait()
	stats.Elapsed = time.Since(start)

	totals := stats.Totals()
	g.logger.Info("load test finished",
		"requests", totals.Requests,
		"failures", totals.Failures,
		"elapsed_ms", stats.Elapsed.Milliseconds())
	return stats, err
}

func (g *LoadGenerator) virtualUser(ctx context.Context, stats *LoadStats) {
	for ctx.Err() == nil {
		t := g.tasks[pickTask(g.tasks, rand.IntN(g.weight))]
		g.execute(ctx, t, stats)

		timer := time.NewTimer(g.wait())
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// execute issues one request. Requests cut short by the end of the run are
// not recorded.
func (g *LoadGenerator) execute(ctx context.Context, t Task, stats *LoadStats) {
	var body io.Reader
	if payload, ok := g.payloads[t.Name]; ok {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, t.Method, strings.TrimSuffix(g.cfg.BaseURL, "/")+t.Path, body)
	if err != nil {
		stats.record(t.Name, 0, true)
		return
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		g.logger.Debug("load request failed", "task", t.Name, "error", err)
		stats.record(t.Name, time.Since(start), true)
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	stats.record(t.Name, time.Since(start), resp.StatusCode >= http.StatusBadRequest)
}

func (g *LoadGenerator) wait() time.Duration {
	span := g.cfg.MaxWait - g.cfg.MinWait
	if span <= 0 {
		return g.cfg.MinWait
	}
	return g.cfg.MinWait + rand.N(span+1)
}

// pickTask maps n in [0, total weight) to a task index.
func pickTask(tasks []Task, n int) int {
	for i, t := range tasks {
		if n < t.Weight {
			return i
		}
		n -= t.Weight
	}
	return len(tasks) - 1
}
