package apicheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickTask(t *testing.T) {
	tasks := DefaultTasks()

	counts := make([]int, len(tasks))
	total := 0
	for _, task := range tasks {
		total += task.Weight
	}
	for n := 0; n < total; n++ {
		counts[pickTask(tasks, n)]++
	}

	for i, task := range tasks {
		assert.Equal(t, task.Weight, counts[i], task.Name)
	}
	assert.Equal(t, 8, total)
}

func TestNewLoadGenerator_Validation(t *testing.T) {
	valid := LoadConfig{BaseURL: "http://localhost:8080/api", Users: 1, Duration: time.Second, MaxWait: time.Second}

	tests := []struct {
		name  string
		cfg   func(LoadConfig) LoadConfig
		tasks []Task
	}{
		{name: "no users", cfg: func(c LoadConfig) LoadConfig { c.Users = 0; return c }},
		{name: "no duration", cfg: func(c LoadConfig) LoadConfig { c.Duration = 0; return c }},
		{name: "bad url", cfg: func(c LoadConfig) LoadConfig { c.BaseURL = "localhost"; return c }},
		{name: "inverted wait", cfg: func(c LoadConfig) LoadConfig { c.MinWait = 2 * time.Second; return c }},
		{name: "no tasks", cfg: func(c LoadConfig) LoadConfig { return c }, tasks: []Task{}},
		{
			name:  "zero weight",
			cfg:   func(c LoadConfig) LoadConfig { return c },
			tasks: []Task{{Name: "x", Method: http.MethodGet, Path: "/"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tasks := tc.tasks
			if tasks == nil {
				tasks = DefaultTasks()
			}
			_, err := NewLoadGenerator(tc.cfg(valid), tasks)
			assert.ErrorIs(t, err, ErrInvalidLoadConfig)
		})
	}
}

func TestLoadGenerator_Run(t *testing.T) {
	var hits atomic.Int64
	mux := http.NewServeMux()
	ok := func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}
	mux.HandleFunc("GET /products", ok)
	mux.HandleFunc("GET /products/1", ok)
	mux.HandleFunc("POST /products", ok)
	mux.HandleFunc("PUT /products/1", ok)
	mux.HandleFunc("DELETE /products/1", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	gen, err := NewLoadGenerator(LoadConfig{
		BaseURL:  srv.URL,
		Users:    4,
		Duration: 300 * time.Millisecond,
		MinWait:  time.Millisecond,
		MaxWait:  5 * time.Millisecond,
		Timeout:  time.Second,
	}, DefaultTasks())
	require.NoError(t, err)

	stats, err := gen.Run(context.Background())
	require.NoError(t, err)

	totals := stats.Totals()
	assert.Positive(t, totals.Requests)
	// Requests in flight when the run ends reach the server but are not recorded.
	assert.InDelta(t, hits.Load(), int64(totals.Requests), 4)
	assert.GreaterOrEqual(t, stats.Elapsed, 300*time.Millisecond)

	known := map[string]bool{}
	for _, task := range DefaultTasks() {
		known[task.Name] = true
	}
	for _, ts := range stats.Tasks() {
		assert.True(t, known[ts.Name], ts.Name)
		if ts.Name == "delete_product" {
			assert.Equal(t, ts.Requests, ts.Failures, "4xx counts as a failure")
		} else {
			assert.Zero(t, ts.Failures, ts.Name)
		}
		assert.LessOrEqual(t, ts.AvgLatency(), ts.MaxLatency)
	}
}

func TestLoadGenerator_StopsOnCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	gen, err := NewLoadGenerator(LoadConfig{
		BaseURL:  srv.URL,
		Users:    2,
		Duration: time.Minute,
		MinWait:  time.Second,
		MaxWait:  5 * time.Second,
	}, DefaultTasks())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = gen.Run(ctx)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second, "users leave their wait when the run ends")
}
