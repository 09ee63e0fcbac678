package apicheck

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed scenarios.yaml
var defaultScenarios []byte

// RandPlaceholder is replaced in body strings by the run's random number.
const RandPlaceholder = "{{rand}}"

// ErrInvalidScenarios is returned when a scenario file cannot be used.
var ErrInvalidScenarios = errors.New("invalid scenarios")

// Scenario is one request/assertion/fixture triple.
type Scenario struct {
	Name         string   `yaml:"name" validate:"required"`
	Group        string   `yaml:"group"`
	Method       string   `yaml:"method" validate:"required,oneof=GET POST PUT DELETE"`
	Path         string   `yaml:"path" validate:"required,startswith=/"`
	Body         any      `yaml:"body,omitempty"`
	ExpectStatus int      `yaml:"expect_status" validate:"required,gte=100,lte=599"`
	ExpectKeys   []string `yaml:"expect_keys"`
	Fixture      string   `yaml:"fixture" validate:"required,excludesall=/\\"`
}

type scenarioFile struct {
	Scenarios []Scenario `yaml:"scenarios" validate:"required,min=1,dive"`
}

// DefaultScenarios returns the built-in scenario list.
func DefaultScenarios() ([]Scenario, error) {
	return ParseScenarios(defaultScenarios)
}

// LoadScenarios reads a scenario file from disk.
func LoadScenarios(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenarios from %s: %w", path, err)
	}
	return ParseScenarios(data)
}

// ParseScenarios decodes and validates a YAML scenario document.
func ParseScenarios(data []byte) ([]Scenario, error) {
	var file scenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenarios, err)
	}
	for i := range file.Scenarios {
		file.Scenarios[i].Method = strings.ToUpper(file.Scenarios[i].Method)
	}
	if err := validator.New().Struct(file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenarios, err)
	}

	seen := make(map[string]string, len(file.Scenarios))
	for _, s := range file.Scenarios {
		if prev, ok := seen[s.Fixture]; ok {
			return nil, fmt.Errorf("%w: %q and %q both write %s",
				ErrInvalidScenarios, prev, s.Name, s.Fixture)
		}
		seen[s.Fixture] = s.Name
	}
	return file.Scenarios, nil
}

// renderBody returns a copy of body with every RandPlaceholder in string
// values replaced by n. Map keys are left as they are.
func renderBody(body any, n int) any {
	switch v := body.(type) {
	case string:
		return strings.ReplaceAll(v, RandPlaceholder, strconv.Itoa(n))
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = renderBody(item, n)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = renderBody(item, n)
		}
		return out
	default:
		return v
	}
}
