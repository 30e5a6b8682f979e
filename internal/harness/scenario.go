package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines one comparison test case: a query to run against both
// backends and the outcome to expect. Scenarios live in YAML files so new
// cases can be added without touching Go code:
//
//	name: adults_by_age
//	description: "range predicate over the seeded users"
//	query: "SELECT name, age FROM users WHERE age >= 18 LIMIT 10"
//	expect:
//	  parity: true
//	  statuses:
//	    mongo: ok
//	    sqlite: ok
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Query       string `yaml:"query"`
	Expect      Expect `yaml:"expect"`
}

// Expect is the assertion set for a scenario.
type Expect struct {
	// Parity asserts both backends returned the same row count.
	Parity bool `yaml:"parity"`

	// Statuses maps backend name to its expected status. Backends not
	// listed are unchecked.
	Statuses map[string]string `yaml:"statuses,omitempty"`

	// Count asserts the document backend's row count when non-nil.
	Count *int `yaml:"count,omitempty"`
}

// LoadScenario reads and validates a single scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := sc.validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &sc, nil
}

// LoadScenarios reads every *.yaml scenario in a directory, sorted by file
// name for stable execution order.
func LoadScenarios(dir string) ([]*Scenario, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	scenarios := make([]*Scenario, 0, len(matches))
	for _, path := range matches {
		sc, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

func (sc *Scenario) validate() error {
	if sc.Name == "" {
		return fmt.Errorf("missing name")
	}
	if sc.Query == "" {
		return fmt.Errorf("missing query")
	}
	for backendName, status := range sc.Expect.Statuses {
		switch status {
		case StatusOK, StatusError, StatusTimeout:
		default:
			return fmt.Errorf("backend %s: unknown status %q", backendName, status)
		}
	}
	return nil
}

// Check evaluates the scenario's expectations against a report, returning
// one message per failed assertion. An empty slice means the scenario
// passed.
func (sc *Scenario) Check(report *Report) []string {
	var failures []string

	if sc.Expect.Parity && !report.RowParity {
		failures = append(failures, "expected row parity between backends")
	}
	for backendName, want := range sc.Expect.Statuses {
		outcome, ok := report.Outcome(backendName)
		if !ok {
			failures = append(failures, fmt.Sprintf("backend %s missing from report", backendName))
			continue
		}
		if outcome.Status != want {
			failures = append(failures, fmt.Sprintf("backend %s: status %s, want %s", backendName, outcome.Status, want))
		}
	}
	if sc.Expect.Count != nil {
		outcome, ok := report.Outcome("mongo")
		if !ok {
			failures = append(failures, "document backend missing from report")
		} else if outcome.Count != *sc.Expect.Count {
			failures = append(failures, fmt.Sprintf("document count %d, want %d", outcome.Count, *sc.Expect.Count))
		}
	}
	return failures
}
