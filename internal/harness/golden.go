package harness

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden runs a scenario through the runner and compares the
// report's canonical serialization against testdata/golden/{name}.golden.
// Timings and run ids are excluded from the serialization, so goldens stay
// byte-stable across runs.
//
// Regenerate goldens with:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, runner *Runner, scenario *Scenario) {
	t.Helper()

	report, err := runner.Compare(context.Background(), scenario.Query)
	if err != nil {
		t.Fatalf("compare %q: %v", scenario.Query, err)
	}

	for _, failure := range scenario.Check(report) {
		t.Errorf("scenario %s: %s", scenario.Name, failure)
	}

	data, err := report.MarshalCanonical()
	if err != nil {
		t.Fatalf("marshal report: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
}
