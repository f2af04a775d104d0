package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/firefly/retirement-planner/internal/domain"
	"gopkg.in/yaml.v3"
)

func TestGenerateReportWritesFile(t *testing.T) {
	dir := t.TempDir()
	name, err := GenerateReport(buildScenarioReport(), "csv-summary", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Dir(name) != dir || !strings.HasSuffix(name, ".csv") {
		t.Fatalf("unexpected file name %s", name)
	}
	b, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(b), "Scenario,") {
		t.Fatalf("unexpected content: %s", b)
	}

	if _, err := GenerateReport(buildScenarioReport(), "xml", dir); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestExtensionFor(t *testing.T) {
	cases := map[string]string{"console": "txt", "console-lite": "txt", "detailed-csv": "csv", "montecarlo-csv": "csv", "html": "html", "json": "json"}
	for in, want := range cases {
		if got := extensionFor(in); got != want {
			t.Fatalf("extensionFor(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewAnalysisReport(t *testing.T) {
	report := buildTestReport(t)
	if report.Readiness == nil || report.Projection == nil || report.FIRE == nil || report.MonteCarlo == nil {
		t.Fatalf("expected every section to be populated: %+v", report)
	}
	if report.Comparison == nil || report.Comparison.Count != len(report.Scenarios) {
		t.Fatalf("expected comparison over %d scenarios", len(report.Scenarios))
	}
	if len(report.Assumptions) == 0 {
		t.Fatalf("expected assumptions to be carried over")
	}
}

func TestSaveConfiguration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	config := &domain.Configuration{
		Profile:   domain.FinancialProfile{Name: "Saver", RetirementAge: 60},
		Plan:      domain.RetirementPlan{TargetRetirementAge: 60, ReturnRate: dec("0.06")},
		Scenarios: []domain.ScenarioSpec{{Name: "Crash", Kind: domain.ScenarioMarketCrash, Value: dec("-0.3")}},
	}
	if err := SaveConfiguration(config, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var back domain.Configuration
	if err := yaml.Unmarshal(b, &back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back.Profile.Name != "Saver" || back.Plan.TargetRetirementAge != 60 || !back.Plan.ReturnRate.Equal(dec("0.06")) {
		t.Fatalf("round trip lost fields: %+v", back)
	}
	if len(back.Scenarios) != 1 || back.Scenarios[0].Kind != domain.ScenarioMarketCrash {
		t.Fatalf("round trip lost scenarios: %+v", back.Scenarios)
	}
}
