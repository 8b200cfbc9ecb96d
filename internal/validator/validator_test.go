package validator

import (
	"strings"
	"testing"

	"netlabgen.io/netlabgen/pkg/lab"
)

func completeLab() *lab.Lab {
	return &lab.Lab{
		Title:                "NAT Overload",
		Scenario:             "Share one public IP across the office.",
		Connections:          []string{"Router1 (G0/0) -> ISP"},
		DeviceConfigs:        map[string]string{"Router1": "IP: 203.0.113.2/30"},
		Tasks:                []string{"Step 1: Define the inside interface"},
		SolutionCommands:     "ip nat inside source list 1 interface g0/0 overload",
		VerificationCommands: "show ip nat translations",
	}
}

func TestValidateCompleteLab(t *testing.T) {
	v := New()

	result := v.ValidateLab(completeLab())
	if !result.Valid {
		t.Errorf("complete lab should validate: %s", result.Summary())
	}
}

func TestValidateMissingFields(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(*lab.Lab)
	}{
		{"title", func(l *lab.Lab) { l.Title = "" }},
		{"scenario", func(l *lab.Lab) { l.Scenario = "" }},
		{"connections", func(l *lab.Lab) { l.Connections = nil }},
		{"device_configs", func(l *lab.Lab) { l.DeviceConfigs = nil }},
		{"tasks", func(l *lab.Lab) { l.Tasks = nil }},
		{"solution_commands", func(l *lab.Lab) { l.SolutionCommands = "" }},
		{"verification_commands", func(l *lab.Lab) { l.VerificationCommands = "" }},
	}

	v := New()

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			l := completeLab()
			tt.mutate(l)

			result := v.ValidateLab(l)
			if result.Valid {
				t.Fatalf("lab without %s should fail validation", tt.field)
			}

			found := false
			for _, e := range result.Errors {
				if e.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("no error reported for field %s: %s", tt.field, result.Summary())
			}
		})
	}
}

func TestSummaryListsEveryError(t *testing.T) {
	v := New()

	result := v.ValidateLab(&lab.Lab{})
	if result.Valid {
		t.Fatal("empty lab should fail validation")
	}
	if len(result.Errors) != 7 {
		t.Errorf("expected 7 errors for an empty lab, got %d", len(result.Errors))
	}

	summary := result.Summary()
	if !strings.Contains(summary, "title is required") {
		t.Errorf("summary missing title error: %s", summary)
	}
	if !strings.Contains(summary, "verification_commands is required") {
		t.Errorf("summary missing verification_commands error: %s", summary)
	}
}
