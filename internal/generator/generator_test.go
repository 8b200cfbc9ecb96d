package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"netlabgen.io/netlabgen/pkg/lab"
)

const validLabJSON = `{
    "title": "VLAN Segmentation",
    "scenario": "Separate finance and engineering traffic.",
    "connections": [
        "Switch1 (G0/1) -> Switch2 (G0/1)",
        "Switch2 (F0/2) -> PC1"
    ],
    "device_configs": {
        "Switch1": "VLAN 10, VLAN 20",
        "PC1": "IP: 10.0.10.5/24"
    },
    "tasks": [
        "Step 1: Create VLAN 10 and VLAN 20",
        "Step 2: Configure the trunk link"
    ],
    "solution_commands": "vlan 10\n name FINANCE",
    "verification_commands": "show vlan brief"
}`

// stubClient is a canned-response model client with call counting.
type stubClient struct {
	response string
	err      error
	calls    int
}

func (s *stubClient) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

// stubFactory wraps a stubClient and counts factory invocations.
type stubFactory struct {
	client *stubClient
	calls  int
}

func (s *stubFactory) factory(ctx context.Context, apiKey string) (ModelClient, error) {
	s.calls++
	return s.client, nil
}

func newTestGenerator(client *stubClient) (*Generator, *stubFactory) {
	f := &stubFactory{client: client}
	return New(f.factory, zerolog.Nop()), f
}

func TestGenerateSuccess(t *testing.T) {
	gen, _ := newTestGenerator(&stubClient{response: validLabJSON})

	result, err := gen.Generate(context.Background(), "test-key", lab.TopicVLAN, lab.DifficultyEngineer)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if result.Title != "VLAN Segmentation" {
		t.Errorf("unexpected title: %q", result.Title)
	}
	if len(result.Tasks) != 2 {
		t.Errorf("expected 2 tasks, got %d", len(result.Tasks))
	}
}

func TestGenerateStripsFences(t *testing.T) {
	fenced := "```json\n" + validLabJSON + "\n```"
	gen, _ := newTestGenerator(&stubClient{response: fenced})

	result, err := gen.Generate(context.Background(), "test-key", lab.TopicVLAN, lab.DifficultyEngineer)
	if err != nil {
		t.Fatalf("Generate failed on fenced response: %v", err)
	}
	if result.Title != "VLAN Segmentation" {
		t.Errorf("unexpected title: %q", result.Title)
	}
}

func TestGenerateExtractsFromProse(t *testing.T) {
	wrapped := "Here is your lab:\n" + validLabJSON + "\nGood luck!"
	gen, _ := newTestGenerator(&stubClient{response: wrapped})

	if _, err := gen.Generate(context.Background(), "test-key", lab.TopicVLAN, lab.DifficultyEngineer); err != nil {
		t.Fatalf("Generate failed on prose-wrapped response: %v", err)
	}
}

func TestGenerateMissingCredential(t *testing.T) {
	client := &stubClient{response: validLabJSON}
	gen, factory := newTestGenerator(client)

	for _, key := range []string{"", "   "} {
		result, err := gen.Generate(context.Background(), key, lab.TopicOSPF, lab.DifficultyJunior)
		if !errors.Is(err, ErrMissingCredential) {
			t.Errorf("key %q: expected ErrMissingCredential, got %v", key, err)
		}
		if result != nil {
			t.Errorf("key %q: expected no lab, got %+v", key, result)
		}
	}

	if factory.calls != 0 || client.calls != 0 {
		t.Errorf("no outbound call should be made without a credential (factory=%d, client=%d)",
			factory.calls, client.calls)
	}
}

func TestGenerateProviderFailure(t *testing.T) {
	gen, _ := newTestGenerator(&stubClient{err: fmt.Errorf("connection refused")})

	result, err := gen.Generate(context.Background(), "test-key", lab.TopicNAT, lab.DifficultyExpert)
	if result != nil {
		t.Errorf("expected no lab, got %+v", result)
	}

	var providerErr *ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
}

func TestGenerateNonJSONResponse(t *testing.T) {
	gen, _ := newTestGenerator(&stubClient{response: "I cannot produce labs today."})

	result, err := gen.Generate(context.Background(), "test-key", lab.TopicACL, lab.DifficultyJunior)
	if result != nil {
		t.Errorf("expected no lab, got %+v", result)
	}

	var malformedErr *MalformedResponseError
	if !errors.As(err, &malformedErr) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
}

func TestGenerateMissingFields(t *testing.T) {
	keys := []string{
		"title", "scenario", "connections", "device_configs",
		"tasks", "solution_commands", "verification_commands",
	}

	for _, missing := range keys {
		t.Run(missing, func(t *testing.T) {
			var full map[string]json.RawMessage
			if err := json.Unmarshal([]byte(validLabJSON), &full); err != nil {
				t.Fatalf("bad fixture: %v", err)
			}
			delete(full, missing)

			partial, err := json.Marshal(full)
			if err != nil {
				t.Fatalf("marshal fixture: %v", err)
			}

			gen, _ := newTestGenerator(&stubClient{response: string(partial)})

			result, err := gen.Generate(context.Background(), "test-key", lab.TopicBGP, lab.DifficultyEngineer)
			if result != nil {
				t.Errorf("expected no lab without %q, got %+v", missing, result)
			}

			var malformedErr *MalformedResponseError
			if !errors.As(err, &malformedErr) {
				t.Fatalf("expected MalformedResponseError without %q, got %v", missing, err)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"fenced with language tag", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fences", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"no fences", `{"a": 1}`, `{"a": 1}`},
		{"surrounding whitespace", "  \n{\"a\": 1}\n  ", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	if got := extractJSON("noise {\"a\": {\"b\": 2}} tail"); got != `{"a": {"b": 2}}` {
		t.Errorf("extractJSON = %q", got)
	}
	if got := extractJSON("no object here"); got != "" {
		t.Errorf("extractJSON on plain text = %q, want empty", got)
	}
}
