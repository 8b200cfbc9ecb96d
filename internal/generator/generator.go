package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"netlabgen.io/netlabgen/internal/validator"
	"netlabgen.io/netlabgen/pkg/lab"
)

// ErrMissingCredential is returned when no API key is available at
// invocation time. No outbound call is made on this path.
var ErrMissingCredential = errors.New("missing API key")

// ProviderError wraps a network or provider-level failure.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider call failed: %v", e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// MalformedResponseError indicates the response text was not parseable
// as JSON, or parsed but omitted a required lab field.
type MalformedResponseError struct {
	Detail string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed model response: %s: %v", e.Detail, e.Err)
	}
	return fmt.Sprintf("malformed model response: %s", e.Detail)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// Generator turns a (credential, topic, difficulty) triple into a
// validated lab. It is stateless: nothing survives one invocation.
type Generator struct {
	factory   ClientFactory
	validator *validator.Validator
	logger    zerolog.Logger
}

// New creates a new generator.
func New(factory ClientFactory, logger zerolog.Logger) *Generator {
	return &Generator{
		factory:   factory,
		validator: validator.New(),
		logger:    logger.With().Str("component", "generator").Logger(),
	}
}

// Generate runs the full pipeline: prompt build, one provider call,
// sanitize, parse, validate. On any failure no lab is returned.
func (g *Generator) Generate(ctx context.Context, apiKey string, topic lab.Topic, difficulty lab.Difficulty) (*lab.Lab, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingCredential
	}

	g.logger.Info().
		Str("topic", string(topic)).
		Str("difficulty", string(difficulty)).
		Msg("Generating lab")

	client, err := g.factory(ctx, apiKey)
	if err != nil {
		return nil, &ProviderError{Err: err}
	}

	raw, err := client.Generate(ctx, BuildPrompt(topic, difficulty))
	if err != nil {
		g.logger.Error().Err(err).Msg("Provider call failed")
		return nil, &ProviderError{Err: err}
	}

	parsed, err := g.parseResponse(raw)
	if err != nil {
		g.logger.Error().Err(err).Msg("Failed to parse model response")
		return nil, err
	}

	if result := g.validator.ValidateLab(parsed); !result.Valid {
		g.logger.Warn().
			Int("error_count", len(result.Errors)).
			Msg("Lab validation failed")
		return nil, &MalformedResponseError{Detail: result.Summary()}
	}

	g.logger.Info().
		Str("title", parsed.Title).
		Int("connections", len(parsed.Connections)).
		Int("tasks", len(parsed.Tasks)).
		Msg("Lab generated")

	return parsed, nil
}

// parseResponse sanitizes the raw response and decodes it into a lab.
func (g *Generator) parseResponse(raw string) (*lab.Lab, error) {
	clean := Sanitize(raw)

	var parsed lab.Lab
	if err := json.Unmarshal([]byte(clean), &parsed); err == nil {
		return &parsed, nil
	}

	// The model sometimes surrounds the object with prose despite the
	// JSON-only instruction. Fall back to scanning for the object.
	extracted := extractJSON(clean)
	if extracted == "" {
		return nil, &MalformedResponseError{Detail: "no JSON object found in response"}
	}

	if err := json.Unmarshal([]byte(extracted), &parsed); err != nil {
		return nil, &MalformedResponseError{Detail: "invalid JSON", Err: err}
	}

	return &parsed, nil
}

// Sanitize strips markdown code-fence markers the model tends to wrap
// JSON in, both the "```json" opener and the bare "```" closer.
func Sanitize(raw string) string {
	clean := strings.ReplaceAll(raw, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	return strings.TrimSpace(clean)
}

// extractJSON attempts to find and extract a JSON object from a string.
func extractJSON(s string) string {
	start := -1
	depth := 0

	for i, c := range s {
		if c == '{' {
			if start == -1 {
				start = i
			}
			depth++
		} else if c == '}' {
			depth--
			if depth == 0 && start != -1 {
				return s[start : i+1]
			}
		}
	}

	return ""
}
