package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/career-platform/internal/schemas"
	"github.com/jonathan/career-platform/internal/types"
)

// Parser turns extracted resume text into a validated ParsedResume.
type Parser struct {
	client    Client
	validator *schemas.Validator
}

// NewParser wires a model client with the parser-output schema.
func NewParser(client Client, validator *schemas.Validator) *Parser {
	return &Parser{client: client, validator: validator}
}

// Parse sends the resume text to the model, validates the response against
// the schema, and decodes it. The returned document is untrusted input as far
// as profile semantics go; reconciliation decides what to keep.
func (p *Parser) Parse(ctx context.Context, resumeText string) (*types.ParsedResume, error) {
	raw, err := p.client.GenerateJSON(ctx, ParsePrompt(resumeText))
	if err != nil {
		return nil, fmt.Errorf("resume parsing failed: %w", err)
	}

	doc := []byte(raw)
	if err := p.validator.Validate(doc); err != nil {
		return nil, fmt.Errorf("parser output rejected: %w", err)
	}

	var parsed types.ParsedResume
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode parser output: %w", err)
	}
	return &parsed, nil
}
