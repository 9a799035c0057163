package parser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invotab/internal/config"
	"invotab/internal/domain"
	"invotab/internal/parser"
	"invotab/internal/port"
)

type stubParser struct{}

func (stubParser) Parse(ctx context.Context, input port.ParseInput) (*domain.InvoiceRecord, error) {
	return &domain.InvoiceRecord{}, nil
}

func TestNewParser_RegisteredProvider(t *testing.T) {
	parser.RegisterProvider("stub", func(cfg *config.ParserConfig) (port.DocumentParser, error) {
		return stubParser{}, nil
	})

	p, err := parser.NewParser(&config.ParserConfig{Provider: "stub"})
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestNewParser_UnknownProvider(t *testing.T) {
	_, err := parser.NewParser(&config.ParserConfig{Provider: "does-not-exist"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown extraction provider")
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 0, parser.ParseRetryAfterHeader(""))
	assert.Equal(t, 0, parser.ParseRetryAfterHeader("soon"))
	assert.Equal(t, 30, parser.ParseRetryAfterHeader("30"))
}

func TestRateLimitError_Defaults(t *testing.T) {
	err := parser.NewRateLimitError("gemini", assert.AnError, 0)
	assert.Contains(t, err.Error(), "gemini rate limited")
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, "1m0s", err.RetryAfter.String())
}
