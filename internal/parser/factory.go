package parser

import (
	"fmt"

	"invotab/internal/config"
	"invotab/internal/port"
)

// ProviderFactory is a function that creates a DocumentParser from the
// parser config.
type ProviderFactory func(cfg *config.ParserConfig) (port.DocumentParser, error)

// registry of extraction provider factories, populated via RegisterProvider
// at startup.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers an extraction provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewParser creates a DocumentParser from the parser config using the
// registered factory.
func NewParser(cfg *config.ParserConfig) (port.DocumentParser, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown extraction provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
