package service

import (
	"deepti.app/relay/common/llm"
	"deepti.app/relay/core/config"
)

type Services struct {
	completer llm.Completer
	sampling  config.RelayConfig
}

// NewServices wires services from explicit dependencies. completer may be nil.
func NewServices(completer llm.Completer, sampling config.RelayConfig) *Services {
	return &Services{
		completer: completer,
		sampling:  sampling,
	}
}

func (s *Services) Relay() RelayService {
	return NewRelayService(s.completer, s.sampling)
}

// NewCompleterFromConfig returns nil, nil when no credential is configured so
// callers fall back to the canned reply instead of failing.
func NewCompleterFromConfig(cfg config.LLMConfig) (llm.Completer, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	return llm.NewCompleter(llm.Config{
		Provider: cfg.Provider,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Model:    cfg.Model,
	})
}
