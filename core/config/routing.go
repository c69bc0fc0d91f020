package config

import (
	"log/slog"

	"github.com/adalundhe/psyche/faculties"
)

// RouterConfig translates the routing section into the faculty router's
// own configuration. When the classifier is enabled an Anthropic-backed
// one is constructed, with the API key resolved from the environment.
func (c RoutingConfig) RouterConfig(log *slog.Logger) faculties.RouterConfig {
	routerConfig := faculties.RouterConfig{
		CacheDecisions: c.CacheDecisions,
		Logger:         log,
	}

	if c.ClassifierEnabled {
		routerConfig.Classifier = faculties.NewLLMClassifier("")
	}

	return routerConfig
}
