package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoutingConfigRouterConfig(t *testing.T) {
	t.Parallel()

	log := slog.Default()

	disabled := RoutingConfig{CacheDecisions: true}.RouterConfig(log)
	assert.True(t, disabled.CacheDecisions)
	assert.Nil(t, disabled.Classifier)
	assert.Same(t, log, disabled.Logger)

	enabled := RoutingConfig{ClassifierEnabled: true}.RouterConfig(nil)
	assert.False(t, enabled.CacheDecisions)
	assert.NotNil(t, enabled.Classifier)
}
