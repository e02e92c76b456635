package calculation

import (
	"testing"

	"github.com/rgehrsitz/dreamplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	engine := NewEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.Len(t, engine.Strategies, 3)
	assert.Equal(t, 600, engine.Assumptions.MaxPayoffMonths)
	assert.NotNil(t, engine.Now)
}

func TestEngine_SetLogger(t *testing.T) {
	engine := NewEngine()

	customLogger := &recordingLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestEngine_LogsThroughLogger(t *testing.T) {
	engine := newTestEngine()
	logger := &recordingLogger{}
	engine.SetLogger(logger)

	_, err := engine.Allocate(dec("2500"), allocationProfile(), "yolo")
	require.NoError(t, err)
	assert.Equal(t, 1, logger.count("WARN: "))
	assert.Positive(t, logger.count("DEBUG: "))
}

func TestEngine_ZeroValueIsUsable(t *testing.T) {
	engine := &Engine{
		Assumptions: domain.DefaultAssumptions(),
		Strategies:  domain.DefaultStrategyConfigs(),
		ChildCosts:  domain.DefaultChildCostTable(),
	}
	_, err := engine.PayoffTimeline(debtSet(), "avalanche", decimal.Zero)
	assert.NoError(t, err)
}

func TestNewEngineWithSettings(t *testing.T) {
	settings := domain.DefaultEngineSettings()
	settings.Assumptions.MaxPayoffMonths = 24
	engine, err := NewEngineWithSettings(settings)
	require.NoError(t, err)
	assert.Equal(t, 24, engine.Assumptions.MaxPayoffMonths)

	delete(settings.Strategies, domain.StrategyBalanced)
	_, err = NewEngineWithSettings(settings)
	assert.Error(t, err)
}
