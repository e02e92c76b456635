package calculation

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/dreamplan/internal/domain"
)

// Engine runs every planning calculation. It only holds read-only lookup
// data, so one Engine may be shared by concurrent callers.
type Engine struct {
	Assumptions domain.Assumptions
	Strategies  domain.StrategyConfigs
	ChildCosts  domain.ChildCostTable
	Logger      Logger

	// Now stamps payoff dates; tests pin it
	Now func() time.Time
}

// NewEngine creates an engine with the built-in assumptions and tables
func NewEngine() *Engine {
	e, _ := NewEngineWithSettings(domain.DefaultEngineSettings())
	return e
}

// NewEngineWithSettings creates an engine from validated settings
func NewEngineWithSettings(settings domain.EngineSettings) (*Engine, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine settings: %w", err)
	}
	return &Engine{
		Assumptions: settings.Assumptions,
		Strategies:  settings.Strategies,
		ChildCosts:  settings.ChildCosts,
		Logger:      NopLogger{},
		Now:         time.Now,
	}, nil
}

// SetLogger sets the logger; nil restores the no-op logger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

func (e *Engine) log() Logger {
	if e.Logger == nil {
		return NopLogger{}
	}
	return e.Logger
}

func (e *Engine) asOf() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}
