package resilience

import (
	"errors"
	"sync"
	"time"
)

// State is the breaker position.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

var stateNames = [...]string{StateClosed: "closed", StateOpen: "open", StateHalfOpen: "half-open"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// ErrCircuitOpen short-circuits calls while the breaker is open or its
// half-open trials are all in flight.
var ErrCircuitOpen = errors.New("circuit breaker is open")

const (
	defaultMaxFailures = 5
	defaultOpenTimeout = 30 * time.Second
)

// CircuitBreakerConfig tunes a CircuitBreaker. Zero values take defaults.
type CircuitBreakerConfig struct {
	Name             string        `yaml:"name" mapstructure:"name"`
	MaxFailures      int           `yaml:"max_failures" mapstructure:"max_failures"`
	Timeout          time.Duration `yaml:"timeout" mapstructure:"timeout"` // time spent open before probing
	HalfOpenMaxCalls int           `yaml:"half_open_max_calls" mapstructure:"half_open_max_calls"`

	OnStateChange func(name string, from, to State) `yaml:"-" mapstructure:"-"`
	Now           func() time.Time                  `yaml:"-" mapstructure:"-"`
}

func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		MaxFailures:      defaultMaxFailures,
		Timeout:          defaultOpenTimeout,
		HalfOpenMaxCalls: 1,
	}
}

// CircuitBreaker opens after MaxFailures consecutive errors, rejects calls
// for Timeout, then lets HalfOpenMaxCalls trials through. All trials
// succeeding closes it again; any trial failing reopens it.
type CircuitBreaker struct {
	cfg CircuitBreakerConfig

	mu       sync.Mutex
	state    State
	failures int
	trials   int // trials admitted in the current half-open window
	passed   int // trials that succeeded
	openedAt time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = defaultMaxFailures
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultOpenTimeout
	}
	if cfg.HalfOpenMaxCalls <= 0 {
		cfg.HalfOpenMaxCalls = 1
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &CircuitBreaker{cfg: cfg}
}

// Execute runs fn unless the breaker rejects the call, and records its
// outcome.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if err := cb.admit(); err != nil {
		return err
	}
	err := fn()
	cb.done(err)
	return err
}

func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.refresh()
}

// Failures is the consecutive failure count.
func (cb *CircuitBreaker) Failures() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.failures
}

func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.moveTo(StateClosed)
	cb.failures = 0
}

func (cb *CircuitBreaker) admit() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	switch cb.refresh() {
	case StateClosed:
		return nil
	case StateHalfOpen:
		if cb.trials >= cb.cfg.HalfOpenMaxCalls {
			return ErrCircuitOpen
		}
		cb.trials++
		return nil
	}
	return ErrCircuitOpen
}

func (cb *CircuitBreaker) done(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	halfOpen := cb.refresh() == StateHalfOpen
	if err != nil {
		cb.failures++
		if halfOpen || cb.failures >= cb.cfg.MaxFailures {
			cb.moveTo(StateOpen)
		}
		return
	}
	if !halfOpen {
		cb.failures = 0
		return
	}
	if cb.passed++; cb.passed >= cb.cfg.HalfOpenMaxCalls {
		cb.moveTo(StateClosed)
	}
}

// refresh moves an expired open breaker to half-open. mu must be held.
func (cb *CircuitBreaker) refresh() State {
	if cb.state == StateOpen && !cb.cfg.Now().Before(cb.openedAt.Add(cb.cfg.Timeout)) {
		cb.moveTo(StateHalfOpen)
	}
	return cb.state
}

func (cb *CircuitBreaker) moveTo(next State) {
	prev := cb.state
	if prev == next {
		return
	}
	cb.state, cb.trials, cb.passed = next, 0, 0
	if next == StateClosed {
		cb.failures = 0
	}
	if next == StateOpen {
		cb.openedAt = cb.cfg.Now()
	}
	if cb.cfg.OnStateChange != nil {
		cb.cfg.OnStateChange(cb.cfg.Name, prev, next)
	}
}
