package circuitbreaker

import (
	"context"
	"database/sql"
	"time"

	"github.com/sony/gobreaker"
)

// DBCircuitBreaker wraps a database connection with circuit breaker protection.
// It satisfies repository.QueryExecutor.
type DBCircuitBreaker struct {
	cb *CircuitBreaker
	db *sql.DB
}

// DBConfig opens after 5 consecutive failures and probes again after 30 seconds.
func DBConfig() Config {
	return Config{
		Name:             "database",
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 1.0,
		MinRequests:      5,
	}
}

func NewDBCircuitBreaker(db *sql.DB) *DBCircuitBreaker {
	return NewDBCircuitBreakerWithConfig(db, DBConfig())
}

func NewDBCircuitBreakerWithConfig(db *sql.DB, cfg Config) *DBCircuitBreaker {
	return &DBCircuitBreaker{
		cb: New(cfg),
		db: db,
	}
}

// QueryContext executes a query with circuit breaker protection.
// If the circuit is open, it returns gobreaker.ErrOpenState without hitting the database.
func (dcb *DBCircuitBreaker) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	result, err := dcb.cb.Execute(func() (interface{}, error) {
		return dcb.db.QueryContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return result.(*sql.Rows), nil
}

// QueryRowContext passes through unprotected: *sql.Row defers its error until Scan,
// so the breaker never sees the outcome.
func (dcb *DBCircuitBreaker) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return dcb.db.QueryRowContext(ctx, query, args...)
}

// PingContext checks connectivity through the breaker.
func (dcb *DBCircuitBreaker) PingContext(ctx context.Context) error {
	_, err := dcb.cb.Execute(func() (interface{}, error) {
		return nil, dcb.db.PingContext(ctx)
	})
	return err
}

// State returns the current state of the circuit breaker.
func (dcb *DBCircuitBreaker) State() gobreaker.State {
	return dcb.cb.State()
}

// IsOpen reports whether the circuit breaker is in the open state.
func (dcb *DBCircuitBreaker) IsOpen() bool {
	return dcb.cb.IsOpen()
}

// DB returns the underlying database connection.
func (dcb *DBCircuitBreaker) DB() *sql.DB {
	return dcb.db
}
