package utils

import (
	"time"

	"github.com/AlphaR2/soteria"
)

// Logging is a decorator to log transactions as they pass through.
// Every entry carries the message path and the processing duration.
type Logging struct{}

var _ soteria.Decorator = Logging{}

// NewLogging creates a Logging decorator.
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> error, success -> debug.
func (r Logging) Check(ctx soteria.Context, store soteria.KVStore, tx soteria.Tx, next soteria.Checker) (*soteria.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logEntry(ctx, tx, start, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info.
func (r Logging) Deliver(ctx soteria.Context, store soteria.KVStore, tx soteria.Tx, next soteria.Deliverer) (*soteria.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logEntry(ctx, tx, start, resLog, err, false)
	return res, err
}

// logEntry writes the outcome of one transaction to the context
// logger. The entry is emitted even for an empty result log, the
// path, duration and error fields carry information on their own.
func logEntry(ctx soteria.Context, tx soteria.Tx, start time.Time, msg string, err error, lowPrio bool) {
	logger := soteria.GetLogger(ctx).With(
		"path", soteria.GetPath(tx),
		"duration", time.Since(start)/time.Microsecond,
	)

	switch {
	case err != nil:
		logger.With("err", err).Error(msg)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
