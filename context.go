package soteria

import (
	"context"
	"regexp"
	"time"

	"github.com/AlphaR2/soteria/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Context is just the context.Context interface, we add our own
// accessors to work with request-scoped data (chain id, block height,
// block time, logger).
type Context = context.Context

type contextKey int // local to this package

const (
	contextKeyHeight contextKey = iota
	contextKeyChainID
	contextKeyLogger
	contextKeyTime
)

var (
	// DefaultLogger is used for all context that have not set anything
	// themselves.
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID is the RegExp to ensure valid chain IDs.
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// WithHeight sets the block height into the Context.
//
// Panics if called with height already set.
func WithHeight(ctx Context, height int64) Context {
	if _, ok := GetHeight(ctx); ok {
		panic("block height already set")
	}
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the current block height. The ok flag is false
// when no height was set on this context.
func GetHeight(ctx Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// WithBlockTime sets the block time into the Context. Block time is
// the shared notion of "now" for every operation in a block.
func WithBlockTime(ctx Context, t time.Time) Context {
	return context.WithValue(ctx, contextKeyTime, t)
}

// BlockTime returns the block time. An error is returned when the time
// was not set on this context or when it was set to a zero value.
func BlockTime(ctx Context) (time.Time, error) {
	val, ok := ctx.Value(contextKeyTime).(time.Time)
	if !ok {
		return time.Time{}, errors.Wrap(errors.ErrHuman, "block time not present in the context")
	}
	if val.IsZero() {
		return val, errors.Wrap(errors.ErrHuman, "zero block time")
	}
	return val, nil
}

// IsExpired returns true if given time is in the past as compared to
// the "now" as declared for the block. Expiration is inclusive,
// meaning that if current time is equal to the expiration time then
// this function returns true.
func IsExpired(ctx Context, t UnixTime) bool {
	now, err := BlockTime(ctx)
	if err != nil {
		panic(err)
	}
	return t <= AsUnixTime(now)
}

// WithChainID sets the chain id into the Context.
//
// Panics if called with chain id already set or with an invalid one.
func WithChainID(ctx Context, chainID string) Context {
	if ctx.Value(contextKeyChainID) != nil {
		panic("chain id already set")
	}
	if !IsValidChainID(chainID) {
		panic("invalid chain id: " + chainID)
	}
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the chain id from the context. Panics if the
// chain id was not set, as this is a configuration error.
func GetChainID(ctx Context) string {
	val, ok := ctx.Value(contextKeyChainID).(string)
	if !ok {
		panic("chain id not set")
	}
	return val
}

// WithLogger sets the logger on this context.
func WithLogger(ctx Context, logger log.Logger) Context {
	// Logger can be overridden below... no problem.
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// GetLogger returns the logger from this context, or DefaultLogger if
// none was set.
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}

// WithLogInfo accepts keyvalue pairs, and returns another context like
// this, after passing all the keyvals to the Logger.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}
