// Package ratelimit implements the fixed-window counter that guards contact
// form submissions.
//
// A window opens on a key's first request and lasts Window. Up to Limit
// requests are admitted inside it; further requests are rejected without
// touching the counter. The first request after the window has passed opens
// a fresh one. Requests straddling a boundary can therefore see up to twice
// the nominal rate; that is the accepted behaviour.
package ratelimit

import (
	"context"
	"time"
)

const (
	DefaultLimit  = 5
	DefaultWindow = 15 * time.Minute
)

// Limiter decides whether a request identified by key may proceed and, if
// so, consumes one slot of the key's current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Policy is the limit applied per window.
type Policy struct {
	Limit  int
	Window time.Duration
}

// DefaultPolicy is five requests per fifteen minutes.
func DefaultPolicy() Policy {
	return Policy{Limit: DefaultLimit, Window: DefaultWindow}
}

func (p Policy) normalize() Policy {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Window <= 0 {
		p.Window = DefaultWindow
	}
	return p
}
