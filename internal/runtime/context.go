// SPDX-License-Identifier: Apache-2.0

// Package runtime carries the process-wide collaborators a Media Source
// needs but never owns — the reader registry, metadata store, event
// bus, hook registry, per-media-type frame caches, thumbnail manager,
// and scanner — bundled into one explicit value passed to every source
// constructor (§2, §9 "Global state").
package runtime

import (
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/xstudio-go/mediasource/internal/config"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/ports"
	"github.com/xstudio-go/mediasource/internal/log"
)

// Context bundles every port implementation a Media Source may call,
// plus ambient collaborators (clock, logger, config). None of these are
// ambient globals inside the domain packages — they are always reached
// through a Context value a caller constructed explicitly.
type Context struct {
	Reader     ports.ReaderRegistry
	Metadata   ports.MetadataStore
	Bus        ports.EventBus
	Hook       ports.MediaHookRegistry
	ImageCache ports.FrameCache
	AudioCache ports.FrameCache
	Thumbnails ports.ThumbnailManager
	Scanner    ports.Scanner

	// ProbeLimiter throttles full-probe acquire-detail calls across every
	// source sharing this Context, so a burst of newly-referenced
	// sequences can't stall the reader registry — the same motivation
	// §4.5 cites for probing only frame 0. Nil disables throttling.
	ProbeLimiter *rate.Limiter

	Clock  ports.Clock
	Logger zerolog.Logger
	Config config.RuntimeConfig
}

// FallbackRate returns the configured fallback frame rate used by
// acquire-detail when a probe reports no usable rate.
func (c Context) FallbackRate() model.FrameRate {
	return model.NewFrameRate(c.Config.FallbackRate.Num, c.Config.FallbackRate.Den)
}

// CacheFor returns the frame cache for mt, or nil if none is wired —
// invalidate-cache tolerates a nil cache per §4.4 ("returns empty vector
// if no cache is registered").
func (c Context) CacheFor(mt model.MediaType) ports.FrameCache {
	switch mt {
	case model.MediaTypeImage:
		return c.ImageCache
	case model.MediaTypeAudio:
		return c.AudioCache
	default:
		return nil
	}
}

// Log returns the context's logger.
func (c Context) Log() *zerolog.Logger {
	return &c.Logger
}

// New builds a Context from cfg with no ports set, defaulting the
// logger, clock and probe limiter so callers only need to supply the
// ports that matter to the test or binary at hand.
func New(cfg config.RuntimeConfig) Context {
	var limiter *rate.Limiter
	if cfg.RateLimit.ProbesPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.ProbesPerSecond), 1)
	}
	return Context{
		Clock:        ports.SystemClock{},
		Logger:       log.L(),
		Config:       cfg,
		ProbeLimiter: limiter,
	}
}
