// SPDX-License-Identifier: Apache-2.0

// Package hook provides ports.MediaHookRegistry adapters.
package hook

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/xstudio-go/mediasource/internal/domain/mediasource/ports"
)

// Logging is a MediaHookRegistry that logs every notification instead
// of dispatching to a plugin, used as the default wiring until a real
// hook plugin registry exists (§4.6).
type Logging struct {
	Logger zerolog.Logger
}

func (h Logging) PostMediaSourcesChanged(ctx context.Context, sourceUUID uuid.UUID, uris []string) {
	h.Logger.Debug().
		Str("source_uuid", sourceUUID.String()).
		Strs("uris", uris).
		Msg("media hook: sources changed")
}

var _ ports.MediaHookRegistry = Logging{}
