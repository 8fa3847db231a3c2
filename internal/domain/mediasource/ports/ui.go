// SPDX-License-Identifier: Apache-2.0

package ports

import (
	"encoding/json"

	"github.com/google/uuid"
)

// UICompanion receives best-effort UI projection pushes when a source's
// detail changes (§4.9, "UI detail projection"). It never blocks the
// actor that calls it: adapters must buffer or drop.
type UICompanion interface {
	PushDetail(sourceUUID uuid.UUID, detail UIDetail)
}

// UIDetail is the flattened, display-ready view of a source's current
// detail, matching the field set of §4.9. MetadataSubtree carries the
// "source details" payload (the /metadata/media subtree, or an empty
// JSON document if the probe that was triggered to fill it failed).
type UIDetail struct {
	Name            string
	Path            string
	Resolution      string
	PixelAspect     float64
	FPS             string
	Duration        string
	ColourPipeline  string
	MetadataSubtree json.RawMessage
}
