// SPDX-License-Identifier: Apache-2.0

package source

import (
	"encoding/json"

	"github.com/xstudio-go/mediasource/internal/domain/mediasource/ports"
)

// marshalProbeMetadata projects a ports.MediaDetail probe result into
// the JSON document stored under /metadata/media (§4.5).
func marshalProbeMetadata(detail ports.MediaDetail) ([]byte, error) {
	streams := make([]map[string]interface{}, 0, len(detail.Streams))
	for _, s := range detail.Streams {
		streams = append(streams, map[string]interface{}{
			"name":       s.Name,
			"media_type": s.MediaType,
			"key_format": s.KeyFormat,
			"frames":     s.Duration.Frames,
			"rate_num":   s.Duration.Rate.Num,
			"rate_den":   s.Duration.Rate.Den,
		})
	}
	return json.Marshal(map[string]interface{}{
		"container":  detail.Container,
		"frames":     detail.Frames,
		"rate_num":   detail.Rate.Num,
		"rate_den":   detail.Rate.Den,
		"key_format": detail.KeyFormat,
		"streams":    streams,
	})
}
