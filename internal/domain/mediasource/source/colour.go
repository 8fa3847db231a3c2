// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/ports"
)

// colourPipelinePath is the Metadata Store path ColourPipeline and
// SetColourPipeline both read/write. It is the sole copy of this value
// — a generic JsonSet/JsonMerge targeting the same path (§6 "json-set",
// "json-merge") is observed by ColourPipeline too.
const colourPipelinePath = "/colour_pipeline"

// ColourPipeline returns the source's current colour-pipeline
// configuration JSON, read from the Metadata Store at /colour_pipeline
// (original's get_colour_pipe_params_atom). Absence is not an error: it
// reports as a nil payload.
func (a *Actor) ColourPipeline(ctx context.Context) (json.RawMessage, error) {
	if a.rt.Metadata == nil {
		return nil, nil
	}
	val, err := a.rt.Metadata.Get(ctx, a.base.UUID, colourPipelinePath)
	if err != nil {
		var me *model.Error
		if errors.As(err, &me) && me.Kind == model.KindNoFrames {
			return nil, nil
		}
		return nil, model.WrapMetadata(err)
	}
	return json.RawMessage(val), nil
}

// SetColourPipeline replaces the colour-pipeline configuration and
// broadcasts change (original's set_colour_pipe_params_atom).
func (a *Actor) SetColourPipeline(ctx context.Context, params json.RawMessage) error {
	if a.rt.Metadata == nil {
		return model.WrapMetadata(fmt.Errorf("no metadata store configured"))
	}
	if err := a.rt.Metadata.Set(ctx, a.base.UUID, colourPipelinePath, params); err != nil {
		return model.WrapMetadata(err)
	}
	a.publish(ctx, ports.EventDetailChanged, map[string]interface{}{"kind": "colour_pipeline"})
	return nil
}
