// SPDX-License-Identifier: Apache-2.0

package model

// MediaType distinguishes image (video) streams from audio streams. A
// Media Source owns at least one image stream and at most one audio
// stream (§1).
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeAudio MediaType = "audio"
)

// MediaTypes lists the two media types the registry tracks, in the order
// most code should iterate them (image before audio).
var MediaTypes = []MediaType{MediaTypeImage, MediaTypeAudio}
