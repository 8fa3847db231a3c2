// SPDX-License-Identifier: Apache-2.0

// Package stream implements the Media Stream actor: the per-media-type
// child that owns a StreamDetail and answers its source's requests for
// it, duplication, and serialisation (§2, §4.2).
package stream

import (
	"context"

	"github.com/google/uuid"
	"github.com/xstudio-go/mediasource/internal/actor"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
)

// Actor is a single Media Stream: an actor-owned StreamDetail plus the
// uuid identifying it within its source's stream registry.
type Actor struct {
	mb *actor.Mailbox

	uuid   uuid.UUID
	detail model.StreamDetail
}

// New constructs a stream actor around detail, generating a fresh uuid
// unless id is supplied (source rehydration passes the serialised uuid
// through; Duplicate below passes uuid.Nil and so always mints a new one).
func New(detail model.StreamDetail, id uuid.UUID) *Actor {
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &Actor{
		mb:     actor.NewMailbox(8),
		uuid:   id,
		detail: detail,
	}
}

// UUID returns the stream's identity.
func (a *Actor) UUID() uuid.UUID { return a.uuid }

// MediaType returns the stream's media type without a mailbox round
// trip: media type is immutable for the lifetime of a stream actor.
func (a *Actor) MediaType() model.MediaType { return a.detail.MediaType }

// Detail requests the stream's current StreamDetail.
func (a *Actor) Detail(ctx context.Context) (model.StreamDetail, error) {
	return actor.Request(ctx, a.mb, func() (model.StreamDetail, error) {
		return a.detail, nil
	})
}

// SetDetail replaces the stream's StreamDetail.
func (a *Actor) SetDetail(ctx context.Context, detail model.StreamDetail) error {
	_, err := actor.Request(ctx, a.mb, func() (struct{}, error) {
		a.detail = detail
		return struct{}{}, nil
	})
	return err
}

// Duplicate creates a new stream actor with the same StreamDetail and a
// freshly minted uuid, mirroring the original's per-stream duplicate_atom
// handler (§4.7).
func (a *Actor) Duplicate(ctx context.Context) (*Actor, error) {
	detail, err := a.Detail(ctx)
	if err != nil {
		return nil, err
	}
	return New(detail, uuid.Nil), nil
}

// Serialise projects the stream to its JSON persisted form (§4.8).
func (a *Actor) Serialise(ctx context.Context) ([]byte, error) {
	detail, err := a.Detail(ctx)
	if err != nil {
		return nil, err
	}
	return marshalStream(serialisedStream{
		UUID:      a.uuid,
		Name:      detail.Name,
		MediaType: detail.MediaType,
		KeyFormat: detail.KeyFormat,
		Frames:    detail.Duration.Frames,
		RateNum:   detail.Duration.Rate.Num,
		RateDen:   detail.Duration.Rate.Den,
	})
}

// Shutdown stops the stream's mailbox, waiting for in-flight requests.
func (a *Actor) Shutdown(ctx context.Context) error {
	return a.mb.Shutdown(ctx)
}

type serialisedStream struct {
	UUID      uuid.UUID       `json:"uuid"`
	Name      string          `json:"name"`
	MediaType model.MediaType `json:"media_type"`
	KeyFormat string          `json:"key_format"`
	Frames    int             `json:"frames"`
	RateNum   int64           `json:"rate_num"`
	RateDen   int64           `json:"rate_den"`
}
