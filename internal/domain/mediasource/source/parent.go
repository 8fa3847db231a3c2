// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"

	"github.com/google/uuid"

	"github.com/xstudio-go/mediasource/internal/actor"
)

// Parent returns the source's weak parent back-reference, or
// Present=false if none was ever set (§6 "parent-get", §9 "Parent
// back-reference"). Only the `UuidActor`-equivalent form is supported —
// the original's deprecated bare-address overload is not ported.
func (a *Actor) Parent(ctx context.Context) (ParentRef, error) {
	return actor.Request(ctx, a.mb, func() (ParentRef, error) {
		return a.parent, nil
	})
}

// SetParent sets the source's parent back-reference (§6 "parent-set").
func (a *Actor) SetParent(ctx context.Context, parent uuid.UUID) error {
	_, err := actor.Request(ctx, a.mb, func() (struct{}, error) {
		a.parent = ParentRef{UUID: parent, Present: true}
		a.base.ParentUUID = parent
		return struct{}{}, nil
	})
	return err
}
