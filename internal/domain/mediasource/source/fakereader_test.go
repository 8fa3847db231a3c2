// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"

	"github.com/xstudio-go/mediasource/internal/domain/mediasource/ports"
)

// fakeReader is a ports.ReaderRegistry test double whose Probe result is
// configured per test.
type fakeReader struct {
	tag        string
	tagErr     error
	detail     ports.MediaDetail
	detailErr  error
	probeCalls int
}

func (r *fakeReader) ReaderTag(ctx context.Context, uri string) (string, error) {
	if r.tagErr != nil {
		return "", r.tagErr
	}
	return r.tag, nil
}

func (r *fakeReader) Probe(ctx context.Context, readerTag, uri string, frame *int) (ports.MediaDetail, error) {
	r.probeCalls++
	if r.detailErr != nil {
		return ports.MediaDetail{}, r.detailErr
	}
	return r.detail, nil
}

var _ ports.ReaderRegistry = (*fakeReader)(nil)
