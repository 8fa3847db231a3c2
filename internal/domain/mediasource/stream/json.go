// SPDX-License-Identifier: Apache-2.0

package stream

import "encoding/json"

func marshalStream(v serialisedStream) ([]byte, error) {
	return json.Marshal(v)
}
