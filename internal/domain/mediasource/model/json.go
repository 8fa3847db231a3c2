// SPDX-License-Identifier: Apache-2.0

package model

import "encoding/json"

func marshalBase(v serialisedBase) ([]byte, error) {
	return json.Marshal(v)
}

func unmarshalBase(data []byte, v *serialisedBase) error {
	return json.Unmarshal(data, v)
}
