// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package activity implements the wire protocol: externally-tagged JSON
// unions for inbound user requests and outbound session events, matching
// the `{"Variant": payload}` shape of the original serde-derived enums.
package activity

import (
	"encoding/json"
	"fmt"
)

// marshalTagged encodes a single-variant object {"tag": payload}. A nil
// payload is encoded as a JSON null.
func marshalTagged(tag string, payload interface{}) ([]byte, error) {
	return json.Marshal(map[string]interface{}{tag: payload})
}

// untag splits a tagged-union frame into its variant name and raw payload.
// It rejects frames with anything other than exactly one key, since a
// well-formed externally-tagged union frame always has one.
func untag(data []byte) (tag string, raw json.RawMessage, err error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return "", nil, err
	}
	if len(m) != 1 {
		return "", nil, fmt.Errorf("tagged union frame must have exactly one key, got %d", len(m))
	}
	for k, v := range m {
		return k, v, nil
	}
	return "", nil, fmt.Errorf("unreachable")
}
