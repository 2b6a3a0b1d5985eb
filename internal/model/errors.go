// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package model

import "errors"

// ErrLineNotFound is returned when an add-number does not match any line
// in the file.
var ErrLineNotFound = errors.New("line not found")
