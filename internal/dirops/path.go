// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package dirops implements the directory, file, and line handlers (§4.2,
// §4.3 of the design) and the routing table that maps an inbound activity
// to a handler and a broadcast audience (§4.4).
package dirops

import (
	"context"

	"github.com/codealong/server/internal/directory"
)

// splitParent resolves the parent directory of path's final segment.
// Blocking selects the traversal variant (see directory.Walk).
func splitParent(ctx context.Context, root *directory.Directory, path []string, blocking bool) (parent *directory.Directory, name string, err error) {
	if len(path) == 0 {
		return nil, "", &directory.NotFoundError{Name: ""}
	}
	parent, err = directory.Walk(ctx, root, path[:len(path)-1], blocking)
	if err != nil {
		return nil, "", err
	}
	return parent, path[len(path)-1], nil
}
