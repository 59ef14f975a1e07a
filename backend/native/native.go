// Copyright 2025 Strata ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package native provides the pure-Go host backend.
//
// Importing this package registers the backend for native-kind
// devices; a blank import is enough:
//
//	import (
//	    "github.com/strata-ml/strata/array"
//	    _ "github.com/strata-ml/strata/backend/native"
//	)
package native

import (
	"github.com/strata-ml/strata/array"
	internalnative "github.com/strata-ml/strata/internal/backend/native"
)

// Backend represents the pure-Go host backend implementation.
type Backend = internalnative.Backend

// Compile-time check that Backend implements array.Allocator.
var _ array.Allocator = (*Backend)(nil)

// New creates a new native backend. The backend is stateless; the
// instance returned here is equivalent to the one registered on
// import.
func New() *Backend {
	return internalnative.New()
}
