// Package platform is the OS abstraction the pool core calls into for
// native thread identity and CPU affinity. It is a pure boundary: failures
// here are platform errors propagated as-is, never core errors.
//
// Affinity masks are plain []bool indexed by CPU number: mask[2] == true
// means CPU 2 is permitted. Only Linux implements affinity control; other
// platforms report ErrUnsupported.
package platform

import "errors"

// ErrUnsupported is returned where the OS exposes no affinity control.
var ErrUnsupported = errors.New("platform: not supported on this OS")
