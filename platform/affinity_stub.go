//go:build !linux

package platform

// ThreadID returns 0; this platform exposes no native thread identity.
func ThreadID() int {
	return 0
}

// Affinity is not supported on this platform.
func Affinity(tid int) ([]bool, error) {
	return nil, ErrUnsupported
}

// SetAffinity is not supported on this platform.
func SetAffinity(tid int, mask []bool) error {
	return ErrUnsupported
}
