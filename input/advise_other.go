//go:build !linux

package input

// Advise is a no-op where fadvise is not available.
func (f *File) Advise() {}
