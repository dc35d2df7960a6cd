package input

import "golang.org/x/sys/unix"

// Advise tells the kernel the file will be read sequentially and soon. The
// hints are best effort and failures are ignored.
func (f *File) Advise() {
	fd := int(f.Fd())
	_ = unix.Fadvise(fd, 0, 0, unix.FADV_SEQUENTIAL)
	_ = unix.Fadvise(fd, 0, 0, unix.FADV_WILLNEED)
}
