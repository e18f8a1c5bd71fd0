//go:build unix

package binding

import "golang.org/x/sys/unix"

// Errno maps err to the POSIX errno a C caller expects:
//   - invalid argument: EINVAL
//   - buffer too small: ENOBUFS
//   - malformed encoding: EBADMSG
//   - unsupported: ENOTSUP
//
// A nil error maps to 0 and an unclassified error to EIO.
func Errno(err error) unix.Errno {
	switch CodeOf(err) {
	case CodeOK:
		return 0
	case CodeInvalidArgument:
		return unix.EINVAL
	case CodeBufferTooSmall:
		return unix.ENOBUFS
	case CodeMalformed:
		return unix.EBADMSG
	case CodeUnsupported:
		return unix.ENOTSUP
	default:
		return unix.EIO
	}
}
