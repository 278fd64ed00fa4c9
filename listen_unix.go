//go:build unix

package ember

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// setReuseAddr lets a restarted engine bind a port whose previous
// connections are still in TIME_WAIT.
func setReuseAddr(network, address string, rawConn syscall.RawConn) (err error) {
	controlErr := rawConn.Control(func(fd uintptr) {
		err = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	})
	if controlErr != nil {
		return controlErr
	}
	return
}
