//go:build !unix

package ember

import "syscall"

func setReuseAddr(network, address string, rawConn syscall.RawConn) error {
	return nil
}
