//go:build !linux

package web

import "net"

func rtt(net.Conn) (uint32, error) {
	return 0, errNoTCPInfo
}
