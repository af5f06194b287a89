package core

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net/netip"
)

// ErrInvalidAddress is returned when a string does not parse as a
// dotted-decimal IPv4 address.
var ErrInvalidAddress = errors.New("invalid IPv4 address")

// ParseAddr converts a dotted-decimal IPv4 address into its big-endian
// 32-bit integer form, the node key used throughout the graph.
func ParseAddr(s string) (uint32, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil || !addr.Is4() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	b := addr.As4()
	return binary.BigEndian.Uint32(b[:]), nil
}

// FormatAddr is the inverse of ParseAddr. It is total over the 32-bit
// domain and always yields canonical dotted-decimal form.
func FormatAddr(n uint32) string {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], n)
	return netip.AddrFrom4(b).String()
}
