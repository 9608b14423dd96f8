package uuidgen

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"net"
	"strings"
)

const (
	nodeMask = 1<<48 - 1

	// multicastBit marks a node id that is not an IEEE 802 address
	// (RFC 4122 §4.5).
	multicastBit = 1 << 40
)

// NodeIDProvider supplies the 48-bit node id embedded in time-based UUIDs.
// The generator queries it once at construction and again on every call;
// a changed value causes the clock sequence to be resampled.
type NodeIDProvider interface {
	NodeID() uint64
}

// StaticNodeIDProvider always returns the same node id, truncated to 48 bits.
type StaticNodeIDProvider uint64

// NodeID implements NodeIDProvider.
func (p StaticNodeIDProvider) NodeID() uint64 {
	return uint64(p) & nodeMask
}

// RandomNodeIDProvider returns a node id drawn at random when the provider
// is created. The multicast bit is set so the value cannot collide with a
// real network card address.
type RandomNodeIDProvider struct {
	id uint64
}

// NewRandomNodeIDProvider draws a node id from crypto/rand.
func NewRandomNodeIDProvider() (*RandomNodeIDProvider, error) {
	return NewRandomNodeIDProviderFromReader(rand.Reader)
}

// NewRandomNodeIDProviderFromReader draws a node id from r.
func NewRandomNodeIDProviderFromReader(r io.Reader) (*RandomNodeIDProvider, error) {
	var b [6]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return nil, err
	}
	return &RandomNodeIDProvider{id: nodeFromOctets(b[:]) | multicastBit}, nil
}

// NodeID implements NodeIDProvider.
func (p *RandomNodeIDProvider) NodeID() uint64 {
	return p.id
}

// HardwareNodeID returns the hardware address of the first network interface
// with a 6-byte address, and false when there is none.
func HardwareNodeID() (uint64, bool) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return 0, false
	}
	for _, ifi := range ifaces {
		if len(ifi.HardwareAddr) != 6 {
			continue
		}
		id := nodeFromOctets(ifi.HardwareAddr)
		if id == 0 {
			continue
		}
		return id, true
	}
	return 0, false
}

// NewHardwareNodeIDProvider uses HardwareNodeID and falls back to a random
// node id when the host has no usable interface.
func NewHardwareNodeIDProvider() (NodeIDProvider, error) {
	if id, ok := HardwareNodeID(); ok {
		return StaticNodeIDProvider(id), nil
	}
	return NewRandomNodeIDProvider()
}

// ParseNodeID parses a 48-bit node id written as a MAC address
// (32:50:96:b3:9f:47 or 32-50-96-b3-9f-47) or as 12 hex digits with an
// optional 0x prefix.
func ParseNodeID(s string) (uint64, error) {
	if strings.ContainsAny(s, ":-") {
		hw, err := net.ParseMAC(s)
		if err != nil || len(hw) != 6 {
			return 0, ErrInvalidNodeID
		}
		return nodeFromOctets(hw), nil
	}
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != 12 {
		return 0, ErrInvalidNodeID
	}
	var b [6]byte
	if _, err := hex.Decode(b[:], []byte(s)); err != nil {
		return 0, ErrInvalidNodeID
	}
	return nodeFromOctets(b[:]), nil
}

// FormatNodeID renders a node id as a colon-separated MAC address.
func FormatNodeID(id uint64) string {
	var b [6]byte
	putNode(b[:], id)
	return net.HardwareAddr(b[:]).String()
}
