// Package netaddr finds an address other hosts on the local network can use
// to reach the stream the launcher serves in server mode.
package netaddr

import (
	"net"
	"strings"
)

// DefaultProbeAddress is only used to pick a route; no packet is sent.
const DefaultProbeAddress = "8.8.8.8:53"

// DefaultFallback is returned when nothing better can be found.
const DefaultFallback = "localhost"

// Discoverer resolves the host's LAN-facing address. The function fields are
// swappable for tests.
type Discoverer struct {
	InterfaceAddrs func() ([]net.Addr, error)
	Dial           func(network, address string) (net.Conn, error)
	ProbeAddress   string
	Fallback       string
}

// Default returns a Discoverer backed by the host network stack.
func Default(probe string) Discoverer {
	probe = strings.TrimSpace(probe)
	if probe == "" {
		probe = DefaultProbeAddress
	}
	return Discoverer{
		InterfaceAddrs: net.InterfaceAddrs,
		Dial:           net.Dial,
		ProbeAddress:   probe,
		Fallback:       DefaultFallback,
	}
}

// LocalAddress never fails. Interface addresses win (IPv4 before IPv6), then
// the source address of a UDP route probe, then the fallback.
func (d Discoverer) LocalAddress() string {
	if addr := d.fromInterfaces(); addr != "" {
		return addr
	}
	if addr := d.fromProbe(); addr != "" {
		return addr
	}
	if strings.TrimSpace(d.Fallback) != "" {
		return d.Fallback
	}
	return DefaultFallback
}

func (d Discoverer) fromInterfaces() string {
	if d.InterfaceAddrs == nil {
		return ""
	}
	addrs, err := d.InterfaceAddrs()
	if err != nil {
		return ""
	}
	var v6 string
	for _, addr := range addrs {
		ip := ipOf(addr)
		if !usable(ip) {
			continue
		}
		if ip.To4() != nil {
			return ip.String()
		}
		if v6 == "" {
			v6 = ip.String()
		}
	}
	return v6
}

func (d Discoverer) fromProbe() string {
	if d.Dial == nil || strings.TrimSpace(d.ProbeAddress) == "" {
		return ""
	}
	conn, err := d.Dial("udp", d.ProbeAddress)
	if err != nil {
		return ""
	}
	defer conn.Close()
	udp, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || !usable(udp.IP) {
		return ""
	}
	return udp.IP.String()
}

func ipOf(addr net.Addr) net.IP {
	switch v := addr.(type) {
	case *net.IPNet:
		return v.IP
	case *net.IPAddr:
		return v.IP
	default:
		return nil
	}
}

func usable(ip net.IP) bool {
	if ip == nil || ip.IsUnspecified() || ip.IsLoopback() {
		return false
	}
	return !ip.IsLinkLocalUnicast() && !ip.IsLinkLocalMulticast()
}

// Endpoint is the stream URL a remote player should open.
func Endpoint(addr, port string) string {
	return "http://" + net.JoinHostPort(addr, port) + "/tv.asf"
}
