package analytics

import (
	"net"

	"github.com/sqlc-dev/pqtype"
)

// MustServerInet resolves the first non-loopback IPv4 address of this
// host as the inet key the counters are stored under.
func MustServerInet() pqtype.Inet {
	ifaces, err := net.Interfaces()
	if err != nil {
		panic(err)
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 {
			continue
		}
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			panic(err)
		}

		for _, addr := range addrs {
			var ipnet *net.IPNet
			var ip net.IP

			switch v := addr.(type) {
			case *net.IPNet:
				ipnet = v
				ip = v.IP

			case *net.IPAddr:
				ip = v.IP
			}

			if ipnet != nil && ip != nil && ip.To4() != nil && !ip.IsLoopback() {
				return pqtype.Inet{IPNet: *ipnet, Valid: true}
			}
		}
	}

	panic("server inet could not be found")
}
