// Package netguard validates the caller's network address against the
// configured office network before attendance actions are allowed.
package netguard

import (
	"fmt"
	"strings"

	"github.com/pasiware/faceclock/internal/domain"
)

// Admission is the outcome of a network policy check. Reason is only set
// when the request is denied.
type Admission struct {
	Allowed bool
	Reason  string
}

const privatePrefix = "192.168."

// Check applies the office network policy to a request address.
//
// An empty policy means no restriction. IPv4-mapped IPv6 addresses are
// normalized first. Exact matches are allowed, and addresses on the same
// 192.168.x.0/24 network as the configured one are allowed too, because
// client addresses on such networks commonly rotate their last octet.
func Check(requestAddr string, policy domain.NetworkPolicy) Admission {
	allowed := strings.TrimSpace(policy.AllowedNetwork)
	if allowed == "" {
		return Admission{Allowed: true}
	}

	requestAddr = normalize(requestAddr)

	if requestAddr == allowed {
		return Admission{Allowed: true}
	}

	if sameLocalSubnet(allowed, requestAddr) {
		return Admission{Allowed: true}
	}

	return Admission{
		Allowed: false,
		Reason:  fmt.Sprintf("IP mismatch. Allowed network: %s, you are on: %s", allowed, requestAddr),
	}
}

// normalize strips the IPv4-mapped IPv6 prefix so ::ffff:A.B.C.D compares as
// A.B.C.D.
func normalize(addr string) string {
	if i := strings.Index(addr, "::ffff:"); i >= 0 {
		return addr[i+len("::ffff:"):]
	}
	return addr
}

// sameLocalSubnet reports whether both addresses are in 192.168.0.0/16 and
// share the first three dotted components.
func sameLocalSubnet(allowed, request string) bool {
	if !strings.HasPrefix(allowed, privatePrefix) || !strings.HasPrefix(request, privatePrefix) {
		return false
	}

	allowedParts := strings.Split(allowed, ".")
	requestParts := strings.Split(request, ".")
	if len(allowedParts) < 3 || len(requestParts) < 3 {
		return false
	}

	return allowedParts[0] == requestParts[0] &&
		allowedParts[1] == requestParts[1] &&
		allowedParts[2] == requestParts[2]
}
