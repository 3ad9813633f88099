// Package target parses user-supplied SSH destination strings.
package target

import (
	"errors"
	"strconv"
	"strings"
)

// DefaultPort is the standard SSH port, used when a destination does not
// carry an explicit port.
const DefaultPort = 22

// ErrInvalid indicates a destination string that cannot be parsed.
var ErrInvalid = errors.New("invalid destination")

// Target is a parsed SSH destination.
type Target struct {
	// User is the login name, empty when the destination did not include one.
	User string

	// Host is the hostname or IP address. Never empty.
	Host string

	// Port is the SSH port. DefaultPort when the destination did not carry
	// a numeric port suffix.
	Port int
}

// Parse turns a free-form destination string into a Target.
//
// Accepted shapes: "host", "host:2222", "user@host", "user@host:2222".
// A leading "ssh " is stripped, so a full client invocation pasted in by
// mistake still parses. A suffix after the last colon that is not an
// integer is kept as part of the host and the default port applies.
func Parse(raw string) (*Target, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, ErrInvalid
	}

	// Tolerate a pasted client invocation like "ssh user@host".
	if rest, ok := strings.CutPrefix(s, "ssh "); ok {
		s = strings.TrimSpace(rest)
	}

	t := &Target{Port: DefaultPort}

	rest := s
	if idx := strings.Index(s, "@"); idx != -1 {
		t.User = strings.TrimSpace(s[:idx])
		rest = s[idx+1:]
	}

	// The port is whatever follows the last colon, but only if it is an
	// integer; otherwise the colon belongs to the host (e.g. IPv6-ish or
	// malformed input). A colon in the very first position never starts
	// a port.
	host := rest
	if idx := strings.LastIndex(rest, ":"); idx > 0 {
		if port, err := strconv.Atoi(rest[idx+1:]); err == nil {
			host = rest[:idx]
			t.Port = port
		}
	}

	t.Host = strings.TrimSpace(host)
	if t.Host == "" {
		return nil, ErrInvalid
	}

	return t, nil
}

// Destination returns the argument passed to the SSH client, either
// "user@host" or a bare "host".
func (t *Target) Destination() string {
	if t.User != "" {
		return t.User + "@" + t.Host
	}
	return t.Host
}

// String returns a human-readable description of the target.
func (t *Target) String() string {
	return t.Destination() + ":" + strconv.Itoa(t.Port)
}
