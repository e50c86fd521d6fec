package target

import (
	"fmt"
	"strings"
)

// Backend selects which crash capture implementation gets linked.
type Backend string

const (
	// Crashpad runs an out of process handler and uploads immediately.
	Crashpad Backend = "crashpad"

	// Breakpad captures in process and uploads on the next launch.
	Breakpad Backend = "breakpad"
)

// DefaultBackend is used on every platform unless overridden.
const DefaultBackend = Crashpad

var Backends = []Backend{Crashpad, Breakpad}

func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "crashpad":
		return Crashpad, nil
	case "breakpad":
		return Breakpad, nil
	default:
		return "", fmt.Errorf("unknown backend: %s", s)
	}
}

// Dir is the name used for the backend's artifact directory.
func (b Backend) Dir() string {
	switch b {
	case Breakpad:
		return "Breakpad"
	default:
		return "Crashpad"
	}
}

func (b Backend) String() string {
	return string(b)
}
