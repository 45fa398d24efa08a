package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ID is a ULID string, optionally carrying a type prefix such as "LIC-".
type ID string

// Zero represents the zero value ID, don't use this unless its a placeholder.
const Zero ID = ""

// ErrInvalid reports a malformed ID string.
var ErrInvalid = errors.New("idx: invalid id")

var (
	globalOnce sync.Once
	global     *generator
)

// generator is a tool to safely generate ULIDs concurrently using a monotonic
// source.
type generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func (g *generator) newAt(t time.Time) ulid.ULID {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(t), g.entropy)
}

func initGlobal() {
	global = &generator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// New returns a new lexicographically sortable ULID-based ID using the
// current time in UTC and a monotonic entropy source.
func New() ID {
	return NewAt(time.Now().UTC())
}

// NewAt generates an ID at the provided time (UTC), useful for tests.
func NewAt(t time.Time) ID {
	globalOnce.Do(initGlobal)
	return ID(global.newAt(t).String())
}

// NewPrefixed returns a new ID with prefix prepended, e.g. "LIC-01HQ...".
func NewPrefixed(prefix string) ID {
	return ID(prefix) + New()
}

// Parse parses a ULID string into an ID and validates its form.
func Parse(s string) (ID, error) {
	return ParsePrefixed("", s)
}

// ParsePrefixed validates that s is prefix followed by a ULID.
func ParsePrefixed(prefix, s string) (ID, error) {
	s = strings.TrimSpace(s)

	rest, ok := strings.CutPrefix(s, prefix)
	if !ok || rest == "" {
		return Zero, ErrInvalid
	}
	if _, err := ulid.ParseStrict(rest); err != nil {
		return Zero, ErrInvalid
	}

	return ID(s), nil
}

// MustParse parses or panics. Useful for hard-coded IDs in tests.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool { return id == Zero }

// String returns the canonical string form.
func (id ID) String() string { return string(id) }

// Time extracts the embedded UTC timestamp from the ID, ignoring any prefix.
// If the ID is invalid or zero, it returns the zero time.
func (id ID) Time() time.Time {
	s := id.String()
	if i := strings.LastIndexByte(s, '-'); i >= 0 {
		s = s[i+1:]
	}

	u, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}
	}

	// ULID time component is in ms since epoch.
	return ulid.Time(u.Time()).UTC()
}
