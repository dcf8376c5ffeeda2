// Package id hands out ledger record IDs.
package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Source generates ULIDs that sort in generation order, even within one
// millisecond.
type Source struct {
	mu      sync.Mutex
	entropy io.Reader
	now     func() time.Time
}

// NewSource seeds a monotonic entropy reader from crypto/rand.
func NewSource() *Source {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{
		entropy: ulid.Monotonic(rand.New(rand.NewSource(seed)), 0),
		now:     time.Now,
	}
}

// New returns the next ID as a 26 character string.
func (s *Source) New() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := ulid.New(ulid.Timestamp(s.now().UTC()), s.entropy)
	if err != nil {
		// Only happens if the clock goes backwards past the ULID epoch or
		// monotonic entropy overflows within one millisecond.
		panic(err)
	}
	return u.String()
}

var std = NewSource()

// New returns an ID from the package-wide source.
func New() string {
	return std.New()
}
