// Package id provides ID generation for the calculator service.
//
// Request IDs are prefixed ULIDs ("req_01J..."), sortable by creation time
// and readable in logs. The per-process instance ID reported by the health
// endpoint is a random UUID.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// RequestID identifies an API request
type RequestID string

// InstanceID identifies a running server process
type InstanceID string

// RequestPrefix marks request IDs
const RequestPrefix = "req"

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex // Protects entropy reader
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator with monotonic, cryptographically
// seeded entropy
func NewGenerator() *Generator {
	return NewGeneratorWithEntropy(ulid.Monotonic(rand.Reader, 0))
}

// NewGeneratorWithEntropy creates a generator with custom entropy source
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateString creates a new ULID as a string
func (g *Generator) GenerateString() string {
	return g.Generate().String()
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.GenerateString())
}

// NewRequestID generates a new request ID
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

// ParseRequestID accepts a client-supplied request ID when it has the
// request prefix and a valid ULID body.
func ParseRequestID(s string) (RequestID, bool) {
	body, ok := strings.CutPrefix(s, RequestPrefix+"_")
	if !ok || !IsValid(body) {
		return "", false
	}
	return RequestID(s), true
}

// NewInstanceID generates a random process instance ID
func NewInstanceID() InstanceID {
	return InstanceID(uuid.NewString())
}

func (id RequestID) String() string  { return string(id) }
func (id InstanceID) String() string { return string(id) }

// IsValid checks if an ID string is a valid ULID
func IsValid(id string) bool {
	_, err := ulid.ParseStrict(id)
	return err == nil
}

// Timestamp extracts the creation time from a request ID or bare ULID
func Timestamp(id string) (time.Time, error) {
	if body, ok := strings.CutPrefix(id, RequestPrefix+"_"); ok {
		id = body
	}
	parsed, err := ulid.ParseStrict(id)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
