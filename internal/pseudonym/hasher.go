// Package pseudonym derives stable pseudonymous identifiers (PIDs) from
// applicant emails. A PID is the salted SHA-256 digest of the normalized
// email, truncated to a fixed length. Without the salt the mapping cannot be
// reversed or rebuilt, so scored exports can be shared without exposing who
// applied.
package pseudonym

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// PIDLength is the length of the hex-encoded pseudonym.
const PIDLength = 16

var (
	// ErrInvalidIdentifier marks an empty or malformed identifier.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrEmptySalt is returned when a hasher is constructed without a salt.
	ErrEmptySalt = errors.New("salt must not be empty")

	// ErrPIDCollision marks two distinct identifiers hashing to the same PID.
	// Scoring cannot proceed safely: rotate the salt and rerun.
	ErrPIDCollision = errors.New("pid collision detected")
)

// Loose on purpose: the goal is catching blanks and garbage values in form
// exports, not full RFC 5322 validation.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Normalize trims surrounding whitespace and lowercases the identifier so
// that "A@B.com " and "a@b.com" map to the same PID.
func Normalize(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

// ValidateEmail reports whether the normalized identifier is a usable email.
func ValidateEmail(normalized string) error {
	if normalized == "" {
		return fmt.Errorf("%w: empty", ErrInvalidIdentifier)
	}
	if !emailPattern.MatchString(normalized) {
		return fmt.Errorf("%w: not a well-formed email", ErrInvalidIdentifier)
	}
	return nil
}

// Hasher maps identifiers to PIDs using a process-wide secret salt.
type Hasher struct {
	salt string
}

// New creates a Hasher. The salt is required: pseudonymization without it
// would be a plain dictionary-attackable hash.
func New(salt string) (*Hasher, error) {
	if strings.TrimSpace(salt) == "" {
		return nil, ErrEmptySalt
	}
	return &Hasher{salt: salt}, nil
}

// PID normalizes, validates and hashes the identifier.
func (h *Hasher) PID(identifier string) (string, error) {
	normalized := Normalize(identifier)
	if err := ValidateEmail(normalized); err != nil {
		return "", err
	}
	return h.pid(normalized), nil
}

func (h *Hasher) pid(normalized string) string {
	sum := sha256.Sum256([]byte(h.salt + normalized))
	return hex.EncodeToString(sum[:])[:PIDLength]
}

// Registry tracks PID assignments within a batch and detects collisions
// between distinct normalized identifiers. It lives only for the duration of
// one run; the identifier side is never persisted or logged.
type Registry struct {
	assigned map[string]string
}

// NewRegistry creates an empty collision registry.
func NewRegistry() *Registry {
	return &Registry{assigned: make(map[string]string)}
}

// Register records the PID for a normalized identifier. A repeated identifier
// is fine (same input, same PID). Two different identifiers claiming one PID
// is a fatal integrity error; the error carries the PID only.
func (r *Registry) Register(pid, normalized string) error {
	if existing, ok := r.assigned[pid]; ok && existing != normalized {
		return fmt.Errorf("%w: pid %s", ErrPIDCollision, pid)
	}
	r.assigned[pid] = normalized
	return nil
}

// Len returns the number of distinct PIDs registered.
func (r *Registry) Len() int {
	return len(r.assigned)
}
