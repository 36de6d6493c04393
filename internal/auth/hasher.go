package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrMalformedDigest indicates a stored digest that no known scheme can parse
	ErrMalformedDigest = errors.New("malformed password digest")
	// ErrUnsupportedAlgorithm indicates an unknown hashing algorithm was requested
	ErrUnsupportedAlgorithm = errors.New("unsupported hashing algorithm")
)

const (
	// AlgorithmArgon2id selects Argon2id for newly produced digests
	AlgorithmArgon2id = "argon2id"
	// AlgorithmBcrypt selects bcrypt for newly produced digests
	AlgorithmBcrypt = "bcrypt"

	argon2Prefix  = "argon2id"
	argon2Version = "v=19"
)

// Hasher is the one-way credential transform. Verify(p, Hash(p)) is true for
// every plaintext; the digest embeds algorithm id and parameters so stored
// digests survive future parameter upgrades.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) (bool, error)
}

// Argon2Params defines tunable parameters for Argon2id digests
type Argon2Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2Params returns the production Argon2id parameters
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 4,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// DigestHasher produces digests with one configured algorithm and verifies
// digests of every scheme the system has ever stored: Argon2id, bcrypt, and
// the unsalted SHA-256 digests carried over from the old faculty portal.
type DigestHasher struct {
	algorithm  string
	argon2     Argon2Params
	bcryptCost int
}

// NewHasher creates a hasher producing digests with the given algorithm.
// Verification is independent of the choice. An empty algorithm defaults to
// Argon2id.
func NewHasher(algorithm string, bcryptCost int) (*DigestHasher, error) {
	if algorithm == "" {
		algorithm = AlgorithmArgon2id
	}
	if algorithm != AlgorithmArgon2id && algorithm != AlgorithmBcrypt {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &DigestHasher{
		algorithm:  algorithm,
		argon2:     DefaultArgon2Params(),
		bcryptCost: bcryptCost,
	}, nil
}

// Hash produces a digest for the plaintext. It fails only on system-level
// errors such as exhausted entropy and never returns an empty digest with a
// nil error.
func (h *DigestHasher) Hash(plaintext string) (string, error) {
	switch h.algorithm {
	case AlgorithmBcrypt:
		digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.bcryptCost)
		if err != nil {
			return "", fmt.Errorf("bcrypt: %w", err)
		}
		return string(digest), nil
	default:
		return h.hashArgon2(plaintext)
	}
}

func (h *DigestHasher) hashArgon2(plaintext string) (string, error) {
	p := h.argon2
	salt := make([]byte, p.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("argon2: generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(plaintext), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)

	// Format: argon2id$v=19$m=<memory>,t=<iterations>,p=<parallelism>$<salt>$<key>
	encoded := strings.Join([]string{
		argon2Prefix,
		argon2Version,
		fmt.Sprintf("m=%d,t=%d,p=%d", p.Memory, p.Iterations, p.Parallelism),
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	}, "$")
	return encoded, nil
}

// Verify reports whether plaintext matches the stored digest. The digest's
// own prefix selects the scheme, so accounts hashed under an older algorithm
// keep verifying without a migration.
func (h *DigestHasher) Verify(plaintext, digest string) (bool, error) {
	if plaintext == "" || digest == "" {
		return false, nil
	}

	switch {
	case strings.HasPrefix(digest, argon2Prefix+"$"):
		return verifyArgon2(plaintext, digest)
	case strings.HasPrefix(digest, "$2a$"), strings.HasPrefix(digest, "$2b$"), strings.HasPrefix(digest, "$2y$"):
		err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
		if err == nil {
			return true, nil
		}
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("bcrypt: %w", err)
	default:
		return verifyLegacySHA256(plaintext, digest)
	}
}

func verifyArgon2(plaintext, digest string) (bool, error) {
	parts := strings.Split(digest, "$")
	if len(parts) != 5 {
		return false, ErrMalformedDigest
	}
	if parts[1] != argon2Version {
		return false, fmt.Errorf("%w: unsupported version %q", ErrMalformedDigest, parts[1])
	}

	memory, iterations, parallelism, err := parseArgon2Params(parts[2])
	if err != nil {
		return false, err
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return false, fmt.Errorf("%w: salt: %v", ErrMalformedDigest, err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("%w: key: %v", ErrMalformedDigest, err)
	}

	computed := argon2.IDKey([]byte(plaintext), salt, iterations, memory, parallelism, uint32(len(expected)))
	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}

func parseArgon2Params(segment string) (memory, iterations uint32, parallelism uint8, err error) {
	entries := strings.Split(segment, ",")
	if len(entries) != 3 {
		return 0, 0, 0, ErrMalformedDigest
	}
	for _, entry := range entries {
		key, value, found := strings.Cut(entry, "=")
		if !found {
			return 0, 0, 0, ErrMalformedDigest
		}
		switch key {
		case "m":
			v, parseErr := strconv.ParseUint(value, 10, 32)
			if parseErr != nil {
				return 0, 0, 0, fmt.Errorf("%w: m: %v", ErrMalformedDigest, parseErr)
			}
			memory = uint32(v)
		case "t":
			v, parseErr := strconv.ParseUint(value, 10, 32)
			if parseErr != nil {
				return 0, 0, 0, fmt.Errorf("%w: t: %v", ErrMalformedDigest, parseErr)
			}
			iterations = uint32(v)
		case "p":
			v, parseErr := strconv.ParseUint(value, 10, 8)
			if parseErr != nil {
				return 0, 0, 0, fmt.Errorf("%w: p: %v", ErrMalformedDigest, parseErr)
			}
			parallelism = uint8(v)
		default:
			return 0, 0, 0, ErrMalformedDigest
		}
	}
	return memory, iterations, parallelism, nil
}

// verifyLegacySHA256 handles digests from the original faculty portal, which
// stored Base64(SHA-256(password)) with no salt and no metadata. Verify-only;
// the hasher never produces this format.
func verifyLegacySHA256(plaintext, digest string) (bool, error) {
	decoded, err := base64.StdEncoding.DecodeString(digest)
	if err != nil || len(decoded) != sha256.Size {
		return false, ErrMalformedDigest
	}
	computed := sha256.Sum256([]byte(plaintext))
	return subtle.ConstantTimeCompare(computed[:], decoded) == 1, nil
}
