package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"pgregory.net/rapid"
)

// fastHasher uses reduced Argon2 parameters so property tests stay quick.
// Production parameters only change cost, not the digest format.
func fastHasher() *DigestHasher {
	return &DigestHasher{
		algorithm: AlgorithmArgon2id,
		argon2: Argon2Params{
			Memory:      8 * 1024,
			Iterations:  1,
			Parallelism: 1,
			SaltLength:  16,
			KeyLength:   32,
		},
	}
}

func TestNewHasher_UnsupportedAlgorithm(t *testing.T) {
	_, err := NewHasher("md5", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

func TestNewHasher_DefaultsToArgon2(t *testing.T) {
	h, err := NewHasher("", 0)
	require.NoError(t, err)

	digest, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(digest, "argon2id$v=19$"))
}

func TestDigestHasher_Argon2RoundTrip(t *testing.T) {
	h := fastHasher()

	digest, err := h.Hash("longpass1")
	require.NoError(t, err)
	require.NotEmpty(t, digest)

	ok, err := h.Verify("longpass1", digest)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("longpass2", digest)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDigestHasher_Argon2DigestsAreSalted(t *testing.T) {
	h := fastHasher()

	first, err := h.Hash("longpass1")
	require.NoError(t, err)
	second, err := h.Hash("longpass1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDigestHasher_BcryptRoundTrip(t *testing.T) {
	h, err := NewHasher(AlgorithmBcrypt, bcrypt.MinCost)
	require.NoError(t, err)

	digest, err := h.Hash("longpass1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(digest, "$2"))

	ok, err := h.Verify("longpass1", digest)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrongpass", digest)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDigestHasher_VerifiesLegacyDigest(t *testing.T) {
	// The old faculty portal stored Base64(SHA-256(password)) with no salt.
	sum := sha256.Sum256([]byte("longpass1"))
	legacy := base64.StdEncoding.EncodeToString(sum[:])

	h := fastHasher()

	ok, err := h.Verify("longpass1", legacy)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrongpass", legacy)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDigestHasher_NeverProducesLegacyDigest(t *testing.T) {
	h := fastHasher()

	digest, err := h.Hash("longpass1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(digest, "argon2id$"))
}

func TestDigestHasher_MalformedDigests(t *testing.T) {
	h := fastHasher()

	tests := []struct {
		name   string
		digest string
	}{
		{"truncated argon2", "argon2id$v=19$m=8192,t=1,p=1"},
		{"unsupported argon2 version", "argon2id$v=18$m=8192,t=1,p=1$c2FsdA$a2V5"},
		{"bad argon2 params", "argon2id$v=19$m=abc,t=1,p=1$c2FsdA$a2V5"},
		{"not base64 at all", "!!definitely-not-a-digest!!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := h.Verify("longpass1", tt.digest)
			assert.False(t, ok)
			assert.ErrorIs(t, err, ErrMalformedDigest)
		})
	}
}

func TestDigestHasher_EmptyInputs(t *testing.T) {
	h := fastHasher()

	digest, err := h.Hash("longpass1")
	require.NoError(t, err)

	ok, err := h.Verify("", digest)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = h.Verify("longpass1", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDigestHasher_RoundTripProperty(t *testing.T) {
	h := fastHasher()

	rapid.Check(t, func(t *rapid.T) {
		password := rapid.StringMatching(`[ -~]{8,64}`).Draw(t, "password")

		digest, err := h.Hash(password)
		if err != nil {
			t.Fatalf("hash: %v", err)
		}

		ok, err := h.Verify(password, digest)
		if err != nil {
			t.Fatalf("verify: %v", err)
		}
		if !ok {
			t.Fatalf("digest did not verify its own password")
		}

		other := rapid.StringMatching(`[ -~]{8,64}`).Draw(t, "other")
		if other == password {
			return
		}
		ok, err = h.Verify(other, digest)
		if err != nil {
			t.Fatalf("verify other: %v", err)
		}
		if ok {
			t.Fatalf("digest verified a different password")
		}
	})
}
