package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	ErrInvalidHashFormat   = errors.New("invalid encoded hash format")
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
)

// HashParams are the Argon2id costs. Memory is in KiB.
type HashParams struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultHashParams is used for -hash output.
var DefaultHashParams = HashParams{
	Memory:      64 * 1024,
	Iterations:  3,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

// phcHash is one Argon2id hash in PHC string form:
// $argon2id$v=19$m=65536,t=3,p=2$<base64-salt>$<base64-key>
type phcHash struct {
	params HashParams
	salt   []byte
	key    []byte
}

var b64 = base64.RawStdEncoding

func (h phcHash) String() string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.params.Memory, h.params.Iterations, h.params.Parallelism,
		b64.EncodeToString(h.salt), b64.EncodeToString(h.key))
}

func parsePHC(s string) (phcHash, error) {
	rest, ok := strings.CutPrefix(s, "$argon2id$")
	if !ok {
		return phcHash{}, ErrInvalidHashFormat
	}
	fields := strings.Split(rest, "$")
	if len(fields) != 4 {
		return phcHash{}, ErrInvalidHashFormat
	}

	v, ok := strings.CutPrefix(fields[0], "v=")
	if !ok {
		return phcHash{}, ErrInvalidHashFormat
	}
	version, err := strconv.Atoi(v)
	if err != nil {
		return phcHash{}, ErrInvalidHashFormat
	}
	if version != argon2.Version {
		return phcHash{}, ErrIncompatibleVersion
	}

	var h phcHash
	p := &h.params
	if _, err := fmt.Sscanf(fields[1], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Parallelism); err != nil {
		return phcHash{}, ErrInvalidHashFormat
	}
	if h.salt, err = b64.DecodeString(fields[2]); err != nil {
		return phcHash{}, ErrInvalidHashFormat
	}
	if h.key, err = b64.DecodeString(fields[3]); err != nil || len(h.key) == 0 {
		return phcHash{}, ErrInvalidHashFormat
	}
	p.SaltLength = uint32(len(h.salt))
	p.KeyLength = uint32(len(h.key))

	return h, nil
}

// Hasher encodes generated passwords as Argon2id PHC strings.
type Hasher struct {
	params HashParams
	rand   io.Reader
}

// NewHasher creates a Hasher drawing salts from src. A nil src selects crypto/rand.
func NewHasher(params HashParams, src io.Reader) *Hasher {
	if src == nil {
		src = rand.Reader
	}
	return &Hasher{params: params, rand: src}
}

// Hash returns the PHC encoding of password under a fresh salt.
func (h *Hasher) Hash(password string) (string, error) {
	out := phcHash{params: h.params, salt: make([]byte, h.params.SaltLength)}
	if _, err := io.ReadFull(h.rand, out.salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	out.key = out.params.derive(password, out.salt)
	return out.String(), nil
}

// VerifyPassword reports whether password matches encoded, in constant time.
func VerifyPassword(password, encoded string) (bool, error) {
	h, err := parsePHC(encoded)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(h.key, h.params.derive(password, h.salt)) == 1, nil
}

func (p HashParams) derive(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)
}
