package crypto

import (
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20"
)

// seededSource is a ChaCha20 keystream exposed as an io.Reader.
type seededSource struct {
	cipher *chacha20.Cipher
}

// NewSeededSource returns a deterministic random source derived from seed.
// Equal seeds yield equal byte streams, which makes generated passwords
// reproducible in tests. It must not be used for real credentials.
func NewSeededSource(seed []byte) io.Reader {
	key := blake2b.Sum256(seed)
	nonce := make([]byte, chacha20.NonceSize)

	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		// key and nonce sizes are fixed above
		panic(err)
	}
	return &seededSource{cipher: c}
}

func (s *seededSource) Read(p []byte) (int, error) {
	clear(p)
	s.cipher.XORKeyStream(p, p)
	return len(p), nil
}
