package crypto

import (
	"errors"
	"strings"
	"testing"
)

// testHashParams keeps argon2 cheap so the suite stays fast.
func testHashParams() HashParams {
	return HashParams{
		Memory:      1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func TestHasherHash(t *testing.T) {
	hash, err := NewHasher(DefaultHashParams, nil).Hash("correct-horse-battery-staple")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}

	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		t.Fatalf("Hash() expected 6 parts, got %d: %q", len(parts), hash)
	}
	if parts[1] != "argon2id" {
		t.Errorf("Hash() algorithm = %q, want %q", parts[1], "argon2id")
	}
	if parts[2] != "v=19" {
		t.Errorf("Hash() version = %q, want %q", parts[2], "v=19")
	}
	if parts[3] != "m=65536,t=3,p=2" {
		t.Errorf("Hash() params = %q, want %q", parts[3], "m=65536,t=3,p=2")
	}
}

func TestVerifyPassword(t *testing.T) {
	h := NewHasher(testHashParams(), nil)
	hash, err := h.Hash("Zx8!kq2m")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "matching password", password: "Zx8!kq2m", want: true},
		{name: "wrong password", password: "Zx8!kq2n", want: false},
		{name: "empty password", password: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := VerifyPassword(tt.password, hash)
			if err != nil {
				t.Fatalf("VerifyPassword() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("VerifyPassword() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasherSeededSaltIsReproducible(t *testing.T) {
	a, err := NewHasher(testHashParams(), NewSeededSource([]byte("salt"))).Hash("pw")
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewHasher(testHashParams(), NewSeededSource([]byte("salt"))).Hash("pw")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("seeded hashes differ: %q vs %q", a, b)
	}

	c, err := NewHasher(testHashParams(), nil).Hash("pw")
	if err != nil {
		t.Fatal(err)
	}
	if a == c {
		t.Error("crypto/rand salt should differ from seeded salt")
	}
}

func TestHasherSourceFailure(t *testing.T) {
	_, err := NewHasher(testHashParams(), failingReader{}).Hash("pw")
	if !errors.Is(err, errSourceFailed) {
		t.Errorf("Hash() error = %v, want %v", err, errSourceFailed)
	}
}

func TestParsePHCRoundTrip(t *testing.T) {
	params := testHashParams()
	encoded, err := NewHasher(params, NewSeededSource([]byte("phc"))).Hash("pw")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}

	h, err := parsePHC(encoded)
	if err != nil {
		t.Fatalf("parsePHC() unexpected error: %v", err)
	}
	if h.params != params {
		t.Errorf("parsePHC() params = %+v, want %+v", h.params, params)
	}
	if got := h.String(); got != encoded {
		t.Errorf("String() = %q, want %q", got, encoded)
	}
}

func TestVerifyPasswordInvalidHash(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		wantErr error
	}{
		{name: "not phc", encoded: "invalid-hash-format", wantErr: ErrInvalidHashFormat},
		{name: "wrong algorithm", encoded: "$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA", wantErr: ErrInvalidHashFormat},
		{name: "wrong version", encoded: "$argon2id$v=16$m=1024,t=1,p=1$c2FsdA$aGFzaA", wantErr: ErrIncompatibleVersion},
		{name: "bad params", encoded: "$argon2id$v=19$x$c2FsdA$aGFzaA", wantErr: ErrInvalidHashFormat},
		{name: "bad salt", encoded: "$argon2id$v=19$m=1024,t=1,p=1$!!$aGFzaA", wantErr: ErrInvalidHashFormat},
		{name: "version not a number", encoded: "$argon2id$v=x$m=1024,t=1,p=1$c2FsdA$aGFzaA", wantErr: ErrInvalidHashFormat},
		{name: "extra field", encoded: "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA$", wantErr: ErrInvalidHashFormat},
		{name: "empty key", encoded: "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$", wantErr: ErrInvalidHashFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyPassword("password", tt.encoded)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("VerifyPassword() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
