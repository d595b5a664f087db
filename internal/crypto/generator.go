package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/bits"
	"strings"
	"unicode/utf8"
)

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberChars    = "0123456789"
	symbolChars    = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	// maxPrealloc bounds the up-front buffer so huge lengths grow on demand.
	maxPrealloc = 4096
)

var (
	ErrInvalidLength   = errors.New("password length must not be negative")
	ErrEmptyAlphabet   = errors.New("alphabet must contain at least one character")
	ErrInvalidAlphabet = errors.New("alphabet is not valid UTF-8")
)

// Alphabet is the ordered set of characters a password is drawn from.
// Duplicates are kept and raise the frequency of the repeated character.
type Alphabet []rune

// DefaultAlphabet returns letters and digits, with the symbol set appended
// when includeSpecials is true.
func DefaultAlphabet(includeSpecials bool) Alphabet {
	chars := lowercaseChars + uppercaseChars + numberChars
	if includeSpecials {
		chars += symbolChars
	}
	return Alphabet(chars)
}

// CustomAlphabet returns the characters of s verbatim. Invalid UTF-8 is
// rejected rather than replaced with U+FFFD, which s never contained.
func CustomAlphabet(s string) (Alphabet, error) {
	if !utf8.ValidString(s) {
		return nil, ErrInvalidAlphabet
	}
	return Alphabet(s), nil
}

// Generator draws passwords from an alphabet using an injected random source.
type Generator struct {
	rand io.Reader
}

// NewGenerator creates a Generator reading from src. A nil src selects crypto/rand.
func NewGenerator(src io.Reader) *Generator {
	if src == nil {
		src = rand.Reader
	}
	return &Generator{rand: src}
}

// Generate creates a password of length characters from the default alphabet.
func (g *Generator) Generate(length int, includeSpecials bool) (string, error) {
	if length < 0 {
		return "", ErrInvalidLength
	}
	return g.draw(length, DefaultAlphabet(includeSpecials))
}

// GenerateWithCharset creates a password of length characters drawn from charset.
// A zero length yields the empty string even when charset is empty.
func (g *Generator) GenerateWithCharset(length int, charset string) (string, error) {
	if length < 0 {
		return "", ErrInvalidLength
	}
	if length == 0 {
		return "", nil
	}
	alphabet, err := CustomAlphabet(charset)
	if err != nil {
		return "", err
	}
	if len(alphabet) == 0 {
		return "", ErrEmptyAlphabet
	}
	return g.draw(length, alphabet)
}

func (g *Generator) draw(length int, alphabet Alphabet) (string, error) {
	var sb strings.Builder
	sb.Grow(min(length, maxPrealloc))

	for i := 0; i < length; i++ {
		idx, err := g.index(len(alphabet))
		if err != nil {
			return "", err
		}
		sb.WriteRune(alphabet[idx])
	}

	return sb.String(), nil
}

// index returns a uniform value in [0, n) by rejection sampling over the
// smallest bit mask covering n-1.
func (g *Generator) index(n int) (int, error) {
	width := bits.Len(uint(n - 1))
	mask := uint64(1)<<width - 1

	var buf [8]byte
	size := (width + 7) / 8
	for {
		if _, err := io.ReadFull(g.rand, buf[:size]); err != nil {
			return 0, fmt.Errorf("reading random source: %w", err)
		}
		var v uint64
		for _, b := range buf[:size] {
			v = v<<8 | uint64(b)
		}
		if v &= mask; v < uint64(n) {
			return int(v), nil
		}
	}
}
