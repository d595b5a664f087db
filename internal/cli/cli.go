// Package cli turns process arguments into a generation request.
//
// Every flag value is recorded as a Value so that an absent flag can be told
// apart from one given with an empty or malformed value.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"

	"github.com/passt/passt-go/internal/config"
	"github.com/passt/passt-go/internal/model"
)

var (
	ErrNoArguments   = errors.New("no arguments given")
	ErrMissingValue  = errors.New("parameter requires value")
	ErrMissingLength = errors.New("parameter -l is required")
	ErrInvalidLength = errors.New("invalid length")
)

// MissingValueError reports a value flag given as the last argument.
type MissingValueError struct {
	Flag string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("Parameter %s requires value.", e.Flag)
}

func (e *MissingValueError) Is(target error) bool {
	return target == ErrMissingValue
}

// Value is an optional flag value.
type Value struct {
	raw     string
	present bool
}

func (v *Value) String() string { return v.raw }

func (v *Value) Set(s string) error {
	v.raw = s
	v.present = true
	return nil
}

// Get returns the raw value and whether the flag was given at all.
func (v *Value) Get() (string, bool) {
	return v.raw, v.present
}

// Options is the parsed command line.
type Options struct {
	Request model.GenerateRequest
	Version bool
}

var valueFlags = map[string]bool{
	"-l":     true,
	"-n":     true,
	"-chars": true,
}

// Parse reads args (without the program name). Every returned error is meant
// to be shown to the user together with the usage text.
func Parse(args []string, logger *slog.Logger) (Options, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(args) == 0 {
		return Options{}, ErrNoArguments
	}
	if last := args[len(args)-1]; valueFlags[last] {
		return Options{}, &MissingValueError{Flag: last}
	}

	var opts Options
	var length, count, charset Value

	fs := flag.NewFlagSet("passt", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Var(&length, "l", "length of the generated password")
	fs.Var(&count, "n", "number of passwords to create")
	fs.Var(&charset, "chars", "possible characters as a string")
	fs.BoolVar(&opts.Request.Specials, "s", false, "use special characters")
	fs.BoolVar(&opts.Request.Hash, "hash", false, "print an argon2id hash next to each password")
	fs.BoolVar(&opts.Version, "v", false, "print the version")

	// Stray positional arguments are skipped so flags after them still count.
	// A "--" terminator is consumed by Parse itself, so the token after it is kept.
	for rest := args; ; {
		if err := fs.Parse(rest); err != nil {
			return Options{}, err
		}
		if fs.NArg() == 0 {
			break
		}
		if consumed := len(rest) - fs.NArg(); consumed > 0 && rest[consumed-1] == "--" {
			rest = fs.Args()
			continue
		}
		rest = fs.Args()[1:]
	}

	// -s is a switch wherever it appears, even where a value flag took it as
	// its value.
	if slices.Contains(args, "-s") {
		opts.Request.Specials = true
	}

	if opts.Version {
		return opts, nil
	}

	raw, ok := length.Get()
	if !ok {
		return Options{}, ErrMissingLength
	}
	n, err := parseInt32(raw)
	if err != nil {
		return Options{}, fmt.Errorf("%w: %q is not a 32-bit number", ErrInvalidLength, raw)
	}
	opts.Request.Length = n

	opts.Request.Count = config.DefaultCount
	if raw, ok := count.Get(); ok {
		if n, err := parseInt32(raw); err == nil {
			opts.Request.Count = n
		} else {
			logger.Debug("count is not a 32-bit number, using default", "value", raw, "default", config.DefaultCount)
		}
	}

	opts.Request.Charset, _ = charset.Get()

	return opts, nil
}

// parseInt32 bounds numeric flags to the range the tool has always accepted.
func parseInt32(s string) (int, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	return int(n), err
}
