package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/passt/passt-go/internal/cli"
	"github.com/passt/passt-go/internal/config"
	"github.com/passt/passt-go/internal/crypto"
	"github.com/passt/passt-go/internal/model"
	"github.com/passt/passt-go/internal/service"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "1.0.0"

func main() {
	cfg := config.Load()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})))
	slog.Debug("passt starting", "version", version, "env", cfg.Env)

	if err := run(os.Stdout, os.Args[1:], nil); err != nil {
		slog.Error("password generation failed", "error", err)
		os.Exit(1)
	}
}

// run writes passwords, or usage text for invalid input, to out. Input errors
// are reported and yield nil so the process exits 0; only failures of the
// random source or of out are returned. A nil src selects crypto/rand.
func run(out io.Writer, args []string, src io.Reader) error {
	logger := slog.Default()

	opts, err := cli.Parse(args, logger)
	if err != nil {
		cli.Usage(out, version, err)
		return nil
	}
	if opts.Version {
		fmt.Fprintf(out, "passt v%s\n", version)
		return nil
	}

	svc := service.NewGeneratorService(
		crypto.NewGenerator(src),
		crypto.NewHasher(crypto.DefaultHashParams, src),
		logger,
	)

	err = svc.Each(opts.Request, func(p model.GenerateResponse) error {
		if opts.Request.Hash {
			_, err := fmt.Fprintf(out, "%s\t%s\n", p.Password, p.Hash)
			return err
		}
		_, err := fmt.Fprintln(out, p.Password)
		return err
	})
	if isInputError(err) {
		cli.Usage(out, version, err)
		return nil
	}
	return err
}

// isInputError reports engine errors caused by the arguments rather than by
// the random source. They are raised by the first draw, before any output.
func isInputError(err error) bool {
	return errors.Is(err, crypto.ErrInvalidLength) ||
		errors.Is(err, crypto.ErrEmptyAlphabet) ||
		errors.Is(err, crypto.ErrInvalidAlphabet)
}
