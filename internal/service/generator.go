package service

import (
	"log/slog"

	"github.com/passt/passt-go/internal/crypto"
	"github.com/passt/passt-go/internal/model"
)

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	generator *crypto.Generator
	hasher    *crypto.Hasher
	logger    *slog.Logger
}

// NewGeneratorService creates a new GeneratorService.
func NewGeneratorService(generator *crypto.Generator, hasher *crypto.Hasher, logger *slog.Logger) *GeneratorService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GeneratorService{
		generator: generator,
		hasher:    hasher,
		logger:    logger,
	}
}

// Generate produces req.Count passwords in order. The first failure aborts the
// batch and nothing is returned.
func (s *GeneratorService) Generate(req model.GenerateRequest) ([]model.GenerateResponse, error) {
	var resp []model.GenerateResponse
	err := s.Each(req, func(entry model.GenerateResponse) error {
		resp = append(resp, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Each produces req.Count passwords and hands them to emit one at a time, so
// memory does not grow with the count. It stops at the first error from
// generation or from emit. Entries already emitted are complete passwords.
func (s *GeneratorService) Each(req model.GenerateRequest, emit func(model.GenerateResponse) error) error {
	s.logger.Debug("generating passwords",
		"count", req.Count,
		"length", req.Length,
		"alphabet", alphabetKind(req),
		"hash", req.Hash,
	)

	for i := 0; i < req.Count; i++ {
		password, err := s.generateOne(req)
		if err != nil {
			return err
		}

		entry := model.GenerateResponse{Password: password}
		if req.Hash {
			entry.Hash, err = s.hasher.Hash(password)
			if err != nil {
				return err
			}
		}
		if err := emit(entry); err != nil {
			return err
		}
	}

	return nil
}

func (s *GeneratorService) generateOne(req model.GenerateRequest) (string, error) {
	if req.Charset != "" {
		return s.generator.GenerateWithCharset(req.Length, req.Charset)
	}
	return s.generator.Generate(req.Length, req.Specials)
}

func alphabetKind(req model.GenerateRequest) string {
	switch {
	case req.Charset != "":
		return "custom"
	case req.Specials:
		return "default+specials"
	default:
		return "default"
	}
}
