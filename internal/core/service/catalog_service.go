package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/fullstack/libreria-system/internal/core/ports"
)

// CatalogService is the single generic CRUD component behind every plain
// record family. The store assigns identifiers on create; all failure
// semantics come from the repository.
type CatalogService[E any] struct {
	repo   ports.CrudRepository[E]
	kind   string // entity name used in logs, e.g. "book"
	logger zerolog.Logger
}

func NewCatalogService[E any](repo ports.CrudRepository[E], kind string, logger zerolog.Logger) *CatalogService[E] {
	return &CatalogService[E]{repo: repo, kind: kind, logger: logger}
}

func (s *CatalogService[E]) List(ctx context.Context) ([]E, error) {
	return s.repo.FindAll(ctx)
}

func (s *CatalogService[E]) Get(ctx context.Context, id string) (E, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CatalogService[E]) Create(ctx context.Context, record E) (E, error) {
	created, err := s.repo.Insert(ctx, record)
	if err != nil {
		var zero E
		s.logger.Error().Err(err).Str("kind", s.kind).Msg("failed to create record")
		return zero, err
	}
	s.logger.Info().Str("kind", s.kind).Msg("record created")
	return created, nil
}

func (s *CatalogService[E]) Update(ctx context.Context, id string, record E) (E, error) {
	updated, err := s.repo.Update(ctx, id, record)
	if err != nil {
		var zero E
		return zero, err
	}
	s.logger.Info().Str("kind", s.kind).Str("id", id).Msg("record updated")
	return updated, nil
}

func (s *CatalogService[E]) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("kind", s.kind).Str("id", id).Msg("record deleted")
	return nil
}
