package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/fullstack/libreria-system/internal/api/metrics"
	"github.com/fullstack/libreria-system/internal/core/domain"
	"github.com/fullstack/libreria-system/internal/core/ports"
)

const (
	bookListKey  = "books:all"
	bookCacheTTL = 5 * time.Minute
)

// CachingBookRepository decorates a book repository with a read-through
// Redis cache for the full catalog listing. Any write invalidates the
// cached list. A nil client degrades to a pure passthrough so the service
// keeps working when Redis is unavailable.
type CachingBookRepository struct {
	inner  ports.CrudRepository[domain.Book]
	client *redis.Client
	logger zerolog.Logger
}

func NewCachingBookRepository(inner ports.CrudRepository[domain.Book], client *redis.Client, logger zerolog.Logger) *CachingBookRepository {
	return &CachingBookRepository{inner: inner, client: client, logger: logger}
}

func (r *CachingBookRepository) FindAll(ctx context.Context) ([]domain.Book, error) {
	if r.client != nil {
		raw, err := r.client.Get(ctx, bookListKey).Bytes()
		if err == nil {
			var books []domain.Book
			if jsonErr := json.Unmarshal(raw, &books); jsonErr == nil {
				metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
				return books, nil
			}
			// Corrupt entry: drop it and fall through to the store.
			r.client.Del(ctx, bookListKey)
		} else if err != redis.Nil {
			r.logger.Warn().Err(err).Msg("book cache read failed, querying store")
		}
		metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
	}

	books, err := r.inner.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if r.client != nil {
		if raw, err := json.Marshal(books); err == nil {
			if err := r.client.Set(ctx, bookListKey, raw, bookCacheTTL).Err(); err != nil {
				r.logger.Warn().Err(err).Msg("failed to populate book cache")
			}
		}
	}
	return books, nil
}

func (r *CachingBookRepository) FindByID(ctx context.Context, id string) (domain.Book, error) {
	return r.inner.FindByID(ctx, id)
}

func (r *CachingBookRepository) Insert(ctx context.Context, book domain.Book) (domain.Book, error) {
	created, err := r.inner.Insert(ctx, book)
	if err != nil {
		return domain.Book{}, err
	}
	r.invalidate(ctx)
	return created, nil
}

func (r *CachingBookRepository) Update(ctx context.Context, id string, book domain.Book) (domain.Book, error) {
	updated, err := r.inner.Update(ctx, id, book)
	if err != nil {
		return domain.Book{}, err
	}
	r.invalidate(ctx)
	return updated, nil
}

func (r *CachingBookRepository) Delete(ctx context.Context, id string) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachingBookRepository) invalidate(ctx context.Context) {
	if r.client == nil {
		return
	}
	if err := r.client.Del(ctx, bookListKey).Err(); err != nil {
		r.logger.Warn().Err(err).Msg("failed to invalidate book cache")
	}
}
