package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fullstack/libreria-system/internal/core/domain"
)

type stubBookRepo struct {
	books  map[string]domain.Book
	nextID int
}

func newStubBookRepo() *stubBookRepo {
	return &stubBookRepo{books: make(map[string]domain.Book)}
}

func (r *stubBookRepo) FindAll(_ context.Context) ([]domain.Book, error) {
	out := make([]domain.Book, 0, len(r.books))
	for _, b := range r.books {
		out = append(out, b)
	}
	return out, nil
}

func (r *stubBookRepo) FindByID(_ context.Context, id string) (domain.Book, error) {
	if b, ok := r.books[id]; ok {
		return b, nil
	}
	return domain.Book{}, &domain.NotFoundError{Resource: "book", Key: id}
}

func (r *stubBookRepo) Insert(_ context.Context, book domain.Book) (domain.Book, error) {
	r.nextID++
	book.ID = fmt.Sprintf("book-%d", r.nextID)
	r.books[book.ID] = book
	return book, nil
}

func (r *stubBookRepo) Update(_ context.Context, id string, book domain.Book) (domain.Book, error) {
	if _, ok := r.books[id]; !ok {
		return domain.Book{}, &domain.NotFoundError{Resource: "book", Key: id}
	}
	book.ID = id
	r.books[id] = book
	return book, nil
}

func (r *stubBookRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.books[id]; !ok {
		return &domain.NotFoundError{Resource: "book", Key: id}
	}
	delete(r.books, id)
	return nil
}

func sampleBook() domain.Book {
	return domain.Book{Title: "Cien años de soledad", Author: "Gabriel García Márquez", Genre: "Novela", Publication: 1967}
}

func TestCatalogService_CreateAndGet(t *testing.T) {
	repo := newStubBookRepo()
	svc := NewCatalogService[domain.Book](repo, "book", zerolog.Nop())

	created, err := svc.Create(context.Background(), sampleBook())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected store-assigned id")
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != created {
		t.Fatalf("round-trip mismatch: got %+v want %+v", got, created)
	}
}

func TestCatalogService_Get_NotFound(t *testing.T) {
	svc := NewCatalogService[domain.Book](newStubBookRepo(), "book", zerolog.Nop())

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCatalogService_Update(t *testing.T) {
	repo := newStubBookRepo()
	svc := NewCatalogService[domain.Book](repo, "book", zerolog.Nop())

	created, err := svc.Create(context.Background(), sampleBook())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	edit := created
	edit.Genre = "Realismo mágico"
	updated, err := svc.Update(context.Background(), created.ID, edit)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Genre != "Realismo mágico" || updated.ID != created.ID {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	if _, err := svc.Update(context.Background(), "missing", edit); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCatalogService_Delete(t *testing.T) {
	repo := newStubBookRepo()
	svc := NewCatalogService[domain.Book](repo, "book", zerolog.Nop())

	created, err := svc.Create(context.Background(), sampleBook())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestCatalogService_List(t *testing.T) {
	repo := newStubBookRepo()
	svc := NewCatalogService[domain.Book](repo, "book", zerolog.Nop())

	books, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(books) != 0 {
		t.Fatalf("expected empty catalog, got %+v", books)
	}

	if _, err := svc.Create(context.Background(), sampleBook()); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	books, err = svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(books) != 1 {
		t.Fatalf("expected one book, got %d", len(books))
	}
}
