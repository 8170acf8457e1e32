package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/fullstack/libreria-system/internal/core/domain"
)

type stubBookService struct {
	listFn   func(ctx context.Context) ([]domain.Book, error)
	getFn    func(ctx context.Context, id string) (domain.Book, error)
	createFn func(ctx context.Context, book domain.Book) (domain.Book, error)
	updateFn func(ctx context.Context, id string, book domain.Book) (domain.Book, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubBookService) List(ctx context.Context) ([]domain.Book, error) {
	return s.listFn(ctx)
}

func (s *stubBookService) Get(ctx context.Context, id string) (domain.Book, error) {
	return s.getFn(ctx, id)
}

func (s *stubBookService) Create(ctx context.Context, book domain.Book) (domain.Book, error) {
	return s.createFn(ctx, book)
}

func (s *stubBookService) Update(ctx context.Context, id string, book domain.Book) (domain.Book, error) {
	return s.updateFn(ctx, id, book)
}

func (s *stubBookService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

const validBookBody = `{"title":"Rayuela","author":"Julio Cortázar","genre":"Novela","publication":1963}`

func TestBookHandler_Create_Success(t *testing.T) {
	var got domain.Book
	h := NewBookHandler(&stubBookService{
		createFn: func(_ context.Context, book domain.Book) (domain.Book, error) {
			got = book
			book.ID = "book-1"
			return book, nil
		},
	})

	c, rec := newTestContext(http.MethodPost, "/api/books", validBookBody)
	if err := h.Create(c); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.Title != "Rayuela" || got.Publication != 1963 {
		t.Fatalf("unexpected book passed to service: %+v", got)
	}
}

func TestBookHandler_Create_MissingFields(t *testing.T) {
	h := NewBookHandler(&stubBookService{
		createFn: func(context.Context, domain.Book) (domain.Book, error) {
			t.Fatal("service must not be called on an invalid payload")
			return domain.Book{}, nil
		},
	})

	c, _ := newTestContext(http.MethodPost, "/api/books", `{"title":"Rayuela"}`)
	err := h.Create(c)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"author", "genre", "publication"} {
		if _, ok := ve.Fields[field]; !ok {
			t.Fatalf("expected %q among offending fields, got %v", field, ve.Fields)
		}
	}
}

func TestBookHandler_Create_FuturePublicationYear(t *testing.T) {
	h := NewBookHandler(&stubBookService{
		createFn: func(context.Context, domain.Book) (domain.Book, error) {
			t.Fatal("service must not be called on an invalid payload")
			return domain.Book{}, nil
		},
	})

	body := fmt.Sprintf(`{"title":"Rayuela","author":"Julio Cortázar","genre":"Novela","publication":%d}`, 3000)
	c, _ := newTestContext(http.MethodPost, "/api/books", body)
	err := h.Create(c)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := ve.Fields["publication"]; !ok {
		t.Fatalf("expected publication among offending fields, got %v", ve.Fields)
	}
}

func TestBookHandler_Get_NotFound(t *testing.T) {
	h := NewBookHandler(&stubBookService{
		getFn: func(_ context.Context, id string) (domain.Book, error) {
			return domain.Book{}, &domain.NotFoundError{Resource: "book", Key: id}
		},
	})

	c, _ := newTestContext(http.MethodGet, "/api/books/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")
	if err := h.Get(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBookHandler_Update(t *testing.T) {
	h := NewBookHandler(&stubBookService{
		updateFn: func(_ context.Context, id string, book domain.Book) (domain.Book, error) {
			book.ID = id
			return book, nil
		},
	})

	c, rec := newTestContext(http.MethodPut, "/api/books/book-1", validBookBody)
	c.SetParamNames("id")
	c.SetParamValues("book-1")
	if err := h.Update(c); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestBookHandler_Delete(t *testing.T) {
	var deleted string
	h := NewBookHandler(&stubBookService{
		deleteFn: func(_ context.Context, id string) error {
			deleted = id
			return nil
		},
	})

	c, rec := newTestContext(http.MethodDelete, "/api/books/book-1", "")
	c.SetParamNames("id")
	c.SetParamValues("book-1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if rec.Code != http.StatusNoContent || deleted != "book-1" {
		t.Fatalf("unexpected delete: code=%d id=%s", rec.Code, deleted)
	}
}
