package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fullstack/libreria-system/internal/core/domain"
	"github.com/fullstack/libreria-system/internal/core/ports"
)

type bookRequest struct {
	Title       string `json:"title"       validate:"required,min=1,max=50"`
	Author      string `json:"author"      validate:"required,min=1,max=50"`
	Genre       string `json:"genre"       validate:"required,min=1,max=50"`
	Publication int    `json:"publication" validate:"required"`
}

// BookHandler exposes plain CRUD over the book catalog through the generic
// catalog service.
type BookHandler struct {
	service ports.CrudService[domain.Book]
}

func NewBookHandler(service ports.CrudService[domain.Book]) *BookHandler {
	return &BookHandler{service: service}
}

// List handles GET /api/books.
//
// @Summary      List all books
// @Tags         books
// @Produce      json
// @Success      200  {array}  domain.Book
// @Router       /api/books [get]
func (h *BookHandler) List(c echo.Context) error {
	books, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}

// Get handles GET /api/books/:id.
func (h *BookHandler) Get(c echo.Context) error {
	book, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

// Create handles POST /api/books.
//
// @Summary      Add a book to the catalog
// @Tags         books
// @Accept       json
// @Produce      json
// @Success      201  {object}  domain.Book
// @Failure      400  {object}  map[string]any
// @Router       /api/books [post]
func (h *BookHandler) Create(c echo.Context) error {
	book, err := h.bindBook(c)
	if err != nil {
		return err
	}

	created, err := h.service.Create(c.Request().Context(), book)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/books/:id.
func (h *BookHandler) Update(c echo.Context) error {
	book, err := h.bindBook(c)
	if err != nil {
		return err
	}

	updated, err := h.service.Update(c.Request().Context(), c.Param("id"), book)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/books/:id.
func (h *BookHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BookHandler) bindBook(c echo.Context) (domain.Book, error) {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return domain.Book{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.Book{}, err
	}
	// Publication year cannot be in the future; validator tags cannot
	// reference the current year, so the check lives here.
	if req.Publication > time.Now().Year() {
		return domain.Book{}, &domain.ValidationError{Fields: map[string]string{
			"publication": "publication year cannot be in the future",
		}}
	}

	return domain.Book{
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		Publication: req.Publication,
	}, nil
}
