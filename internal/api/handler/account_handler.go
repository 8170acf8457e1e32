package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fullstack/libreria-system/internal/api/metrics"
	"github.com/fullstack/libreria-system/internal/core/domain"
	"github.com/fullstack/libreria-system/internal/core/ports"
)

// AccountHandler exposes the account management endpoints. All domain
// failures propagate unchanged to the centralized error handler, which owns
// the status-code mapping.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// List handles GET /api/users.
//
// @Summary      List all accounts
// @Tags         accounts
// @Produce      json
// @Success      200  {array}  domain.Account
// @Router       /api/users [get]
func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}

// GetByID handles GET /api/users/id/:id.
//
// @Summary      Get an account by id
// @Tags         accounts
// @Produce      json
// @Success      200  {object}  domain.Account
// @Failure      404  {object}  map[string]any
// @Router       /api/users/id/{id} [get]
func (h *AccountHandler) GetByID(c echo.Context) error {
	account, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// GetByEmail handles GET /api/users/email/:email.
func (h *AccountHandler) GetByEmail(c echo.Context) error {
	account, err := h.service.GetByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// ListByRole handles GET /api/users/role/:role. An empty result is 204, not
// an empty array.
func (h *AccountHandler) ListByRole(c echo.Context) error {
	accounts, err := h.service.ListByRole(c.Request().Context(), c.Param("role"))
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, accounts)
}

// Create handles POST /api/users — the administrative creation path.
//
// @Summary      Create an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Success      201  {object}  domain.Account
// @Failure      400  {object}  map[string]any
// @Failure      409  {object}  map[string]any
// @Router       /api/users [post]
func (h *AccountHandler) Create(c echo.Context) error {
	var req createAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := h.service.Create(c.Request().Context(), draftFromCreate(req))
	if err != nil {
		return err
	}

	metrics.AccountsCreatedTotal.WithLabelValues("admin").Inc()
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/users/id/:id.
func (h *AccountHandler) Update(c echo.Context) error {
	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	draft := ports.AccountDraft{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     req.Role,
	}
	if req.RegisterDate != nil {
		draft.RegisterDate = *req.RegisterDate
	}

	updated, err := h.service.Update(c.Request().Context(), c.Param("id"), draft)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/users/id/:id.
func (h *AccountHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Register handles POST /api/users/register — the self-service signup path.
//
// @Summary      Register a new account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Success      201  {object}  domain.Account
// @Failure      400  {object}  map[string]any
// @Failure      409  {object}  map[string]any
// @Router       /api/users/register [post]
func (h *AccountHandler) Register(c echo.Context) error {
	var req createAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := h.service.Register(c.Request().Context(), draftFromCreate(req))
	if err != nil {
		return err
	}

	metrics.AccountsCreatedTotal.WithLabelValues("register").Inc()
	return c.JSON(http.StatusCreated, created)
}

// Login handles POST /api/users/login. Unknown email and wrong password
// collapse into the same 401 so the endpoint cannot be used to enumerate
// registered addresses.
//
// @Summary      Authenticate with email and password
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Success      200  {object}  domain.Account
// @Failure      401  {object}  map[string]any
// @Router       /api/users/login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	account, err := h.service.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidCredentials
		}
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, account)
}

// Recover handles GET /api/users/recover/:email. On success the plaintext
// temporary password is returned once, for display to the account owner.
func (h *AccountHandler) Recover(c echo.Context) error {
	temp, err := h.service.Recover(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}

	metrics.PasswordRecoveriesTotal.Inc()
	return c.String(http.StatusOK, temp)
}

// UpdateProfile handles PUT /api/users/profile/:id.
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := h.service.UpdateProfile(c.Request().Context(), c.Param("id"), ports.ProfileDraft{
		FullName: req.FullName,
		Phone:    req.Phone,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func draftFromCreate(req createAccountRequest) ports.AccountDraft {
	draft := ports.AccountDraft{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     req.Role,
	}
	if req.RegisterDate != nil {
		draft.RegisterDate = req.RegisterDate.UTC()
	}
	return draft
}
