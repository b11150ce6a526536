package rest

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/openlumen/walletd/internal/domain"
	"github.com/openlumen/walletd/internal/present/rest/middleware"
	"github.com/openlumen/walletd/internal/present/rest/presenter"
	"github.com/openlumen/walletd/internal/usecase"
)

const (
	defaultPageNumber = 1
	defaultPageSize   = 10
)

type Handler struct {
	auth        *usecase.AuthUsecase
	user        *usecase.UserUsecase
	contact     *usecase.ContactUsecase
	transaction *usecase.TransactionUsecase
}

func NewHandler(
	auth *usecase.AuthUsecase,
	user *usecase.UserUsecase,
	contact *usecase.ContactUsecase,
	transaction *usecase.TransactionUsecase,
) *Handler {
	return &Handler{
		auth:        auth,
		user:        user,
		contact:     contact,
		transaction: transaction,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo, guard *middleware.AuthMiddleware) {
	e.POST("/auth/login", h.handleLogin)
	e.GET("/auth/token", h.handleValidateToken, guard.RequireToken)

	e.POST("/users", h.handleRegister)
	e.GET("/users", h.handleGetUsers, guard.RequireToken)
	e.GET("/users/:id", h.handleGetUser, guard.RequireToken)
	e.PUT("/users", h.handleUpdateUser, guard.RequireToken)
	e.DELETE("/users/:id", h.handleDeleteUser, guard.RequireToken)
	e.POST("/users/wallets", h.handleAddWallet, guard.RequireToken)

	e.GET("/contacts/:userId", h.handleGetContacts, guard.RequireToken)
	e.POST("/contacts", h.handleAddContact, guard.RequireToken)
	e.PUT("/contacts", h.handleUpdateContact, guard.RequireToken)
	e.DELETE("/contacts/:id", h.handleDeleteContact, guard.RequireToken)

	e.POST("/transactions/account", h.handleCreateAccount, guard.RequireToken)
	e.POST("/transactions/payment", h.handleSendPayment, guard.RequireToken)
	e.GET("/transactions/payments", h.handleGetPayments, guard.RequireToken)
	e.POST("/transactions/testfund", h.handleTestFunds, guard.RequireToken)
	e.GET("/transactions/balances", h.handleGetBalances, guard.RequireToken)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(c echo.Context) error {
	ctx := c.Request().Context()

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return presenter.Fail[domain.LoggedUser](c, domain.Invalid(""))
	}

	return presenter.Respond(c, h.auth.Login(ctx, req.Email, req.Password))
}

func (h *Handler) handleValidateToken(c echo.Context) error {
	ctx := c.Request().Context()
	return presenter.Respond(c, h.auth.AuthorizeToken(ctx, middleware.Token(c)))
}

func (h *Handler) handleRegister(c echo.Context) error {
	ctx := c.Request().Context()

	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return presenter.Fail[domain.LoggedUser](c, domain.Invalid(""))
	}

	return presenter.Respond(c, h.user.Register(ctx, input))
}

func (h *Handler) handleGetUsers(c echo.Context) error {
	ctx := c.Request().Context()
	return presenter.Respond(c, h.user.GetAll(ctx))
}

func (h *Handler) handleGetUser(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c.Param("id"))
	if err != nil {
		return presenter.Fail[domain.Profile](c, domain.Invalid(""))
	}

	return presenter.Respond(c, h.user.GetByID(ctx, id, middleware.Token(c)))
}

func (h *Handler) handleUpdateUser(c echo.Context) error {
	ctx := c.Request().Context()

	var input usecase.UpdateUserInput
	if err := c.Bind(&input); err != nil {
		return presenter.Fail[bool](c, domain.Invalid(""))
	}

	return presenter.Respond(c, h.user.Update(ctx, input, middleware.Token(c)))
}

func (h *Handler) handleDeleteUser(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c.Param("id"))
	if err != nil {
		return presenter.Fail[bool](c, domain.Invalid(""))
	}

	return presenter.Respond(c, h.user.Delete(ctx, id, middleware.Token(c)))
}

func (h *Handler) handleAddWallet(c echo.Context) error {
	ctx := c.Request().Context()

	var input usecase.AddWalletInput
	if err := c.Bind(&input); err != nil {
		return presenter.Fail[bool](c, domain.Invalid(""))
	}

	return presenter.Respond(c, h.user.AddWallet(ctx, input, middleware.Token(c)))
}

func (h *Handler) handleGetContacts(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := parseID(c.Param("userId"))
	if err != nil {
		return presenter.Fail[[]domain.Contact](c, domain.Invalid(""))
	}

	return presenter.Respond(c, h.contact.GetAll(ctx, userID, middleware.Token(c)))
}

func (h *Handler) handleAddContact(c echo.Context) error {
	ctx := c.Request().Context()

	var input usecase.AddContactInput
	if err := c.Bind(&input); err != nil {
		return presenter.Fail[bool](c, domain.Invalid(""))
	}

	return presenter.Respond(c, h.contact.Add(ctx, input, middleware.Token(c)))
}

func (h *Handler) handleUpdateContact(c echo.Context) error {
	ctx := c.Request().Context()

	var input usecase.UpdateContactInput
	if err := c.Bind(&input); err != nil {
		return presenter.Fail[bool](c, domain.Invalid(""))
	}

	return presenter.Respond(c, h.contact.Update(ctx, input))
}

func (h *Handler) handleDeleteContact(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c.Param("id"))
	if err != nil {
		return presenter.Fail[bool](c, domain.Invalid(""))
	}

	return presenter.Respond(c, h.contact.Delete(ctx, id))
}

func (h *Handler) handleCreateAccount(c echo.Context) error {
	ctx := c.Request().Context()
	return presenter.Respond(c, h.transaction.CreateAccount(ctx, middleware.Token(c)))
}

func (h *Handler) handleSendPayment(c echo.Context) error {
	ctx := c.Request().Context()

	var input usecase.SendPaymentInput
	if err := c.Bind(&input); err != nil {
		return presenter.Fail[bool](c, domain.Invalid(""))
	}

	return presenter.Respond(c, h.transaction.SendPayment(ctx, middleware.Token(c), input))
}

func (h *Handler) handleGetPayments(c echo.Context) error {
	ctx := c.Request().Context()

	pageNumber, pageSize, err := paginationParams(c)
	if err != nil {
		return presenter.Fail[usecase.PaymentPage](c, domain.Invalid("Invalid pagination parameters."))
	}

	return presenter.Respond(c, h.transaction.GetTransactions(ctx, middleware.Token(c), pageNumber, pageSize))
}

type testFundsRequest struct {
	PublicKey string `json:"publicKey"`
}

func (h *Handler) handleTestFunds(c echo.Context) error {
	ctx := c.Request().Context()

	var req testFundsRequest
	if err := c.Bind(&req); err != nil {
		return presenter.Fail[bool](c, domain.Invalid(""))
	}

	return presenter.Respond(c, h.transaction.GetTestFunds(ctx, req.PublicKey))
}

func (h *Handler) handleGetBalances(c echo.Context) error {
	ctx := c.Request().Context()

	pageNumber, pageSize, err := paginationParams(c)
	if err != nil {
		return presenter.Fail[usecase.BalancePage](c, domain.Invalid("Invalid pagination parameters."))
	}

	filterZero := false
	if raw := c.QueryParam("filterZeroBalances"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return presenter.Fail[usecase.BalancePage](c, domain.Invalid(""))
		}
		filterZero = parsed
	}

	return presenter.Respond(c, h.transaction.GetBalances(ctx, usecase.GetBalancesInput{
		PublicKey:          c.QueryParam("publicKey"),
		PageNumber:         pageNumber,
		PageSize:           pageSize,
		FilterZeroBalances: filterZero,
	}))
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func paginationParams(c echo.Context) (int, int, error) {
	pageNumber := defaultPageNumber
	if raw := c.QueryParam("pageNumber"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, err
		}
		pageNumber = parsed
	}

	pageSize := defaultPageSize
	if raw := c.QueryParam("pageSize"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, err
		}
		pageSize = parsed
	}

	return pageNumber, pageSize, nil
}
