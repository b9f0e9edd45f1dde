package transaction

import (
	"errors"
	"net/http"
	"strconv"

	"backend/internal/app/user"
	"backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	CreateTransaction(c *gin.Context)
	ListTransactions(c *gin.Context)
	UpdateStatus(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary Create transaction
// @Description Save a currency-exchange transaction for admin review
// @Tags Transaction
// @Accept json
// @Produce json
// @Param request body CreateTransactionRequest true "Transaction payload"
// @Success 201 {object} Transaction
// @Router /api/transactions [post]
func (h *handler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	userID := c.GetString(middleware.ContextUserID)

	tx, err := h.service.CreateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to save transaction"})
		return
	}

	c.JSON(http.StatusCreated, tx)
}

// @Summary List transactions
// @Description Clients see their own history; admins see everything and may filter
// @Tags Transaction
// @Produce json
// @Param type query string false "Filter by type"
// @Param status query string false "Filter by status"
// @Success 200 {object} TransactionListResponse
// @Router /api/transactions [get]
func (h *handler) ListTransactions(c *gin.Context) {
	filter := Filter{
		Type:   c.Query("type"),
		Status: c.Query("status"),
	}

	if c.GetString(middleware.ContextRole) != user.RoleAdmin {
		filter.UserID = c.GetString(middleware.ContextUserID)
	}

	transactions, err := h.service.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{Transactions: transactions})
}

// @Summary Update transaction status
// @Tags Transaction
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} Transaction
// @Router /api/transactions/{id}/status [patch]
func (h *handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid transaction ID"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	tx, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "transaction not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to update transaction"})
		return
	}

	c.JSON(http.StatusOK, tx)
}
