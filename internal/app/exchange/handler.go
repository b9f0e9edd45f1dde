package exchange

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	GetRates(c *gin.Context)
	Quote(c *gin.Context)
	ListOverrides(c *gin.Context)
	UpsertOverride(c *gin.Context)
	DeleteOverride(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary Get exchange rates
// @Tags Exchange
// @Produce json
// @Param base query string false "Base currency" default(USD)
// @Success 200 {object} RatesResponse
// @Router /api/exchange/rates [get]
func (h *handler) GetRates(c *gin.Context) {
	base := c.DefaultQuery("base", "USD")

	rates, err := h.service.GetRates(c.Request.Context(), base)
	if err != nil {
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "failed to fetch exchange rates"})
		return
	}

	c.JSON(http.StatusOK, rates)
}

// @Summary Quote a currency exchange
// @Tags Exchange
// @Accept json
// @Produce json
// @Param request body QuoteRequest true "Quote input"
// @Success 200 {object} Quote
// @Failure 422 {object} ErrorResponse
// @Router /api/exchange/quote [post]
func (h *handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	quote, err := h.service.Quote(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrAmountOutOfRange), errors.Is(err, ErrUnknownCurrency):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusBadGateway, ErrorResponse{Error: "failed to quote exchange"})
		}
		return
	}

	c.JSON(http.StatusOK, quote)
}

func (h *handler) ListOverrides(c *gin.Context) {
	overrides, err := h.service.ListOverrides(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch overrides"})
		return
	}
	c.JSON(http.StatusOK, OverrideListResponse{Overrides: overrides})
}

func (h *handler) UpsertOverride(c *gin.Context) {
	var req UpsertOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	override, err := h.service.UpsertOverride(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to save override"})
		return
	}
	c.JSON(http.StatusOK, override)
}

func (h *handler) DeleteOverride(c *gin.Context) {
	base := c.Param("base")
	target := c.Param("target")

	if err := h.service.DeleteOverride(c.Request.Context(), base, target); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to delete override"})
		return
	}
	c.Status(http.StatusNoContent)
}
