package plan

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	GetAllPlans(c *gin.Context)
	GetPlan(c *gin.Context)
	CreatePlan(c *gin.Context)
	UpdatePlan(c *gin.Context)
	DeletePlan(c *gin.Context)
	Project(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary List investment plans
// @Tags Plan
// @Produce json
// @Success 200 {object} PlanListResponse
// @Router /api/investment-plans [get]
func (h *handler) GetAllPlans(c *gin.Context) {
	plans, err := h.service.GetAllPlans(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch plans"})
		return
	}
	c.JSON(http.StatusOK, PlanListResponse{Plans: plans})
}

func (h *handler) GetPlan(c *gin.Context) {
	id, err := parsePlanID(c)
	if err != nil {
		return
	}

	plan, err := h.service.GetPlanByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "plan not found"})
		return
	}
	c.JSON(http.StatusOK, plan)
}

// @Summary Create investment plan
// @Tags Plan
// @Accept json
// @Produce json
// @Param request body UpsertPlanRequest true "Plan payload"
// @Success 201 {object} InvestmentPlan
// @Router /api/investment-plans [post]
func (h *handler) CreatePlan(c *gin.Context) {
	var req UpsertPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	plan, err := h.service.CreatePlan(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create plan"})
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func (h *handler) UpdatePlan(c *gin.Context) {
	id, err := parsePlanID(c)
	if err != nil {
		return
	}

	var req UpsertPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	plan, err := h.service.UpdatePlan(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to update plan"})
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *handler) DeletePlan(c *gin.Context) {
	id, err := parsePlanID(c)
	if err != nil {
		return
	}

	if err := h.service.DeletePlan(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to delete plan"})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Project investment growth
// @Description Compounded projection over 1, 3 and 10 years
// @Tags Plan
// @Accept json
// @Produce json
// @Param id path int true "Plan ID"
// @Param request body ProjectionRequest true "Projection input"
// @Success 200 {object} ProjectionResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/investment-plans/{id}/projections [post]
func (h *handler) Project(c *gin.Context) {
	id, err := parsePlanID(c)
	if err != nil {
		return
	}

	var req ProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	projections, err := h.service.Project(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPlanNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "plan not found"})
		case errors.Is(err, ErrInvalidAmount):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to calculate projection"})
		}
		return
	}

	c.JSON(http.StatusOK, ProjectionResponse{Projections: projections})
}

func parsePlanID(c *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid plan ID"})
	}
	return id, err
}
