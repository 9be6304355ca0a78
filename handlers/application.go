package handlers

import (
	"errors"
	"net/http"

	"traintrack/models"
	"traintrack/services/workflow"
	"traintrack/utils"

	"github.com/gin-gonic/gin"
)

// ApplicationHandler exposes the trainer application workflow over HTTP.
type ApplicationHandler struct {
	Workflow workflow.WorkflowService
}

func NewApplicationHandler(svc workflow.WorkflowService) *ApplicationHandler {
	return &ApplicationHandler{Workflow: svc}
}

func respondWorkflowError(c *gin.Context, err error) {
	var vErr workflow.ValidationError
	var dupErr workflow.DuplicateError
	var nfErr workflow.NotFoundError
	var decErr workflow.AlreadyDecidedError
	var depErr workflow.DependencyError

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": vErr.Fields})
	case errors.As(err, &dupErr):
		c.JSON(http.StatusConflict, gin.H{"error": dupErr.Error()})
	case errors.As(err, &nfErr):
		c.JSON(http.StatusNotFound, gin.H{"error": nfErr.Error()})
	case errors.As(err, &decErr):
		c.JSON(http.StatusConflict, gin.H{"error": decErr.Error()})
	case errors.As(err, &depErr):
		utils.JSONError(c, http.StatusServiceUnavailable, "Service temporarily unavailable", depErr.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal error", err.Error())
	}
}

// SubmitApplicationHandler records a new trainer candidacy.
func (h *ApplicationHandler) SubmitApplicationHandler(c *gin.Context) {
	var req models.ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	app, err := h.Workflow.Submit(c.Request.Context(), req)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// DecideApplicationHandler accepts or rejects a pending application.
func (h *ApplicationHandler) DecideApplicationHandler(c *gin.Context) {
	id := c.Param("id")
	var input struct {
		Decision string `json:"decision" binding:"required"`
		Comment  string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	switch input.Decision {
	case "accept":
		result, err := h.Workflow.Accept(c.Request.Context(), id, input.Comment)
		if err != nil {
			respondWorkflowError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	case "reject":
		app, err := h.Workflow.Reject(c.Request.Context(), id, input.Comment)
		if err != nil {
			respondWorkflowError(c, err)
			return
		}
		c.JSON(http.StatusOK, app)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "decision must be \"accept\" or \"reject\""})
	}
}

// ListApplicationsHandler lists applications newest-first with optional
// status and search filters.
func (h *ApplicationHandler) ListApplicationsHandler(c *gin.Context) {
	filter := models.ApplicationFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}

	apps, err := h.Workflow.List(c.Request.Context(), filter)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}
