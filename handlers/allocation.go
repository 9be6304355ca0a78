package handlers

import (
	"errors"
	"net/http"

	"traintrack/models"
	"traintrack/services/scheduler"
	"traintrack/utils"

	"github.com/gin-gonic/gin"
)

// AllocationHandler exposes the booking scheduler over HTTP.
type AllocationHandler struct {
	Scheduler scheduler.SchedulingService
}

func NewAllocationHandler(svc scheduler.SchedulingService) *AllocationHandler {
	return &AllocationHandler{Scheduler: svc}
}

// respondSchedulerError maps scheduler error kinds onto HTTP responses. The
// conflict payload carries the overlapping set for caller display.
func respondSchedulerError(c *gin.Context, err error) {
	var vErr scheduler.ValidationError
	var cErr scheduler.ConflictError
	var nfErr scheduler.NotFoundError
	var depErr scheduler.DependencyError

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": vErr.Fields})
	case errors.As(err, &cErr):
		c.JSON(http.StatusConflict, gin.H{"error": "scheduling conflict", "conflicts": cErr.Conflicts})
	case errors.As(err, &nfErr):
		c.JSON(http.StatusNotFound, gin.H{"error": nfErr.Error()})
	case errors.As(err, &depErr):
		utils.JSONError(c, http.StatusServiceUnavailable, "Service temporarily unavailable", depErr.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal error", err.Error())
	}
}

// CreateAllocationHandler books a trainer for a session.
func (h *AllocationHandler) CreateAllocationHandler(c *gin.Context) {
	var req models.AllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	alloc, err := h.Scheduler.ProposeAllocation(c.Request.Context(), req)
	if err != nil {
		respondSchedulerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, alloc)
}

// UpdateAllocationHandler revises an existing allocation.
func (h *AllocationHandler) UpdateAllocationHandler(c *gin.Context) {
	id := c.Param("id")
	var changes models.AllocationChanges
	if err := c.ShouldBindJSON(&changes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	alloc, err := h.Scheduler.ReviseAllocation(c.Request.Context(), id, changes)
	if err != nil {
		respondSchedulerError(c, err)
		return
	}
	c.JSON(http.StatusOK, alloc)
}

// CancelAllocationHandler cancels an allocation, freeing the trainer's range.
func (h *AllocationHandler) CancelAllocationHandler(c *gin.Context) {
	alloc, err := h.Scheduler.CancelAllocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondSchedulerError(c, err)
		return
	}
	c.JSON(http.StatusOK, alloc)
}

// UpdateAllocationStatusHandler moves an allocation along its lifecycle.
func (h *AllocationHandler) UpdateAllocationStatusHandler(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	alloc, err := h.Scheduler.UpdateAllocationStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		respondSchedulerError(c, err)
		return
	}
	c.JSON(http.StatusOK, alloc)
}

// ListTrainerAllocationsHandler returns a trainer's calendar.
func (h *AllocationHandler) ListTrainerAllocationsHandler(c *gin.Context) {
	excludeCancelled := c.DefaultQuery("excludeCancelled", "true") != "false"

	allocs, err := h.Scheduler.ListForTrainer(c.Request.Context(), c.Param("trainerId"), excludeCancelled)
	if err != nil {
		respondSchedulerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"allocations": allocs})
}

// DeleteAllocationHandler hard-deletes an allocation (admin override).
func (h *AllocationHandler) DeleteAllocationHandler(c *gin.Context) {
	if err := h.Scheduler.DeleteAllocation(c.Request.Context(), c.Param("id")); err != nil {
		respondSchedulerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
