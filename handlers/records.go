package handlers

import (
	"net/http"

	recordsRepo "traintrack/database/repository/records"
	"traintrack/models"

	"github.com/gin-gonic/gin"
)

// RecordsHandler manages the catalogue records the scheduler resolves:
// training session offerings and client companies.
type RecordsHandler struct {
	Records recordsRepo.CatalogueRepository
}

func NewRecordsHandler(repo recordsRepo.CatalogueRepository) *RecordsHandler {
	return &RecordsHandler{Records: repo}
}

func (h *RecordsHandler) CreateSessionHandler(c *gin.Context) {
	var session models.TrainingSession
	if err := c.ShouldBindJSON(&session); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if session.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	id, err := h.Records.CreateSession(c.Request.Context(), session)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *RecordsHandler) GetSessionHandler(c *gin.Context) {
	session, err := h.Records.GetSessionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch session", "details": err.Error()})
		return
	}
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *RecordsHandler) CreateClientHandler(c *gin.Context) {
	var client models.ClientCompany
	if err := c.ShouldBindJSON(&client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if client.Name == "" || client.ContactEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and contact email are required"})
		return
	}

	id, err := h.Records.CreateClient(c.Request.Context(), client)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create client", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *RecordsHandler) GetClientHandler(c *gin.Context) {
	client, err := h.Records.GetClientByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch client", "details": err.Error()})
		return
	}
	if client == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}
	c.JSON(http.StatusOK, client)
}
