package handlers

import (
	"net/http"

	"traintrack/services/account"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes account authentication endpoints.
type AuthHandler struct {
	Accounts account.AccountService
}

func NewAuthHandler(svc account.AccountService) *AuthHandler {
	return &AuthHandler{Accounts: svc}
}

// LoginHandler authenticates an account and returns a JWT.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Accounts.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ChangePasswordHandler replaces the caller's password; fresh trainers use it
// to retire their temporary credential.
func (h *AuthHandler) ChangePasswordHandler(c *gin.Context) {
	accountID := c.GetString("accountID")
	var input struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Accounts.ChangePassword(c.Request.Context(), accountID, input.CurrentPassword, input.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "password updated"})
}

// GetTrainerProfileHandler returns the caller's trainer profile.
func (h *AuthHandler) GetTrainerProfileHandler(c *gin.Context) {
	accountID := c.GetString("accountID")

	profile, err := h.Accounts.GetTrainerProfile(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}
