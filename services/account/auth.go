package account

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"traintrack/models"
	"traintrack/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Authenticate verifies credentials and issues a JWT for the account.
func (s *DefaultAccountService) Authenticate(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	rec, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch account", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if rec == nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	token, err := utils.GenerateToken(rec.ID, rec.Email, 24*time.Hour)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	return &models.AuthResponse{
		ID:        rec.ID,
		Token:     token,
		Email:     rec.Email,
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
		Role:      rec.Role,
	}, nil
}

// ChangePassword swaps the stored hash after verifying the current password.
// Freshly provisioned trainers use this to replace their temporary password.
func (s *DefaultAccountService) ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error {
	rec, err := s.Repo.GetByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to fetch account: %w", err)
	}
	if rec == nil {
		return fmt.Errorf("account not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect")
	}
	if err := VerifyPasswordComplexity(newPassword); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	rec.PasswordHash = string(hashed)

	if err := s.Repo.Update(ctx, rec); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return nil
}

// GetTrainerProfile returns the trainer profile linked to the account.
func (s *DefaultAccountService) GetTrainerProfile(ctx context.Context, accountID string) (*models.TrainerProfile, error) {
	profile, err := s.Repo.GetProfileByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trainer profile: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("no trainer profile for account %s", accountID)
	}
	return profile, nil
}

// VerifyPasswordComplexity checks that the password meets complexity requirements.
func VerifyPasswordComplexity(pw string) error {
	var (
		hasMinLen = len(pw) >= 8
		hasUpper  = regexp.MustCompile(`[A-Z]`).MatchString(pw)
		hasLower  = regexp.MustCompile(`[a-z]`).MatchString(pw)
		hasNumber = regexp.MustCompile(`[0-9]`).MatchString(pw)
	)
	if !hasMinLen {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if !hasUpper {
		return fmt.Errorf("password must include at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must include at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must include at least one number")
	}
	return nil
}
