package workflow

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"time"

	"traintrack/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tempPasswordLength = 12

// generateTempPassword produces a random base32 temporary password. Only the
// bcrypt hash is stored; the plaintext travels once, in the Accept result and
// the applicant notification.
func generateTempPassword(length int) (string, error) {
	numBytes := (length*5 + 7) / 8
	randomBytes := make([]byte, numBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	pass := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	if len(pass) > length {
		pass = pass[:length]
	}
	return pass, nil
}

// buildTrainerAccount seeds the account and trainer profile from an accepted
// application. The records are not persisted here; the repository inserts
// them inside the decision transaction.
func buildTrainerAccount(app *models.Application) (*models.Account, *models.TrainerProfile, string, error) {
	tempPassword, err := generateTempPassword(tempPasswordLength)
	if err != nil {
		return nil, nil, "", err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to hash temporary password: %w", err)
	}

	now := time.Now()
	account := &models.Account{
		ID:           uuid.New().String(),
		FirstName:    app.FirstName,
		LastName:     app.LastName,
		Email:        app.Email,
		Phone:        app.Phone,
		PasswordHash: string(hashed),
		Role:         models.RoleTrainer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	profile := &models.TrainerProfile{
		ID:              uuid.New().String(),
		AccountID:       account.ID,
		Skills:          app.Skills,
		Specialties:     app.Specialties,
		ExperienceYears: app.ExperienceYears,
		ResumeRef:       app.ResumeRef,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return account, profile, tempPassword, nil
}
