package tasks

import (
	"encoding/json"

	"traintrack/models"

	"github.com/hibiken/asynq"
)

const TypeEmailSend = "email:send"

// NewEmailTask wraps an email payload for the notification queue.
func NewEmailTask(payload models.EmailPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeEmailSend, b, asynq.MaxRetry(3)), nil
}
