package notification

import (
	"context"
	"fmt"
	"strings"

	"traintrack/config"
	"traintrack/models"
	"traintrack/services/tasks"
	"traintrack/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// DefaultNotificationService enqueues email tasks on the notification queue.
// If the queue is unreachable it falls back to one direct SMTP attempt, so a
// Redis outage degrades delivery to best-effort instead of dropping it.
type DefaultNotificationService struct {
	Queue *asynq.Client
}

func NewDefaultNotificationService(queue *asynq.Client) *DefaultNotificationService {
	return &DefaultNotificationService{Queue: queue}
}

func (s *DefaultNotificationService) dispatch(ctx context.Context, payload models.EmailPayload) error {
	if payload.To == "" {
		return nil
	}

	if s.Queue != nil {
		task, err := tasks.NewEmailTask(payload)
		if err == nil {
			if _, err = s.Queue.Enqueue(task); err == nil {
				return nil
			}
		}
		utils.GetLogger().Warn("notification enqueue failed, attempting direct send",
			zap.String("to", payload.To), zap.Error(err))
	}

	if err := utils.SendEmail(ctx, payload.To, payload.Subject, payload.Body); err != nil {
		return fmt.Errorf("direct send to %s failed: %w", payload.To, err)
	}
	return nil
}

// NotifyAllocationBooked informs the trainer, the client contact and the
// operator address about a confirmed booking.
func (s *DefaultNotificationService) NotifyAllocationBooked(ctx context.Context, notice models.AllocationNotice) error {
	return s.fanOut(ctx, notice, "confirmed")
}

// NotifyAllocationRevised informs the same recipients about a changed booking.
func (s *DefaultNotificationService) NotifyAllocationRevised(ctx context.Context, notice models.AllocationNotice) error {
	return s.fanOut(ctx, notice, "updated")
}

func (s *DefaultNotificationService) fanOut(ctx context.Context, notice models.AllocationNotice, verb string) error {
	subject := fmt.Sprintf("Training session %s: %s", verb, notice.SessionTitle)
	body := allocationBody(notice, verb)

	recipients := []string{notice.TrainerEmail, notice.ClientEmail, config.AppConfig.OperatorEmail}
	var failures []string
	for _, to := range recipients {
		if to == "" {
			continue
		}
		if err := s.dispatch(ctx, models.EmailPayload{To: to, Subject: subject, Body: body}); err != nil {
			failures = append(failures, err.Error())
		}
	}
	if len(failures) > 0 {
		return fmt.Errorf("allocation notification partially failed: %s", strings.Join(failures, "; "))
	}
	return nil
}

func allocationBody(notice models.AllocationNotice, verb string) string {
	a := notice.Allocation
	var b strings.Builder
	fmt.Fprintf(&b, "The training session %q has been %s.\n\n", notice.SessionTitle, verb)
	fmt.Fprintf(&b, "Dates: %s to %s\n", a.DateRange.Start, a.DateRange.End)
	if notice.Hours != "" {
		fmt.Fprintf(&b, "Hours: %s\n", notice.Hours)
	}
	if a.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", a.Location)
	}
	if notice.ClientName != "" {
		fmt.Fprintf(&b, "Client: %s\n", notice.ClientName)
	}
	return b.String()
}

// NotifyApplicationDecision tells the applicant the outcome; acceptance mail
// carries the login email and the one-time temporary password.
func (s *DefaultNotificationService) NotifyApplicationDecision(ctx context.Context, notice models.DecisionNotice) error {
	var subject, body string
	if notice.Accepted {
		subject = "Your trainer application has been accepted"
		body = fmt.Sprintf(
			"Hello %s,\n\nWelcome aboard! Your trainer account is ready.\n\nLogin email: %s\nTemporary password: %s\n\nPlease change the password after your first login.\n",
			notice.FirstName, notice.Email, notice.TempPassword)
	} else {
		subject = "Update on your trainer application"
		body = fmt.Sprintf("Hello %s,\n\nThank you for your interest. We will not be moving forward with your application at this time.\n", notice.FirstName)
	}
	if notice.Comment != "" {
		body += fmt.Sprintf("\nNote from the review team: %s\n", notice.Comment)
	}

	return s.dispatch(ctx, models.EmailPayload{To: notice.Email, Subject: subject, Body: body})
}
