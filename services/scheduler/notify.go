package scheduler

import (
	"context"
	"time"

	"traintrack/models"
	"traintrack/utils"

	"go.uber.org/zap"
)

// resolveConflictTitles fills in session titles for caller display. Lookup
// failures leave the title empty, the conflict itself is already decided.
func (s *DefaultSchedulingService) resolveConflictTitles(ctx context.Context, conflicts []models.AllocationConflict) {
	if s.Records == nil {
		return
	}
	for i := range conflicts {
		session, err := s.Records.GetSessionByID(ctx, conflicts[i].SessionID)
		if err != nil || session == nil {
			continue
		}
		conflicts[i].SessionTitle = session.Title
	}
}

// notifyBooked composes and dispatches the booking (or revision) messages.
// Strictly best-effort: every failure is logged and swallowed, the booking
// stands regardless.
func (s *DefaultSchedulingService) notifyBooked(ctx context.Context, alloc models.Allocation, revised bool) {
	if s.Notifier == nil {
		return
	}
	logger := utils.GetLogger()

	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	notice := models.AllocationNotice{
		Allocation: alloc,
		Hours:      alloc.Hours,
		Revised:    revised,
	}

	if s.Records != nil {
		if session, err := s.Records.GetSessionByID(nctx, alloc.SessionID); err == nil && session != nil {
			notice.SessionTitle = session.Title
			if notice.Hours == "" {
				notice.Hours = session.Hours
			}
		}
		if client, err := s.Records.GetClientByID(nctx, alloc.ClientID); err == nil && client != nil {
			notice.ClientEmail = client.ContactEmail
			notice.ClientName = client.Name
		}
	}
	if s.Accounts != nil {
		if trainer, err := s.Accounts.GetByID(nctx, alloc.TrainerID); err == nil && trainer != nil {
			notice.TrainerEmail = trainer.Email
		}
	}

	var err error
	if revised {
		err = s.Notifier.NotifyAllocationRevised(nctx, notice)
	} else {
		err = s.Notifier.NotifyAllocationBooked(nctx, notice)
	}
	if err != nil {
		logger.Warn("allocation notification failed",
			zap.String("allocationId", alloc.ID), zap.Error(err))
	}
}
