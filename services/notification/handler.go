package notification

import (
	"context"
	"errors"

	"travelhub/database"
	managerRepo "travelhub/database/repository/manager"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// BookingConfirmedHandler logs confirmed bookings together with the contact
// of the manager responsible for the vertical, when one is registered.
func BookingConfirmedHandler(managers managerRepo.ManagerRepository, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		ev, err := parseBookingConfirmed(task)
		if err != nil {
			logger.Error("Invalid booking task payload", zap.Error(err))
			return asynq.SkipRetry
		}

		fields := []zap.Field{
			zap.String("partnerOrderID", ev.PartnerOrderID),
			zap.String("vertical", ev.Vertical),
			zap.String("userID", ev.UserID),
		}
		m, err := managers.GetByID(ctx, ev.Vertical)
		switch {
		case errors.Is(err, database.ErrNotFound):
		case err != nil:
			return err
		default:
			fields = append(fields, zap.String("managerEmail", m.Email))
		}

		logger.Info("Booking confirmed", fields...)
		return nil
	}
}
