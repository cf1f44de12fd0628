package jobs

import (
	"context"
	"time"

	"github.com/Ubaid-2/Camera-rental/internal/logger"
	"github.com/Ubaid-2/Camera-rental/internal/pricing"
)

// paymentReminderAge is how long a rental may sit in APPROVED before the
// renter gets nudged to submit payment.
const paymentReminderAge = 24 * time.Hour

// SendPaymentReminders emails renters whose approved rentals still have no
// submitted payment.
func (jr *JobRunner) SendPaymentReminders() {
	jr.runWithRecovery("SendPaymentReminders", func() {
		ctx := context.Background()

		cutoff := time.Now().UTC().Add(-paymentReminderAge)
		rentals, err := jr.store.RentalRepository.ListApprovedBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list rentals awaiting payment", "error", err)
			return
		}

		sent := 0
		for _, rental := range rentals {
			renter, err := jr.store.UserRepository.GetByID(ctx, rental.RenterID)
			if err != nil {
				logger.Error("Failed to load renter for payment reminder", "rental_id", rental.ID, "error", err)
				continue
			}
			camera, err := jr.store.CameraRepository.GetByID(ctx, rental.CameraID)
			if err != nil {
				logger.Error("Failed to load camera for payment reminder", "rental_id", rental.ID, "error", err)
				continue
			}
			if err := jr.email.SendPaymentReminder(ctx, renter.Email, camera.Name); err != nil {
				logger.Warn("Failed to send payment reminder", "rental_id", rental.ID, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent payment reminders", "count", sent, "candidates", len(rentals))
	})
}

// SendPickupReminders emails both parties of confirmed rentals that start
// tomorrow.
func (jr *JobRunner) SendPickupReminders() {
	jr.runWithRecovery("SendPickupReminders", func() {
		ctx := context.Background()

		tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format(pricing.DateLayout)
		rentals, err := jr.store.RentalRepository.ListConfirmedStartingOn(ctx, tomorrow)
		if err != nil {
			logger.Error("Failed to list rentals starting tomorrow", "error", err)
			return
		}

		sent := 0
		for _, rental := range rentals {
			camera, err := jr.store.CameraRepository.GetByID(ctx, rental.CameraID)
			if err != nil {
				logger.Error("Failed to load camera for pickup reminder", "rental_id", rental.ID, "error", err)
				continue
			}
			for _, userID := range []int32{rental.RenterID, rental.OwnerID} {
				user, err := jr.store.UserRepository.GetByID(ctx, userID)
				if err != nil {
					logger.Error("Failed to load user for pickup reminder", "rental_id", rental.ID, "user_id", userID, "error", err)
					continue
				}
				if err := jr.email.SendPickupReminder(ctx, user.Email, camera.Name, rental.StartDate); err != nil {
					logger.Warn("Failed to send pickup reminder", "rental_id", rental.ID, "user_id", userID, "error", err)
					continue
				}
				sent++
			}
		}

		logger.Info("Sent pickup reminders", "count", sent, "rentals", len(rentals))
	})
}
