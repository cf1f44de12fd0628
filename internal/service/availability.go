package service

import (
	"context"
	"fmt"

	"github.com/Ubaid-2/Camera-rental/internal/domain"
	"github.com/Ubaid-2/Camera-rental/internal/pricing"
	"github.com/Ubaid-2/Camera-rental/internal/repository"
)

type availabilityChecker struct {
	rentalRepo repository.RentalRepository
}

func NewAvailabilityChecker(rentalRepo repository.RentalRepository) AvailabilityChecker {
	return &availabilityChecker{rentalRepo: rentalRepo}
}

// IsAvailable reports whether none of the cameras has a date-holding rental
// overlapping [start, end]. Boundary days count as conflicts. A repository
// error is returned as-is: reporting "available" on a failed lookup would
// double-book a physical camera.
func (c *availabilityChecker) IsAvailable(ctx context.Context, cameraIDs []int32, start, end string) (bool, error) {
	if len(cameraIDs) == 0 {
		return true, nil
	}

	startDate, err := pricing.ParseDate(start)
	if err != nil {
		return false, domain.NewValidationError("start_date", err.Error())
	}
	endDate, err := pricing.ParseDate(end)
	if err != nil {
		return false, domain.NewValidationError("end_date", err.Error())
	}
	if startDate.After(endDate) {
		return false, domain.NewValidationError("end_date", "end date must not be before start date")
	}

	conflicts, err := c.rentalRepo.FindConflicts(ctx, cameraIDs, start, end)
	if err != nil {
		return false, fmt.Errorf("could not verify availability: %w", err)
	}

	// Each conflict is confirmed against the requested window, so a backend
	// that returns candidate rentals rather than exact overlaps still yields
	// a correct answer. Unparseable stored dates fail closed.
	for _, rt := range conflicts {
		rtStart, err := pricing.ParseDate(rt.StartDate)
		if err != nil {
			return false, fmt.Errorf("could not verify availability: %w", err)
		}
		rtEnd, err := pricing.ParseDate(rt.EndDate)
		if err != nil {
			return false, fmt.Errorf("could not verify availability: %w", err)
		}
		if pricing.Overlaps(rtStart, rtEnd, startDate, endDate) {
			return false, nil
		}
	}
	return true, nil
}
