package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Ubaid-2/Camera-rental/internal/domain"
	"github.com/Ubaid-2/Camera-rental/internal/repository"

	"github.com/lib/pq"
)

const rentalColumns = `id, camera_id, renter_id, owner_id, start_date, end_date, total_price_cents, status,
	       payment_method, transaction_ref, payment_proof_key,
	       renter_name, renter_phone, renter_address, pickup_time, created_on, updated_on`

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) CreateBatch(ctx context.Context, rentals []*domain.Rental) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin checkout transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO rentals (camera_id, renter_id, owner_id, start_date, end_date, total_price_cents, status,
	          renter_name, renter_phone, renter_address, pickup_time, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	now := time.Now()
	for _, rt := range rentals {
		err := tx.QueryRowContext(ctx, query,
			rt.CameraID, rt.RenterID, rt.OwnerID, rt.StartDate, rt.EndDate, rt.TotalPriceCents, rt.Status,
			rt.RenterName, rt.RenterPhone, rt.RenterAddress, rt.PickupTime, now, now,
		).Scan(&rt.ID)
		if err != nil {
			return fmt.Errorf("insert rental for camera %d: %w", rt.CameraID, err)
		}
	}
	return tx.Commit()
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) FindConflicts(ctx context.Context, cameraIDs []int32, start, end string) ([]domain.Rental, error) {
	// Closed-interval overlap: existing.start <= requested.end AND
	// existing.end >= requested.start. Rejected and cancelled rentals do not
	// hold dates.
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE camera_id = ANY($1)
	            AND status NOT IN ($2, $3)
	            AND start_date <= $4 AND end_date >= $5`
	rows, err := r.db.QueryContext(ctx, query,
		pq.Array(cameraIDs), domain.RentalStatusRejected, domain.RentalStatusCancelled, end, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRentals(rows)
}

func (r *rentalRepository) TransitionStatus(ctx context.Context, id int32, from, to domain.RentalStatus) error {
	query := `UPDATE rentals SET status = $1, updated_on = $2 WHERE id = $3 AND status = $4`
	res, err := r.db.ExecContext(ctx, query, to, time.Now(), id, from)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// The rental left the expected status between read and write.
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *rentalRepository) RecordPayment(ctx context.Context, id int32, method domain.PaymentMethod, transactionRef, proofKey string) error {
	query := `UPDATE rentals SET status = $1, payment_method = $2, transaction_ref = $3, payment_proof_key = $4, updated_on = $5
	          WHERE id = $6 AND status = $7`
	res, err := r.db.ExecContext(ctx, query,
		domain.RentalStatusPaymentPending, method, transactionRef, proofKey, time.Now(),
		id, domain.RentalStatusApproved)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *rentalRepository) ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	return r.list(ctx, "renter_id", renterID, status, page, pageSize)
}

func (r *rentalRepository) ListByOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	return r.list(ctx, "owner_id", ownerID, status, page, pageSize)
}

func (r *rentalRepository) list(ctx context.Context, column string, userID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE ` + column + ` = $1`

	args := []interface{}{userID}
	argIdx := 2
	if status != "" {
		query += " AND status = $2"
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	rentals, err := collectRentals(rows)
	if err != nil {
		return nil, 0, err
	}
	return rentals, count, nil
}

func (r *rentalRepository) ListApprovedBefore(ctx context.Context, cutoff time.Time) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE status = $1 AND updated_on < $2`
	rows, err := r.db.QueryContext(ctx, query, domain.RentalStatusApproved, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRentals(rows)
}

func (r *rentalRepository) ListConfirmedStartingOn(ctx context.Context, date string) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE status = $1 AND start_date = $2`
	rows, err := r.db.QueryContext(ctx, query, domain.RentalStatusPaymentConfirmed, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRentals(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRental(row rowScanner) (*domain.Rental, error) {
	rt := &domain.Rental{}
	var method, trxRef, proofKey sql.NullString
	err := row.Scan(&rt.ID, &rt.CameraID, &rt.RenterID, &rt.OwnerID, &rt.StartDate, &rt.EndDate,
		&rt.TotalPriceCents, &rt.Status, &method, &trxRef, &proofKey,
		&rt.RenterName, &rt.RenterPhone, &rt.RenterAddress, &rt.PickupTime, &rt.CreatedOn, &rt.UpdatedOn)
	if err != nil {
		return nil, err
	}
	rt.PaymentMethod = domain.PaymentMethod(method.String)
	rt.TransactionRef = trxRef.String
	rt.PaymentProofKey = proofKey.String
	return rt, nil
}

func collectRentals(rows *sql.Rows) ([]domain.Rental, error) {
	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}
