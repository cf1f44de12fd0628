package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/Ubaid-2/Camera-rental/internal/domain"
	"github.com/Ubaid-2/Camera-rental/internal/repository"
)

type cameraRepository struct {
	db *sql.DB
}

func NewCameraRepository(db *sql.DB) repository.CameraRepository {
	return &cameraRepository{db: db}
}

func (r *cameraRepository) Create(ctx context.Context, c *domain.Camera) error {
	query := `INSERT INTO cameras (owner_id, name, description, price_per_day_cents, image_key, available, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		c.OwnerID, c.Name, c.Description, c.PricePerDayCents, c.ImageKey, c.Available, now, now,
	).Scan(&c.ID)
}

func (r *cameraRepository) GetByID(ctx context.Context, id int32) (*domain.Camera, error) {
	c := &domain.Camera{}
	var imageKey sql.NullString
	query := `SELECT id, owner_id, name, description, price_per_day_cents, image_key, available, created_on, updated_on
	          FROM cameras WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.Description, &c.PricePerDayCents, &imageKey, &c.Available, &c.CreatedOn, &c.UpdatedOn)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	c.ImageKey = imageKey.String
	return c, nil
}

func (r *cameraRepository) Update(ctx context.Context, c *domain.Camera) error {
	query := `UPDATE cameras SET name=$1, description=$2, price_per_day_cents=$3, image_key=$4, available=$5, updated_on=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query,
		c.Name, c.Description, c.PricePerDayCents, c.ImageKey, c.Available, time.Now(), c.ID)
	return err
}

func (r *cameraRepository) ListAvailable(ctx context.Context, page, pageSize int32) ([]domain.Camera, int32, error) {
	return r.list(ctx, `available = true`, nil, page, pageSize)
}

func (r *cameraRepository) ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Camera, int32, error) {
	return r.list(ctx, `owner_id = $1`, []interface{}{ownerID}, page, pageSize)
}

func (r *cameraRepository) list(ctx context.Context, where string, args []interface{}, page, pageSize int32) ([]domain.Camera, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	countQuery := `SELECT count(*) FROM cameras WHERE ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, owner_id, name, description, price_per_day_cents, image_key, available, created_on, updated_on
	          FROM cameras WHERE ` + where + ` ORDER BY created_on DESC`
	if len(args) == 0 {
		query += ` LIMIT $1 OFFSET $2`
	} else {
		query += ` LIMIT $2 OFFSET $3`
	}
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var cameras []domain.Camera
	for rows.Next() {
		var c domain.Camera
		var imageKey sql.NullString
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Description, &c.PricePerDayCents, &imageKey, &c.Available, &c.CreatedOn, &c.UpdatedOn); err != nil {
			return nil, 0, err
		}
		c.ImageKey = imageKey.String
		cameras = append(cameras, c)
	}
	return cameras, count, rows.Err()
}
