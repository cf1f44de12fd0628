package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Ubaid-2/Camera-rental/internal/domain"
	"github.com/Ubaid-2/Camera-rental/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, password_hash, name, phone, role, status, id_document_key, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		u.Email, u.PasswordHash, u.Name, u.Phone, u.Role, u.Status, u.IDDocumentKey, time.Now(),
	).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, "email = $1", email)
}

func (r *userRepository) getBy(ctx context.Context, where string, arg interface{}) (*domain.User, error) {
	u := &domain.User{}
	var docKey sql.NullString
	query := `SELECT id, email, password_hash, name, phone, role, status, id_document_key, created_on FROM users WHERE ` + where
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Phone, &u.Role, &u.Status, &docKey, &u.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.IDDocumentKey = docKey.String
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET name=$1, phone=$2, id_document_key=$3 WHERE id=$4`
	_, err := r.db.ExecContext(ctx, query, u.Name, u.Phone, u.IDDocumentKey, u.ID)
	return err
}

func (r *userRepository) UpdateStatus(ctx context.Context, id int32, status domain.AccountStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, role string, status string) ([]domain.User, error) {
	query := `SELECT id, email, password_hash, name, phone, role, status, id_document_key, created_on FROM users WHERE role <> 'admin'`
	args := []interface{}{}
	argIdx := 1
	if role != "" {
		query += fmt.Sprintf(" AND role = $%d", argIdx)
		args = append(args, role)
		argIdx++
	}
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
	}
	query += " ORDER BY created_on DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		var docKey sql.NullString
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Phone, &u.Role, &u.Status, &docKey, &u.CreatedOn); err != nil {
			return nil, err
		}
		u.IDDocumentKey = docKey.String
		users = append(users, u)
	}
	return users, rows.Err()
}
