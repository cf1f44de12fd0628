package postgres

import (
	"database/sql"

	"github.com/Ubaid-2/Camera-rental/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.CameraRepository
	repository.RentalRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		CameraRepository:       NewCameraRepository(db),
		RentalRepository:       NewRentalRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
