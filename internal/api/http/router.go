package http

import (
	"net/http"

	"github.com/Ubaid-2/Camera-rental/internal/security"
	"github.com/Ubaid-2/Camera-rental/internal/service"
	"github.com/Ubaid-2/Camera-rental/internal/storage"

	"github.com/gorilla/mux"
)

// Services bundles everything the HTTP layer depends on.
type Services struct {
	Auth         service.AuthService
	User         service.UserService
	Camera       service.CameraService
	Cart         service.CartService
	Rental       service.RentalService
	Availability service.AvailabilityChecker
	Notification service.NotificationService
	Admin        service.AdminService
	Tokens       security.TokenManager
	BlobStore    storage.BlobStorage
}

// NewRouter builds the full API route table.
func NewRouter(s Services) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware)

	api := r.PathPrefix("/api/v1").Subrouter()

	authHandler := NewAuthHandler(s.Auth)
	userHandler := NewUserHandler(s.User)
	cameraHandler := NewCameraHandler(s.Camera)
	cartHandler := NewCartHandler(s.Cart)
	rentalHandler := NewRentalHandler(s.Rental, s.Availability)
	noteHandler := NewNotificationHandler(s.Notification)
	adminHandler := NewAdminHandler(s.Admin)
	fileHandler := NewFileHandler(s.BlobStore)

	// Public routes
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/cameras", cameraHandler.ListAvailable).Methods(http.MethodGet)
	api.HandleFunc("/cameras/{id:[0-9]+}", cameraHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/availability", rentalHandler.CheckAvailability).Methods(http.MethodGet)
	api.HandleFunc("/files/{token}", fileHandler.Download).Methods(http.MethodGet)

	// Authenticated routes
	authed := api.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(s.Tokens))

	authed.HandleFunc("/users/me", userHandler.GetProfile).Methods(http.MethodGet)
	authed.HandleFunc("/users/me", userHandler.UpdateProfile).Methods(http.MethodPatch)
	authed.HandleFunc("/users/me/id-document", userHandler.SubmitIDDocument).Methods(http.MethodPost)

	authed.HandleFunc("/cameras", cameraHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/cameras/{id:[0-9]+}", cameraHandler.Update).Methods(http.MethodPut)
	authed.HandleFunc("/my/cameras", cameraHandler.ListMine).Methods(http.MethodGet)
	authed.HandleFunc("/uploads/listing-image", fileHandler.UploadListingImage).Methods(http.MethodPost)

	authed.HandleFunc("/cart", cartHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/cart/items", cartHandler.Add).Methods(http.MethodPost)
	authed.HandleFunc("/cart/items/{cameraID:[0-9]+}", cartHandler.Remove).Methods(http.MethodDelete)
	authed.HandleFunc("/cart", cartHandler.Clear).Methods(http.MethodDelete)
	authed.HandleFunc("/cart/checkout", rentalHandler.Checkout).Methods(http.MethodPost)

	authed.HandleFunc("/rentals", rentalHandler.ListRentals).Methods(http.MethodGet)
	authed.HandleFunc("/lendings", rentalHandler.ListLendings).Methods(http.MethodGet)
	authed.HandleFunc("/rentals/{id:[0-9]+}", rentalHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/rentals/{id:[0-9]+}/approve", rentalHandler.Approve).Methods(http.MethodPost)
	authed.HandleFunc("/rentals/{id:[0-9]+}/reject", rentalHandler.Reject).Methods(http.MethodPost)
	authed.HandleFunc("/rentals/{id:[0-9]+}/cancel", rentalHandler.Cancel).Methods(http.MethodPost)
	authed.HandleFunc("/rentals/{id:[0-9]+}/payment", rentalHandler.SubmitPayment).Methods(http.MethodPost)
	authed.HandleFunc("/rentals/{id:[0-9]+}/confirm-payment", rentalHandler.ConfirmPayment).Methods(http.MethodPost)
	authed.HandleFunc("/rentals/{id:[0-9]+}/payment-proof", rentalHandler.GetPaymentProofURL).Methods(http.MethodGet)

	authed.HandleFunc("/notifications", noteHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id:[0-9]+}/read", noteHandler.MarkAsRead).Methods(http.MethodPost)

	authed.HandleFunc("/admin/users", adminHandler.ListUsers).Methods(http.MethodGet)
	authed.HandleFunc("/admin/users/{id:[0-9]+}/approve", adminHandler.ApproveUser).Methods(http.MethodPost)
	authed.HandleFunc("/admin/users/{id:[0-9]+}/block", adminHandler.BlockUser).Methods(http.MethodPost)
	authed.HandleFunc("/admin/users/{id:[0-9]+}/id-document", adminHandler.GetIDDocumentURL).Methods(http.MethodGet)

	return r
}
