package domain

type UserRole string

const (
	UserRoleBuyer  UserRole = "buyer"
	UserRoleSeller UserRole = "seller"
	UserRoleAdmin  UserRole = "admin"
)

type AccountStatus string

const (
	AccountStatusPending  AccountStatus = "PENDING"
	AccountStatusApproved AccountStatus = "APPROVED"
	AccountStatusBlocked  AccountStatus = "BLOCKED"
)

type User struct {
	ID           int32         `json:"id"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	Name         string        `json:"name"`
	Phone        string        `json:"phone"`
	Role         UserRole      `json:"role"`
	Status       AccountStatus `json:"status"`
	// Identity document uploaded during seller verification; opaque storage key.
	IDDocumentKey string `json:"id_document_key,omitempty"`
	CreatedOn     string `json:"created_on"`
}
