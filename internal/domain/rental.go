package domain

import "fmt"

type RentalStatus string

const (
	RentalStatusPending          RentalStatus = "PENDING"
	RentalStatusApproved         RentalStatus = "APPROVED"
	RentalStatusPaymentPending   RentalStatus = "PAYMENT_PENDING"
	RentalStatusPaymentConfirmed RentalStatus = "PAYMENT_CONFIRMED"
	RentalStatusRejected         RentalStatus = "REJECTED"
	RentalStatusCancelled        RentalStatus = "CANCELLED"
)

type PaymentMethod string

const (
	PaymentMethodOnline     PaymentMethod = "online"
	PaymentMethodFaceToFace PaymentMethod = "face-to-face"
)

// RentalAction is a lifecycle operation on a rental request.
type RentalAction string

const (
	ActionApprove        RentalAction = "approve"
	ActionReject         RentalAction = "reject"
	ActionCancel         RentalAction = "cancel"
	ActionSubmitPayment  RentalAction = "submit payment for"
	ActionConfirmPayment RentalAction = "confirm payment for"
)

// transitions is the single source of truth for the rental state machine.
// Every action is valid from exactly one status.
var transitions = map[RentalAction][2]RentalStatus{
	ActionApprove:        {RentalStatusPending, RentalStatusApproved},
	ActionReject:         {RentalStatusPending, RentalStatusRejected},
	ActionCancel:         {RentalStatusPending, RentalStatusCancelled},
	ActionSubmitPayment:  {RentalStatusApproved, RentalStatusPaymentPending},
	ActionConfirmPayment: {RentalStatusPaymentPending, RentalStatusPaymentConfirmed},
}

// NextStatus resolves the status an action moves a rental into. It returns
// ErrInvalidTransition when the action is not defined for the current status.
func NextStatus(current RentalStatus, action RentalAction) (RentalStatus, error) {
	t, ok := transitions[action]
	if !ok || t[0] != current {
		return "", fmt.Errorf("%w: cannot %s a rental in status %s", ErrInvalidTransition, action, current)
	}
	return t[1], nil
}

// IsTerminal reports whether no further transitions exist from the status.
func (s RentalStatus) IsTerminal() bool {
	switch s {
	case RentalStatusRejected, RentalStatusCancelled, RentalStatusPaymentConfirmed:
		return true
	}
	return false
}

// BlocksAvailability reports whether a rental in this status holds its
// camera's dates. Only rejected and cancelled rentals release them.
func (s RentalStatus) BlocksAvailability() bool {
	return s != RentalStatusRejected && s != RentalStatusCancelled
}

type Rental struct {
	ID       int32 `json:"id"`
	CameraID int32 `json:"camera_id"`
	RenterID int32 `json:"renter_id"`
	OwnerID  int32 `json:"owner_id"`
	// Inclusive calendar dates, "YYYY-MM-DD". A rental ending on day D and
	// another starting on day D conflict.
	StartDate       string        `json:"start_date"`
	EndDate         string        `json:"end_date"`
	TotalPriceCents int32         `json:"total_price_cents"`
	Status          RentalStatus  `json:"status"`
	PaymentMethod   PaymentMethod `json:"payment_method,omitempty"`
	TransactionRef  string        `json:"transaction_ref,omitempty"`
	PaymentProofKey string        `json:"payment_proof_key,omitempty"`
	RenterName      string        `json:"renter_name"`
	RenterPhone     string        `json:"renter_phone"`
	RenterAddress   string        `json:"renter_address"`
	PickupTime      string        `json:"pickup_time"`
	CreatedOn       string        `json:"created_on"`
	UpdatedOn       string        `json:"updated_on"`
}
