package domain

// CartItem is a snapshot of a camera at the time it was added to the cart.
// Checkout prices rentals from the snapshot, not the live listing.
type CartItem struct {
	CameraID         int32  `json:"camera_id"`
	OwnerID          int32  `json:"owner_id"`
	Name             string `json:"name"`
	PricePerDayCents int32  `json:"price_per_day_cents"`
}
