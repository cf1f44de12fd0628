package domain

type Camera struct {
	ID               int32  `json:"id"`
	OwnerID          int32  `json:"owner_id"`
	Owner            *User  `json:"owner,omitempty"` // Populated when fetching camera details
	Name             string `json:"name"`
	Description      string `json:"description"`
	PricePerDayCents int32  `json:"price_per_day_cents"`
	ImageKey         string `json:"image_key,omitempty"`
	Available        bool   `json:"available"`
	CreatedOn        string `json:"created_on"`
	UpdatedOn        string `json:"updated_on"`
}
