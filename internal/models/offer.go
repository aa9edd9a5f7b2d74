package models

// Offer is a time-bounded discount applied at admission.
type Offer struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	DiscountPercent int    `json:"discountPercent"`
	ValidFrom       Date   `json:"validFrom"`
	ValidTo         Date   `json:"validTo"`
	IsActive        bool   `json:"isActive"`
	Remarks         string `json:"remarks,omitempty"`
}
