package model

import "time"

// PaymentMethod is a saved payment instrument, stored in the
// `payment_methods` table.  At most one method per user is the default.
// Card data is display-only: network, last four digits and expiry, no
// full numbers.
//
// Fields:
//  ID           – primary key (UUID string).
//  UserID       – owning user.
//  PaymentType  – upi, card, ...
//  CardNetwork  – optional card network (visa, mastercard, ...).
//  CardLastFour – optional last four digits for display.
//  Nickname     – optional user-chosen label.
//  ExpiryDate   – optional expiry in MM/YY form.
//  IsDefault    – whether this is the user's default method.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type PaymentMethod struct {
	ID           string    // payment_methods.id
	UserID       uint64    // payment_methods.user_id
	PaymentType  string    // payment_methods.payment_type
	CardNetwork  *string   // payment_methods.card_network (nullable)
	CardLastFour *string   // payment_methods.card_last_four (nullable)
	Nickname     *string   // payment_methods.nickname (nullable)
	ExpiryDate   *string   // payment_methods.expiry_date (nullable)
	IsDefault    bool      // payment_methods.is_default
	CreatedAt    time.Time // payment_methods.created_at
	UpdatedAt    time.Time // payment_methods.updated_at
}
