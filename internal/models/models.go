package models

import (
	"database/sql"
	"time"
)

// Provider represents an entity that publishes food listings
type Provider struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Type      string    `db:"type" json:"type"`
	Address   string    `db:"address" json:"address"`
	City      string    `db:"city" json:"city"`
	Contact   string    `db:"contact" json:"contact"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Receiver represents an entity that claims food listings
type Receiver struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Type      string    `db:"type" json:"type"`
	City      string    `db:"city" json:"city"`
	Contact   string    `db:"contact" json:"contact"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Listing represents a postable quantity of surplus food.
// ProviderID is nullable: deleting a provider leaves its listings
// with a dangling reference that readers must tolerate.
type Listing struct {
	ID           int64         `db:"id" json:"id"`
	FoodName     string        `db:"food_name" json:"food_name"`
	Quantity     int           `db:"quantity" json:"quantity"`
	ExpiryDate   time.Time     `db:"expiry_date" json:"expiry_date"`
	ProviderID   sql.NullInt64 `db:"provider_id" json:"provider_id,omitempty"`
	ProviderType string        `db:"provider_type" json:"provider_type,omitempty"`
	City         string        `db:"city" json:"city"`
	FoodType     string        `db:"food_type" json:"food_type"`
	MealType     string        `db:"meal_type" json:"meal_type"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
}

// Claim represents a receiver's reservation of quantity from a listing.
// Immutable after creation except for Status.
type Claim struct {
	ID         int64     `db:"id" json:"id"`
	ListingID  int64     `db:"listing_id" json:"listing_id"`
	ReceiverID int64     `db:"receiver_id" json:"receiver_id"`
	Quantity   int       `db:"quantity" json:"quantity"`
	Status     string    `db:"status" json:"status"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Claim statuses. The set is open: any status may be set at any time
// by operator action, no transition table is enforced.
const (
	ClaimStatusPending   = "Pending"
	ClaimStatusCompleted = "Completed"
	ClaimStatusCancelled = "Cancelled"
)

// ValidClaimStatus reports whether s is one of the known claim statuses.
func ValidClaimStatus(s string) bool {
	switch s {
	case ClaimStatusPending, ClaimStatusCompleted, ClaimStatusCancelled:
		return true
	}
	return false
}

// JoinedListing is a listing with its provider's contact details joined in.
// Provider columns are nullable because the join is a LEFT JOIN.
type JoinedListing struct {
	ID           int64          `db:"id" json:"id"`
	FoodName     string         `db:"food_name" json:"food_name"`
	Quantity     int            `db:"quantity" json:"quantity"`
	ExpiryDate   time.Time      `db:"expiry_date" json:"expiry_date"`
	City         string         `db:"city" json:"city"`
	FoodType     string         `db:"food_type" json:"food_type"`
	MealType     string         `db:"meal_type" json:"meal_type"`
	ProviderID   sql.NullInt64  `db:"provider_id" json:"provider_id,omitempty"`
	ProviderName sql.NullString `db:"provider_name" json:"provider_name,omitempty"`
	ProviderType sql.NullString `db:"provider_type" json:"provider_type,omitempty"`
	Contact      sql.NullString `db:"contact" json:"contact,omitempty"`
	Address      sql.NullString `db:"address" json:"address,omitempty"`
}

// CityProviderCount is the number of providers registered in a city.
type CityProviderCount struct {
	City  string `db:"city" json:"city"`
	Count int64  `db:"count" json:"count"`
}

// FoodTypeCount is the number of listings of a given food type.
type FoodTypeCount struct {
	FoodType string `db:"food_type" json:"food_type"`
	Count    int64  `db:"count" json:"count"`
}

// MealTypeClaimed is the total quantity claimed for a meal type.
type MealTypeClaimed struct {
	MealType     string `db:"meal_type" json:"meal_type"`
	TotalClaimed int64  `db:"total_claimed" json:"total_claimed"`
}

// DashboardCounts are the headline row counts for the dashboard view.
type DashboardCounts struct {
	Providers int64 `db:"providers" json:"providers"`
	Receivers int64 `db:"receivers" json:"receivers"`
	Listings  int64 `db:"listings" json:"listings"`
	Claims    int64 `db:"claims" json:"claims"`
}
