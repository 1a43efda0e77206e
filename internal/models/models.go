package models

import "time"

// Swap status values. Transitions are owner-triggered and unrestricted:
// any status may move to any other.
const (
	SwapStatusInactive = "Inactive"
	SwapStatusLive     = "Live"
	SwapStatusComplete = "Complete"
)

// Claim status values. Rejected and Canceled are terminal.
const (
	ClaimStatusPending  = "Pending"
	ClaimStatusAccepted = "Accepted"
	ClaimStatusRejected = "Rejected"
	ClaimStatusCanceled = "Canceled"
)

const (
	// MaxTotalBottles caps a single swap. This is mostly troll prevention.
	MaxTotalBottles = 100

	// DefaultMaxIncrement is the per-claim bottle cap when the creator
	// does not specify one.
	DefaultMaxIncrement = 6
)

// User represents an authenticated account in the system
type User struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// Brewer is a user's brewing profile. A profile is required before any
// swap or claim operation. Location is used for proximity search and is
// never shown to other users.
type Brewer struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	PhoneNumber string    `json:"phone_number"`
	CanClaim    bool      `json:"can_claim"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BrewType is a catalog entry (IPA, Lager, ...)
type BrewType struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// Quality is a catalog entry describing a brew (Hoppy, Dark, ...)
type Quality struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// Brew is an immutable brewing record owned by one brewer. A brew has at
// most one swap and backs at most one active claim.
type Brew struct {
	ID             string     `json:"id"`
	BrewTypeID     string     `json:"brew_type_id"`
	CreatorID      string     `json:"creator_id"`
	QualityIDs     []string   `json:"quality_ids,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	CompletionDate *time.Time `json:"completion_date,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// BrewSwap is one brewer's offer to swap bottles of one specific brew.
// The available bottle count is derived from the claim set and never persisted.
type BrewSwap struct {
	ID           string    `json:"id"`
	BrewID       string    `json:"brew_id"`
	CreatorID    string    `json:"creator_id"`
	Status       string    `json:"status"`
	TotalBottles int       `json:"total_bottles"`
	MaxIncrement int       `json:"max_increment"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SwapClaim is one brewer's request for bottles from a swap, backed by a
// brew the claimant owns. SwapID is nullable: deleting a swap detaches
// its claims rather than deleting them.
type SwapClaim struct {
	ID         string    `json:"id"`
	BrewID     string    `json:"brew_id"`
	SwapID     *string   `json:"swap_id"`
	CreatorID  string    `json:"creator_id"`
	NumBottles int       `json:"num_bottles"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NearbySwap is a swap found by proximity search, with the great-circle
// distance from the origin in meters.
type NearbySwap struct {
	BrewSwap
	DistanceMeters float64 `json:"distance_m"`
}
