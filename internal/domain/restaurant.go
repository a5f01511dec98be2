package domain

import "time"

// Restaurant has one owner and optionally one assigned sales agent. The
// restaurant/store graph is read-only input to the visibility engine.
type Restaurant struct {
	ID           string
	Name         string
	OwnerID      string
	SalesAgentID string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Store belongs to exactly one restaurant.
type Store struct {
	ID            string
	Name          string
	RestaurantID  string
	BannerMessage string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StoreUser assigns a staff member to a store with a role.
type StoreUser struct {
	StoreID   string
	StaffID   string
	Role      RoleKind
	CreatedAt time.Time
}

// RestaurantUser assigns a staff member to a restaurant with a role.
type RestaurantUser struct {
	RestaurantID string
	StaffID      string
	Role         RoleKind
	CreatedAt    time.Time
}
