package domain

import "context"

type StaffRepository interface {
	// CreateStaffWithBalance creates the staff row and its empty balance
	// row in one transaction. No implicit post-creation hooks.
	CreateStaffWithBalance(ctx context.Context, staff *Staff) error
	GetStaffByID(ctx context.Context, staffID string) (*Staff, error)
}

// OwnershipGraphReader resolves which restaurants and stores an actor is
// associated with. Read-only input to the visibility engine.
type OwnershipGraphReader interface {
	RestaurantIDsForSalesAgent(ctx context.Context, agentID string) ([]string, error)
	RestaurantIDsForOwner(ctx context.Context, ownerID string) ([]string, error)
	StoreIDsForRestaurants(ctx context.Context, restaurantIDs []string) ([]string, error)
}
