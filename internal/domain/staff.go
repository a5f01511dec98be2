package domain

import "time"

type RoleKind string

const (
	RoleSuperAdmin      RoleKind = "super_admin"
	RoleFCAdmin         RoleKind = "fc_admin"
	RoleGlowAdmin       RoleKind = "glow_admin"
	RoleSalesAgent      RoleKind = "sales_agent"
	RoleRestaurantStaff RoleKind = "restaurant_staff"
	RoleRestaurantOwner RoleKind = "restaurant_owner"
	RoleConsumer        RoleKind = "consumer"
	RoleUndefined       RoleKind = "undefined"
)

// IsAdmin reports whether the role sees the whole platform.
func (r RoleKind) IsAdmin() bool {
	return r == RoleSuperAdmin || r == RoleFCAdmin || r == RoleGlowAdmin
}

type Staff struct {
	ID        string
	Name      string
	Email     string
	Kind      RoleKind
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Actor is the authenticated identity passed explicitly into every core
// operation. The auth layer resolves it; the core trusts Kind and ID as given.
type Actor struct {
	ID   string
	Kind RoleKind
}

// AnonymousActor has no role and resolves to a deny-all scope.
var AnonymousActor = Actor{Kind: RoleUndefined}
