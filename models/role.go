package models

import "github.com/ethereum/go-ethereum/common"

// RoleInfo is the combined result of the contract's getAllAdminInfo query,
// evaluated from the caller's address.
type RoleInfo struct {
	TotalAdmins uint64
	IsAdmin     bool
	IsOwner     bool
}

// RoleView is the single display state derived from a RoleInfo. Exactly one
// view applies at a time.
type RoleView int

const (
	// RoleUser can verify and (stub) transfer certificates only.
	RoleUser RoleView = iota
	// RoleManufacturer can additionally issue and revoke certificates.
	RoleManufacturer
	// RoleOwner has full access including admin roster management.
	RoleOwner
)

func (v RoleView) String() string {
	switch v {
	case RoleOwner:
		return "owner"
	case RoleManufacturer:
		return "manufacturer"
	default:
		return "user"
	}
}

// View derives the mutually exclusive display state. Owner wins over admin.
func (r RoleInfo) View() RoleView {
	switch {
	case r.IsOwner:
		return RoleOwner
	case r.IsAdmin:
		return RoleManufacturer
	default:
		return RoleUser
	}
}

// RoleState is a snapshot of the caller's permissions plus the roster
// summary fetched for owners. Never cached; every refresh re-queries.
type RoleState struct {
	Info  RoleInfo
	View  RoleView
	Owner common.Address // zero unless View == RoleOwner
}

// AddressRole classifies an arbitrary address checked through the owner
// tooling.
type AddressRole int

const (
	AddressRoleNone AddressRole = iota
	AddressRoleAdmin
	AddressRoleOwner
)

func (r AddressRole) String() string {
	switch r {
	case AddressRoleOwner:
		return "owner (has admin rights)"
	case AddressRoleAdmin:
		return "admin"
	default:
		return "not an admin"
	}
}
