package enum

// Role names seeded into the roles table
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleStaff   = "STAFF"
	RoleCoach   = "COACH"
)

// Permission names seeded into the permissions table
const (
	PermViewMembers       = "canViewMembers"
	PermEditMembers       = "canEditMembers"
	PermViewPT            = "canViewPT"
	PermEditPT            = "canEditPT"
	PermViewNutrition     = "canViewNutrition"
	PermEditNutrition     = "canEditNutrition"
	PermViewPhysiotherapy = "canViewPhysiotherapy"
	PermEditPhysiotherapy = "canEditPhysiotherapy"
	PermViewReceipts      = "canViewReceipts"
	PermCreateReceipts    = "canCreateReceipts"
	PermViewStaff         = "canViewStaff"
	PermEditStaff         = "canEditStaff"
	PermViewCommissions   = "canViewCommissions"
	PermAccessSettings    = "canAccessSettings"
	PermManageUsers       = "canManageUsers"
)

// AllPermissions lists every permission in seeding order
func AllPermissions() []string {
	return []string{
		PermViewMembers, PermEditMembers,
		PermViewPT, PermEditPT,
		PermViewNutrition, PermEditNutrition,
		PermViewPhysiotherapy, PermEditPhysiotherapy,
		PermViewReceipts, PermCreateReceipts,
		PermViewStaff, PermEditStaff,
		PermViewCommissions, PermAccessSettings, PermManageUsers,
	}
}

// DefaultRolePermissions is the permission set each non-admin role starts with.
// ADMIN is granted everything and bypasses checks.
func DefaultRolePermissions() map[string][]string {
	return map[string][]string{
		RoleManager: {
			PermViewMembers, PermEditMembers,
			PermViewPT, PermEditPT, PermViewNutrition, PermEditNutrition,
			PermViewPhysiotherapy, PermEditPhysiotherapy,
			PermViewReceipts, PermCreateReceipts, PermViewStaff, PermEditStaff,
			PermViewCommissions,
		},
		RoleStaff: {
			PermViewMembers, PermEditMembers,
			PermViewPT, PermViewNutrition, PermViewPhysiotherapy,
			PermViewReceipts, PermCreateReceipts,
		},
		RoleCoach: {
			PermViewMembers, PermViewPT, PermViewNutrition, PermViewPhysiotherapy,
			PermViewCommissions,
		},
	}
}

// ViewPermission returns the permission guarding reads of a domain's sessions
func (d ServiceDomain) ViewPermission() string {
	switch d {
	case DomainNutrition:
		return PermViewNutrition
	case DomainPhysiotherapy:
		return PermViewPhysiotherapy
	}
	return PermViewPT
}

// EditPermission returns the permission guarding writes of a domain's sessions
func (d ServiceDomain) EditPermission() string {
	switch d {
	case DomainNutrition:
		return PermEditNutrition
	case DomainPhysiotherapy:
		return PermEditPhysiotherapy
	}
	return PermEditPT
}
