package constants

import (
	"fmt"

	adminModel "chilume_backend/internals/features/users/admins/model"
)

const (
	RoleAdmin      = adminModel.RoleAdmin
	RoleSuperAdmin = adminModel.RoleSuperAdmin
)

// role error templates
const (
	ErrOnlyAdminsCanAccess      = "Only organizers can access %s."
	ErrOnlySuperAdminsCanAccess = "Only the super admin can access %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorSuperAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlySuperAdminsCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AdminRoles     = []string{RoleAdmin, RoleSuperAdmin}
	SuperAdminOnly = []string{RoleSuperAdmin}
)
