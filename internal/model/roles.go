package model

// Role is a logical function a target entity fulfills, independent of
// its generated identifier. Later stages resolve attachments through the
// role, never through a guessed ID.
type Role string

const (
	RolePrimaryHeating Role = "primary-heating"
	RoleBackupHeating  Role = "backup-heating"
	RoleCooling        Role = "cooling"
	RoleWaterHeating   Role = "water-heating"
	RoleDistribution   Role = "distribution"
	RoleVentilation    Role = "ventilation"
)

// WallRole names an enclosure wall by its source component id. Windows
// and doors resolve their attachment through this role, so a duplicate
// wall id in the source surfaces as a consistency error instead of a
// silently rebound reference.
func WallRole(sourceID string) Role {
	return Role("wall:" + sourceID)
}

// rebindableRoles lists roles that may legitimately be re-registered
// within one run. Backup heating is rebindable: a heat pump's backup can
// itself be staged equipment, and the last stage registered wins. Every
// other role is bound exactly once in real documents, so a second
// registration there is treated as a bug, not an overwrite.
var rebindableRoles = map[Role]bool{
	RoleBackupHeating: true,
}

// Rebindable reports whether the role may be registered more than once.
func (r Role) Rebindable() bool {
	return rebindableRoles[r]
}
