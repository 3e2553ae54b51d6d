// Package policy centralizes role-derived access decisions so handlers
// and services never compare role strings directly.
package policy

import "reviewhub/internal/http-api/models"

// CanManageCatalog reports whether the role may create or delete
// categories, genres and titles. Reads are open to everyone.
func CanManageCatalog(role models.Role) bool {
	return role.AtLeast(models.RoleAdmin)
}

// CanManageUsers reports whether the role may administer other accounts.
func CanManageUsers(role models.Role) bool {
	return role.AtLeast(models.RoleAdmin)
}

// CanModerate reports whether the role may edit or delete content it
// does not own.
func CanModerate(role models.Role) bool {
	return role.AtLeast(models.RoleModerator)
}

// CanEditContribution decides update/delete access to a review or
// comment: the original author, moderators and admins qualify.
func CanEditContribution(actorID string, actorRole models.Role, authorID string) bool {
	return actorID == authorID || CanModerate(actorRole)
}
