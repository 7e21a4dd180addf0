package dashboard

import "pizza-dashboard/internal/models"

// HasRole reports whether principal holds role. A nil principal holds nothing.
func HasRole(principal *models.Principal, role models.Role) bool {
	if principal == nil {
		return false
	}
	return principal.User.HasRole(role)
}

// CanAdminister gates the whole admin dashboard.
func CanAdminister(principal *models.Principal) bool {
	return HasRole(principal, models.RoleAdmin)
}
