// internal/dashboard/filter.go
package dashboard

import (
	"strings"

	"pizza-dashboard/internal/models"
)

// BrowsePattern is the name filter used when no franchise filter was submitted.
const BrowsePattern = "*"

// FilterUsers keeps users whose name or email contains text, ignoring case.
// Empty text keeps everyone. Order is preserved.
func FilterUsers(users []models.User, text string) []models.User {
	out := make([]models.User, 0, len(users))
	if text == "" {
		return append(out, users...)
	}

	needle := strings.ToLower(text)
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), needle) || strings.Contains(strings.ToLower(u.Email), needle) {
			out = append(out, u)
		}
	}
	return out
}

// Paginate returns list[page*size : page*size+size] clamped to the list bounds.
func Paginate(list []models.User, pageIndex, pageSize int) []models.User {
	if pageIndex < 0 || pageSize <= 0 {
		return []models.User{}
	}
	start := pageIndex * pageSize
	if start >= len(list) {
		return []models.User{}
	}
	end := start + pageSize
	if end > len(list) {
		end = len(list)
	}
	return append([]models.User{}, list[start:end]...)
}

// TotalPages is ceil(n/pageSize), never less than 1.
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 || n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// FranchisePattern wraps raw filter input in wildcards. The text is used as
// typed; a literal "*" in it stays a wildcard.
func FranchisePattern(text string) string {
	return "*" + text + "*"
}

// RemoveUser drops every user whose id matches. Absent ids leave the list as is.
func RemoveUser(users []models.User, id models.ID) []models.User {
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.ID != id {
			out = append(out, u)
		}
	}
	return out
}
