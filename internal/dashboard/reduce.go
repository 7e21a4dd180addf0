// internal/dashboard/reduce.go
package dashboard

import (
	"pizza-dashboard/internal/common/errors"
	"pizza-dashboard/internal/models"
)

// Reduce applies action to s and returns the next state plus the I/O, if any,
// the runtime must perform. It performs no I/O itself.
func Reduce(s State, action Action) (State, Task) {
	if m, ok := action.(Mount); ok {
		return mount(s, m.Principal)
	}
	if !s.Mounted {
		return s, nil
	}
	if s.IsStale(action) {
		return s, nil
	}

	next := s.clone()
	switch a := action.(type) {
	case Refresh:
		page, size, pattern := s.requested()
		return loadFranchises(next, page, size, pattern)

	case RequestFranchisePage:
		page, size, pattern := s.requested()
		target := page + a.Delta
		if a.Delta == 0 || target < 0 {
			return s, nil
		}
		if a.Delta > 0 && !s.FranchisePage.More {
			return s, nil
		}
		return loadFranchises(next, target, size, pattern)

	case SubmitFranchiseFilter:
		page, _, _ := s.requested()
		next.FranchiseFilter = a.Text
		return loadFranchises(next, page, s.Settings.FranchiseFilterPageSize, FranchisePattern(a.Text))

	case FranchisesLoaded:
		next.pending = nil
		next.FranchiseLoading = false
		next.FranchisePage = a.List
		if next.FranchisePage.Franchises == nil {
			next.FranchisePage.Franchises = []models.Franchise{}
		}
		next.FranchiseIndex = a.Page
		next.FranchisePageSize = a.Size
		next.FranchisePattern = a.Pattern
		if next.Error != nil && next.Error.Action == (FranchisesFailed{}).Name() {
			next.Error = nil
		}
		return next, nil

	case FranchisesFailed:
		next.pending = nil
		next.FranchiseLoading = false
		return surface(next, a.Name(), a.Err), nil

	case OpenUserList:
		if s.Modal == ModalLoading {
			return s, nil
		}
		next.userSeq++
		next.Modal = ModalLoading
		return next, LoadUsersTask{Seq: next.userSeq}

	case CloseUserList:
		next.userSeq++
		next.Modal = ModalClosed
		return next, nil

	case UsersLoaded:
		next.Users = append([]models.User{}, a.Users...)
		next.Modal = ModalOpen
		next.RowErrors = map[models.ID]string{}
		next.UserPage = clampPage(next.UserPage, len(FilterUsers(next.Users, next.UserSearch)), s.Settings.UserPageSize)
		if next.Error != nil && next.Error.Action == (UsersFailed{}).Name() {
			next.Error = nil
		}
		return next, nil

	case UsersFailed:
		next.Modal = ModalClosed
		return surface(next, a.Name(), a.Err), nil

	case SetUserSearch:
		next.UserSearch = a.Text
		next.UserPage = 0
		return next, nil

	case RequestUserPage:
		target := s.UserPage + a.Delta
		total := len(FilterUsers(s.Users, s.UserSearch))
		if a.Delta == 0 || target < 0 || target >= TotalPages(total, s.Settings.UserPageSize) {
			return s, nil
		}
		next.UserPage = target
		return next, nil

	case RequestDeleteUser:
		// only rows the open user list is showing can be deleted
		if s.Modal != ModalOpen || !listsUser(s.Users, a.ID) || s.deleting[a.ID] {
			return s, nil
		}
		next.deleting[a.ID] = true
		delete(next.RowErrors, a.ID)
		return next, DeleteUserTask{ID: a.ID}

	case UserDeleted:
		return removeDeleted(next, a.ID), nil

	case DeleteFailed:
		delete(next.deleting, a.ID)
		if errors.IsNotFound(a.Err) {
			return removeDeleted(next, a.ID), nil
		}
		next.RowErrors[a.ID] = errors.UserMessage(a.Err)
		return surface(next, a.Name(), a.Err), nil

	case RequestCloseFranchise:
		f := a.Franchise
		return s, NavigateTask{Navigation: Navigation{Target: NavCloseFranchise, Franchise: &f}}

	case RequestCloseStore:
		f, st := a.Franchise, a.Store
		return s, NavigateTask{Navigation: Navigation{Target: NavCloseStore, Franchise: &f, Store: &st}}

	case RequestCreateFranchise:
		return s, NavigateTask{Navigation: Navigation{Target: NavCreateFranchise}}

	case DismissError:
		next.Error = nil
		return next, nil
	}
	return s, nil
}

// mount evaluates the access gate for principal on every call. Refused
// principals get NotFound and no task.
func mount(s State, principal *models.Principal) (State, Task) {
	next := NewState(s.Settings)
	next.franchiseSeq = s.franchiseSeq
	next.userSeq = s.userSeq + 1

	if !CanAdminister(principal) {
		next.NotFound = true
		next.franchiseSeq++
		return next, nil
	}
	next.Mounted = true
	return loadFranchises(next, 0, next.Settings.FranchisePageSize, BrowsePattern)
}

func loadFranchises(next State, page, size int, pattern string) (State, Task) {
	next.franchiseSeq++
	task := LoadFranchisesTask{Seq: next.franchiseSeq, Page: page, Size: size, Pattern: pattern}
	next.pending = &task
	next.FranchiseLoading = true
	return next, task
}

func listsUser(users []models.User, id models.ID) bool {
	for _, u := range users {
		if u.ID == id {
			return true
		}
	}
	return false
}

func removeDeleted(next State, id models.ID) State {
	delete(next.deleting, id)
	delete(next.RowErrors, id)
	next.Users = RemoveUser(next.Users, id)
	next.UserPage = clampPage(next.UserPage, len(FilterUsers(next.Users, next.UserSearch)), next.Settings.UserPageSize)
	return next
}

func surface(next State, action string, err error) State {
	next.Error = newFailure(action, err)
	if errors.IsUnauthorized(err) {
		next.Reauthenticate = true
	}
	if errors.IsForbidden(err) {
		next.AccessDenied = true
	}
	return next
}

// clampPage keeps page within [0, TotalPages-1].
func clampPage(page, n, size int) int {
	last := TotalPages(n, size) - 1
	if page > last {
		return last
	}
	if page < 0 {
		return 0
	}
	return page
}
