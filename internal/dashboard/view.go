package dashboard

import "pizza-dashboard/internal/models"

// View is the render-ready projection of State.
type View struct {
	NotFound bool

	FranchisePage    models.FranchiseList
	FranchiseIndex   int
	FranchiseFilter  string
	FranchiseLoading bool
	HasMore          bool
	HasPrevious      bool

	UserList            []models.User
	FilteredUsers       []models.User
	PagedUsers          []models.User
	UserSearch          string
	CurrentUserPage     int
	TotalUserPages      int
	HasNextUserPage     bool
	HasPreviousUserPage bool

	Modal        ModalState
	ModalOpen    bool
	ModalLoading bool

	Error          *Failure
	RowErrors      map[models.ID]string
	Deleting       map[models.ID]bool
	Reauthenticate bool
	AccessDenied   bool

	// Navigation is set only on the view returned by the dispatch that
	// produced it.
	Navigation *Navigation
}

// View derives the render-ready state. The same State always yields the same View.
func (s State) View() View {
	size := s.Settings.withDefaults().UserPageSize
	filtered := FilterUsers(s.Users, s.UserSearch)

	rowErrors := make(map[models.ID]string, len(s.RowErrors))
	for k, v := range s.RowErrors {
		rowErrors[k] = v
	}
	deleting := make(map[models.ID]bool, len(s.deleting))
	for k, v := range s.deleting {
		deleting[k] = v
	}

	franchises := s.FranchisePage
	franchises.Franchises = append([]models.Franchise{}, s.FranchisePage.Franchises...)

	return View{
		NotFound:         s.NotFound,
		FranchisePage:    franchises,
		FranchiseIndex:   s.FranchiseIndex,
		FranchiseFilter:  s.FranchiseFilter,
		FranchiseLoading: s.FranchiseLoading,
		HasMore:          s.FranchisePage.More,
		HasPrevious:      s.FranchiseIndex > 0,

		UserList:            append([]models.User{}, s.Users...),
		FilteredUsers:       filtered,
		PagedUsers:          Paginate(filtered, s.UserPage, size),
		UserSearch:          s.UserSearch,
		CurrentUserPage:     s.UserPage,
		TotalUserPages:      TotalPages(len(filtered), size),
		HasNextUserPage:     (s.UserPage+1)*size < len(filtered),
		HasPreviousUserPage: s.UserPage > 0,

		Modal:        s.Modal,
		ModalOpen:    s.Modal == ModalOpen,
		ModalLoading: s.Modal == ModalLoading,

		Error:          s.Error,
		RowErrors:      rowErrors,
		Deleting:       deleting,
		Reauthenticate: s.Reauthenticate,
		AccessDenied:   s.AccessDenied,
	}
}

// DisplayUserPage is the 1-based page number shown as "Page N of M".
func (v View) DisplayUserPage() int {
	return v.CurrentUserPage + 1
}
