// internal/dashboard/actions.go
package dashboard

import "pizza-dashboard/internal/models"

// Action is anything Reduce accepts: user intents from the presentation layer
// and the results of tasks the runtime executed.
type Action interface {
	Name() string
}

// Intents.
type (
	// Mount (re)enters the dashboard as principal. Local copies of franchises
	// and users are discarded.
	Mount struct{ Principal *models.Principal }

	// Refresh reloads the franchise page currently requested.
	Refresh struct{}

	RequestFranchisePage  struct{ Delta int }
	SubmitFranchiseFilter struct{ Text string }

	OpenUserList  struct{}
	CloseUserList struct{}

	SetUserSearch   struct{ Text string }
	RequestUserPage struct{ Delta int }

	RequestDeleteUser struct{ ID models.ID }

	RequestCloseFranchise struct{ Franchise models.Franchise }
	RequestCloseStore     struct {
		Franchise models.Franchise
		Store     models.Store
	}
	RequestCreateFranchise struct{}

	// DismissError clears the surfaced error banner.
	DismissError struct{}
)

// Task results.
type (
	FranchisesLoaded struct {
		Seq     uint64
		Page    int
		Size    int
		Pattern string
		List    models.FranchiseList
	}
	FranchisesFailed struct {
		Seq uint64
		Err error
	}

	UsersLoaded struct {
		Seq   uint64
		Users []models.User
	}
	UsersFailed struct {
		Seq uint64
		Err error
	}

	UserDeleted  struct{ ID models.ID }
	DeleteFailed struct {
		ID  models.ID
		Err error
	}
)

func (Mount) Name() string                  { return "mount" }
func (Refresh) Name() string                { return "refresh" }
func (RequestFranchisePage) Name() string   { return "franchise_page" }
func (SubmitFranchiseFilter) Name() string  { return "franchise_filter" }
func (OpenUserList) Name() string           { return "open_user_list" }
func (CloseUserList) Name() string          { return "close_user_list" }
func (SetUserSearch) Name() string          { return "user_search" }
func (RequestUserPage) Name() string        { return "user_page" }
func (RequestDeleteUser) Name() string      { return "delete_user" }
func (RequestCloseFranchise) Name() string  { return "close_franchise" }
func (RequestCloseStore) Name() string      { return "close_store" }
func (RequestCreateFranchise) Name() string { return "create_franchise" }
func (DismissError) Name() string           { return "dismiss_error" }
func (FranchisesLoaded) Name() string       { return "franchises_loaded" }
func (FranchisesFailed) Name() string       { return "franchises_failed" }
func (UsersLoaded) Name() string            { return "users_loaded" }
func (UsersFailed) Name() string            { return "users_failed" }
func (UserDeleted) Name() string            { return "user_deleted" }
func (DeleteFailed) Name() string           { return "delete_failed" }

// Task describes I/O the runtime performs on behalf of Reduce.
type Task interface {
	task()
}

type (
	LoadFranchisesTask struct {
		Seq     uint64
		Page    int
		Size    int
		Pattern string
	}
	LoadUsersTask  struct{ Seq uint64 }
	DeleteUserTask struct{ ID models.ID }
	NavigateTask   struct{ Navigation Navigation }
)

func (LoadFranchisesTask) task() {}
func (LoadUsersTask) task()      {}
func (DeleteUserTask) task()     {}
func (NavigateTask) task()       {}

// Navigation targets handed to the confirmation and creation flows.
const (
	NavCreateFranchise = "/admin-dashboard/create-franchise"
	NavCloseFranchise  = "/admin-dashboard/close-franchise"
	NavCloseStore      = "/admin-dashboard/close-store"
)

// Navigation hands the selected entities to another flow.
type Navigation struct {
	Target    string
	Franchise *models.Franchise
	Store     *models.Store
}
