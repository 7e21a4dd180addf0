// internal/dashboard/state.go
package dashboard

import (
	"pizza-dashboard/internal/common/errors"
	"pizza-dashboard/internal/models"
)

// ModalState is the user list overlay lifecycle: Closed -> Loading -> Open -> Closed.
type ModalState int

const (
	ModalClosed ModalState = iota
	ModalLoading
	ModalOpen
)

func (m ModalState) String() string {
	switch m {
	case ModalLoading:
		return "loading"
	case ModalOpen:
		return "open"
	default:
		return "closed"
	}
}

type Settings struct {
	UserPageSize            int
	FranchisePageSize       int
	FranchiseFilterPageSize int
}

func DefaultSettings() Settings {
	return Settings{UserPageSize: 10, FranchisePageSize: 3, FranchiseFilterPageSize: 10}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.UserPageSize <= 0 {
		s.UserPageSize = d.UserPageSize
	}
	if s.FranchisePageSize <= 0 {
		s.FranchisePageSize = d.FranchisePageSize
	}
	if s.FranchiseFilterPageSize <= 0 {
		s.FranchiseFilterPageSize = d.FranchiseFilterPageSize
	}
	return s
}

// Failure is a surfaced Directory Service error.
type Failure struct {
	Action    string
	Code      errors.ErrorCode
	Message   string
	Retryable bool
}

func newFailure(action string, err error) *Failure {
	stdErr := errors.Normalize(err)
	return &Failure{
		Action:    action,
		Code:      stdErr.Code,
		Message:   errors.UserMessage(stdErr),
		Retryable: stdErr.Retryable,
	}
}

// State is the whole dashboard model. It is a value: Reduce returns a new
// State and never mutates the one passed in.
type State struct {
	Settings Settings

	Mounted  bool
	NotFound bool

	FranchisePage     models.FranchiseList
	FranchiseIndex    int
	FranchisePattern  string
	FranchisePageSize int
	FranchiseFilter   string
	FranchiseLoading  bool

	Users      []models.User
	UserSearch string
	UserPage   int
	Modal      ModalState

	Error          *Failure
	RowErrors      map[models.ID]string
	Reauthenticate bool
	AccessDenied   bool

	// pending is the franchise request in flight, if any.
	pending      *LoadFranchisesTask
	franchiseSeq uint64
	userSeq      uint64
	deleting     map[models.ID]bool
}

// NewState returns an unmounted state.
func NewState(settings Settings) State {
	settings = settings.withDefaults()
	return State{
		Settings:          settings,
		FranchisePage:     models.FranchiseList{Franchises: []models.Franchise{}},
		FranchisePattern:  BrowsePattern,
		FranchisePageSize: settings.FranchisePageSize,
		Users:             []models.User{},
		RowErrors:         map[models.ID]string{},
		deleting:          map[models.ID]bool{},
	}
}

// IsStale reports whether a task result was superseded by a newer request.
func (s State) IsStale(action Action) bool {
	switch a := action.(type) {
	case FranchisesLoaded:
		return a.Seq != s.franchiseSeq
	case FranchisesFailed:
		return a.Seq != s.franchiseSeq
	case UsersLoaded:
		return a.Seq != s.userSeq
	case UsersFailed:
		return a.Seq != s.userSeq
	}
	return false
}

// Deleting reports whether a delete for id is in flight.
func (s State) Deleting(id models.ID) bool {
	return s.deleting[id]
}

func (s State) clone() State {
	next := s
	next.RowErrors = make(map[models.ID]string, len(s.RowErrors))
	for k, v := range s.RowErrors {
		next.RowErrors[k] = v
	}
	next.deleting = make(map[models.ID]bool, len(s.deleting))
	for k, v := range s.deleting {
		next.deleting[k] = v
	}
	return next
}

// requested returns the page, size and pattern of the newest franchise
// request, whether or not it has resolved.
func (s State) requested() (page, size int, pattern string) {
	if s.pending != nil {
		return s.pending.Page, s.pending.Size, s.pending.Pattern
	}
	return s.FranchiseIndex, s.FranchisePageSize, s.FranchisePattern
}
