// internal/dashboard/viewmodel.go
package dashboard

import (
	"context"
	"sync"

	"pizza-dashboard/internal/common/errors"
	"pizza-dashboard/internal/common/logger"
	"pizza-dashboard/internal/common/metrics"
	"pizza-dashboard/internal/models"
)

// Directory is the part of the Directory Service the dashboard reads and
// mutates. Implementations are bound to the acting principal's token.
type Directory interface {
	ListFranchises(ctx context.Context, page, limit int, pattern string) (models.FranchiseList, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id models.ID) error
}

// ErrNotFound is returned when a principal without the admin role mounts the dashboard.
var ErrNotFound = errors.NewNotFoundError("admin dashboard")

// ViewModel owns one dashboard State and runs the tasks Reduce produces.
// Directory calls are made outside the lock; their results are fed back
// through Reduce, which drops superseded ones.
type ViewModel struct {
	mu          sync.Mutex
	state       State
	directory   Directory
	logger      logger.Logger
	subscribers map[int]func(View)
	nextSub     int
}

func NewViewModel(directory Directory, settings Settings, log logger.Logger) *ViewModel {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &ViewModel{
		state:       NewState(settings),
		directory:   directory,
		logger:      log,
		subscribers: make(map[int]func(View)),
	}
}

// Subscribe registers fn to receive the view after every settled dispatch.
// The returned func unregisters it.
func (vm *ViewModel) Subscribe(fn func(View)) func() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	id := vm.nextSub
	vm.nextSub++
	vm.subscribers[id] = fn
	return func() {
		vm.mu.Lock()
		defer vm.mu.Unlock()
		delete(vm.subscribers, id)
	}
}

// View returns the current render-ready state.
func (vm *ViewModel) View() View {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state.View()
}

// State returns a copy of the current state.
func (vm *ViewModel) State() State {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state.clone()
}

// Dispatch reduces action, awaits the resulting task if any, and reduces its
// result. The returned error is the Directory failure the action ran into,
// or ErrNotFound when the dashboard is not mounted for an admin.
func (vm *ViewModel) Dispatch(ctx context.Context, action Action) (View, error) {
	metrics.DashboardActions.WithLabelValues(action.Name()).Inc()

	vm.mu.Lock()
	next, task := Reduce(vm.state, action)
	vm.state = next
	directory := vm.directory
	mounted := next.Mounted
	vm.mu.Unlock()

	if !mounted {
		view := vm.settle()
		return view, ErrNotFound
	}

	var (
		navigation *Navigation
		taskErr    error
	)
	if task != nil {
		var result Action
		result, navigation, taskErr = vm.run(ctx, directory, task)
		if result != nil && !vm.apply(result) {
			taskErr = nil
		}
	}

	view := vm.settle()
	view.Navigation = navigation
	return view, taskErr
}

func (vm *ViewModel) run(ctx context.Context, directory Directory, task Task) (Action, *Navigation, error) {
	switch t := task.(type) {
	case LoadFranchisesTask:
		list, err := directory.ListFranchises(ctx, t.Page, t.Size, t.Pattern)
		if err != nil {
			return FranchisesFailed{Seq: t.Seq, Err: err}, nil, err
		}
		return FranchisesLoaded{Seq: t.Seq, Page: t.Page, Size: t.Size, Pattern: t.Pattern, List: list}, nil, nil

	case LoadUsersTask:
		users, err := directory.ListUsers(ctx)
		if err != nil {
			return UsersFailed{Seq: t.Seq, Err: err}, nil, err
		}
		return UsersLoaded{Seq: t.Seq, Users: users}, nil, nil

	case DeleteUserTask:
		err := directory.DeleteUser(ctx, t.ID)
		if err != nil {
			if errors.IsNotFound(err) {
				vm.logger.Info("user already deleted", map[string]interface{}{"userId": t.ID.String()})
				return DeleteFailed{ID: t.ID, Err: err}, nil, nil
			}
			return DeleteFailed{ID: t.ID, Err: err}, nil, err
		}
		return UserDeleted{ID: t.ID}, nil, nil

	case NavigateTask:
		nav := t.Navigation
		return nil, &nav, nil
	}
	return nil, nil, nil
}

// apply reduces a task result and reports whether it was current.
func (vm *ViewModel) apply(result Action) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.state.IsStale(result) {
		resource := "franchises"
		switch result.(type) {
		case UsersLoaded, UsersFailed:
			resource = "users"
		}
		metrics.StaleResponsesDiscarded.WithLabelValues(resource).Inc()
		vm.logger.Debug("discarding superseded response", map[string]interface{}{
			"action":   result.Name(),
			"resource": resource,
		})
		return false
	}
	vm.state, _ = Reduce(vm.state, result)
	return true
}

// settle notifies subscribers with the current view and returns it.
func (vm *ViewModel) settle() View {
	vm.mu.Lock()
	view := vm.state.View()
	subs := make([]func(View), 0, len(vm.subscribers))
	for _, fn := range vm.subscribers {
		subs = append(subs, fn)
	}
	vm.mu.Unlock()

	for _, fn := range subs {
		fn(view)
	}
	return view
}
