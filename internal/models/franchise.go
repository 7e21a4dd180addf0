// internal/models/franchise.go
package models

type Franchise struct {
	ID     ID      `json:"id,omitempty"`
	Name   string  `json:"name"`
	Admins []User  `json:"admins,omitempty"`
	Stores []Store `json:"stores"`
}

// AdminNames joins the franchisee names for display.
func (f Franchise) AdminNames() []string {
	names := make([]string, 0, len(f.Admins))
	for _, a := range f.Admins {
		names = append(names, a.Name)
	}
	return names
}

// FindStore returns the store with id, if the franchise owns it.
func (f Franchise) FindStore(id ID) (Store, bool) {
	for _, s := range f.Stores {
		if s.ID == id {
			return s, true
		}
	}
	return Store{}, false
}

// Store belongs to exactly one Franchise.
type Store struct {
	ID           ID      `json:"id,omitempty"`
	Name         string  `json:"name"`
	TotalRevenue float64 `json:"totalRevenue,omitempty"`
}

// FranchiseList is one page of franchises. The service reports only whether
// another page exists, never a total.
type FranchiseList struct {
	Franchises []Franchise `json:"franchises"`
	More       bool        `json:"more"`
}

// FindFranchise looks a franchise up by id within the page.
func (l FranchiseList) FindFranchise(id ID) (Franchise, bool) {
	for _, f := range l.Franchises {
		if f.ID == id {
			return f, true
		}
	}
	return Franchise{}, false
}

// CreateFranchiseRequest is the body of POST /api/franchise.
type CreateFranchiseRequest struct {
	Name   string       `json:"name"`
	Admins []AdminEmail `json:"admins"`
}

type AdminEmail struct {
	Email string `json:"email"`
}

type CreateStoreRequest struct {
	Name string `json:"name"`
}
