// Package users holds the account directory backed by a store.Table.
package users

import (
	"errors"
	"fmt"

	"chatrelay/internal/store"
)

// RoleRegular is the only role ever written to the directory; guests never
// get a record.
const RoleRegular = "regular"

type User struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ErrDuplicate is returned by Create when the userId is already taken.
var ErrDuplicate = errors.New("user already exists")

type Directory struct {
	table *store.Table[User]
}

func NewDirectory(table *store.Table[User]) *Directory {
	return &Directory{table: table}
}

// FindByID returns the user with the given id, reporting whether it exists.
func (d *Directory) FindByID(id string) (User, bool, error) {
	all, err := d.table.Load()
	if err != nil {
		return User{}, false, fmt.Errorf("load users: %w", err)
	}
	for _, u := range all {
		if u.UserID == id {
			return u, true, nil
		}
	}
	return User{}, false, nil
}

func (d *Directory) Exists(id string) (bool, error) {
	_, ok, err := d.FindByID(id)
	return ok, err
}

// Create inserts a new account. The uniqueness check and the insert run in
// one pass under the table lock, so two concurrent signups with the same id
// cannot both succeed.
func (d *Directory) Create(u User) error {
	if u.Role == "" {
		u.Role = RoleRegular
	}
	return d.table.Update(func(all []User) ([]User, error) {
		for _, existing := range all {
			if existing.UserID == u.UserID {
				return nil, ErrDuplicate
			}
		}
		return append(all, u), nil
	})
}
