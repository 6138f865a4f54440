package models

import "time"

// User roles.
const (
	RoleCustomer   = "customer"
	RoleAdmin      = "admin"
	RoleStaff      = "staff"
	RoleManager    = "manager"
	RoleSuperAdmin = "super-admin"
)

// ValidRole reports whether r is a known role.
func ValidRole(r string) bool {
	switch r {
	case RoleCustomer, RoleAdmin, RoleStaff, RoleManager, RoleSuperAdmin:
		return true
	}
	return false
}

// User is a directory account. Users with Role == staff are the bookable
// resources the availability calendar and booking ledger key on.
type User struct {
	ID         string       `bson:"id" json:"id"`
	Slug       string       `bson:"slug" json:"slug"`
	FirstName  string       `bson:"first_name" json:"firstName"`
	LastName   string       `bson:"last_name" json:"lastName"`
	Mobile     string       `bson:"mobile,omitempty" json:"mobile,omitempty"`
	Email      string       `bson:"email,omitempty" json:"email,omitempty"`
	Password   string       `bson:"password,omitempty" json:"-"` // bcrypt hash, never serialized
	Role       string       `bson:"role" json:"role"`
	IsVerified bool         `bson:"is_verified" json:"isVerified"`
	Image      ServiceImage `bson:"image,omitempty" json:"image,omitzero"`
	DeletedAt  *time.Time   `bson:"deleted_at" json:"deletedAt,omitempty"`
	CreatedAt  time.Time    `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time    `bson:"updated_at" json:"updatedAt"`
}

// CreateUserRequest is the payload for adding a directory account.
type CreateUserRequest struct {
	FirstName string       `json:"firstName" binding:"required"`
	LastName  string       `json:"lastName" binding:"required"`
	Mobile    string       `json:"mobile"`
	Email     string       `json:"email"`
	Password  string       `json:"password"`
	Role      string       `json:"role"`
	Image     ServiceImage `json:"image"`
}

// UpdateUserRequest carries the mutable account fields; nil means keep.
type UpdateUserRequest struct {
	FirstName *string       `json:"firstName"`
	LastName  *string       `json:"lastName"`
	Mobile    *string       `json:"mobile"`
	Email     *string       `json:"email"`
	Password  *string       `json:"password"`
	Role      *string       `json:"role"`
	Image     *ServiceImage `json:"image"`
}
