package entities

import (
	"time"
)

// UserRole controls what a user account may do in the admin interface.
type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"     // full access, manages accounts
	UserRoleLibrarian UserRole = "librarian" // manages the catalog, can mark copies returned
	UserRoleMember    UserRole = "member"    // borrower account, no admin access
)

// User is both an admin/librarian account and a borrower that book
// copies may reference. Deleting a user clears the borrower reference
// on its loans rather than deleting the copies.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:100" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string    `gorm:"size:100" json:"-"`
	Role         UserRole  `gorm:"size:20;default:'member'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// DisplayLabel returns the admin display string for a user.
func (u User) DisplayLabel() string {
	return u.Username
}
