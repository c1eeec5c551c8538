package users

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is a registered account. Admins settle payments and manage the
// catalog; regular users only track their bookings, the booking flow
// itself is anonymous.
type User struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name      string    `json:"name" gorm:"not null;size:255"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Phone     string    `json:"phone" gorm:"size:30"`
	Password  string    `json:"-" gorm:"not null"`
	Role      Role      `json:"role" gorm:"not null;default:'USER'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func IsValidRole(role string) bool {
	switch role {
	case string(RoleUser), string(RoleAdmin):
		return true
	default:
		return false
	}
}

func (User) TableName() string {
	return "users"
}
