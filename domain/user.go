package domain

import (
	"time"

	"myCatalogStore/pkg/utils"
)

// CREATE TABLE public.users (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     username        VARCHAR(255) NOT NULL UNIQUE,
//     email           VARCHAR(255) NOT NULL UNIQUE,
//     password_hash   VARCHAR(255) NOT NULL,
//     first_name      VARCHAR(255),
//     last_name       VARCHAR(255),
//     created_at      TIMESTAMPTZ DEFAULT NOW(),
//     updated_at      TIMESTAMPTZ DEFAULT NOW()
// );

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"column:username;size:255;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"column:email;size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	FirstName    *string   `gorm:"column:first_name;size:255" json:"first_name"`
	LastName     *string   `gorm:"column:last_name;size:255" json:"last_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// VerifyPassword compares candidate against the stored bcrypt hash.
func (u User) VerifyPassword(candidate string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return utils.CheckPassword(candidate, u.PasswordHash)
}

// UserRegistration carries the raw password; it never reaches storage.
type UserRegistration struct {
	Username  string
	Email     string
	Password  string
	FirstName *string
	LastName  *string
}

// UserUpdate lists the mutable user fields. Nil means unchanged.
type UserUpdate struct {
	Username  *string
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
}
