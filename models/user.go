package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// Roles supplied to every store call that records authorship
const (
	RoleUser     = "user"
	RoleOfficial = "official"
	RoleTeacher  = "teacher"
)

// ValidRoles lists every accepted account role
var ValidRoles = map[string]bool{
	RoleUser: true, RoleOfficial: true, RoleTeacher: true,
}

type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	PhoneNumber string             `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Password    string             `bson:"password,omitempty" json:"-"`
	Role        string             `bson:"role" json:"role"`

	// Role-specific profile fields
	SchoolName string `bson:"schoolName,omitempty" json:"schoolName,omitempty"` // teacher
	Department string `bson:"department,omitempty" json:"department,omitempty"` // official

	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
	LastLoginAt *time.Time `bson:"lastLoginAt,omitempty" json:"lastLoginAt,omitempty"`
}

func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate))
	return err == nil
}

func (u *User) IsOfficial() bool {
	return u.Role == RoleOfficial
}

func (u *User) IsTeacher() bool {
	return u.Role == RoleTeacher
}
