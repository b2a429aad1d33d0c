package models

import (
    "gorm.io/gorm"
)

const (
    RoleUser  = "user"
    RoleAdmin = "admin"
)

type User struct {
    gorm.Model
    Name     string `gorm:"not null" json:"name"`
    Email    string `gorm:"uniqueIndex;not null" json:"email"`
    Password string `gorm:"not null" json:"-"`
    Role     string `gorm:"not null;default:user" json:"role"`
}

func (u *User) IsAdmin() bool {
    return u.Role == RoleAdmin
}
