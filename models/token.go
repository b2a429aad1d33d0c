package models

import "time"

// One row per issued bearer token. Deleting the row revokes the token even
// if the JWT itself has not expired yet.
type AccessToken struct {
    ID        uint   `gorm:"primarykey"`
    UserID    uint   `gorm:"index;not null"`
    TokenID   string `gorm:"uniqueIndex;not null"` // jti claim
    Name      string
    CreatedAt time.Time
}

// PasswordResetToken holds the bcrypt hash of a 6-digit reset code.
// At most one live row per email: issuing a new code deletes prior rows.
type PasswordResetToken struct {
    ID        uint   `gorm:"primarykey"`
    Email     string `gorm:"index;not null"`
    Token     string `gorm:"not null"`
    ExpiresAt time.Time
    CreatedAt time.Time
}
