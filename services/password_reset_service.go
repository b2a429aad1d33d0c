package services

import (
	"errors"
	"time"

	"github.com/jdu211109/UniLunch/config"
	"github.com/jdu211109/UniLunch/models"
	"github.com/jdu211109/UniLunch/utils"
)

const resetCodeTTL = 10 * time.Minute

var (
	ErrInvalidResetCode = errors.New("invalid or expired code")
	ErrMailSend         = errors.New("failed to send reset email")
)

// Overridable in tests so they don't hit SES.
var sendResetMail = utils.SendResetCodeEmail

// SendResetCode issues a fresh 6-digit code for the email. When the email
// is unknown it returns nil anyway so callers can't probe for accounts.
func SendResetCode(email string, now time.Time) error {
	if _, err := FindUserByEmail(email); err != nil {
		return nil
	}

	code, err := utils.GenerateResetCode()
	if err != nil {
		return err
	}
	hashed, err := utils.HashPassword(code)
	if err != nil {
		return err
	}

	// Replace any prior token for this email
	if err := config.DB.Where("email = ?", email).Delete(&models.PasswordResetToken{}).Error; err != nil {
		return err
	}
	row := models.PasswordResetToken{
		Email:     email,
		Token:     hashed,
		ExpiresAt: now.Add(resetCodeTTL),
		CreatedAt: now,
	}
	if err := config.DB.Create(&row).Error; err != nil {
		return err
	}

	if err := sendResetMail(email, code); err != nil {
		return ErrMailSend
	}
	return nil
}

// VerifyResetCode checks the code against the stored hash. An expired row
// is deleted on sight so a later attempt with the same code also fails.
func VerifyResetCode(email, code string, now time.Time) error {
	var row models.PasswordResetToken
	if err := config.DB.Where("email = ?", email).First(&row).Error; err != nil {
		return ErrInvalidResetCode
	}

	if now.After(row.ExpiresAt) {
		if err := config.DB.Where("email = ?", email).Delete(&models.PasswordResetToken{}).Error; err != nil {
			return err
		}
		return ErrInvalidResetCode
	}

	if !utils.CheckPasswordHash(code, row.Token) {
		return ErrInvalidResetCode
	}
	return nil
}

// ResetPassword re-verifies the code, swaps the password hash, consumes the
// token and revokes every live bearer token for the user.
func ResetPassword(email, code, newPassword string, now time.Time) error {
	if err := VerifyResetCode(email, code, now); err != nil {
		return err
	}

	user, err := FindUserByEmail(email)
	if err != nil {
		return err
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := config.DB.Model(user).Update("password", hashed).Error; err != nil {
		return err
	}

	if err := config.DB.Where("email = ?", email).Delete(&models.PasswordResetToken{}).Error; err != nil {
		return err
	}

	return RevokeAllTokens(user.ID)
}
