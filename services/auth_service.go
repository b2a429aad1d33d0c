package services

import (
	"errors"

	"github.com/jdu211109/UniLunch/config"
	"github.com/jdu211109/UniLunch/models"
	"github.com/jdu211109/UniLunch/utils"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("the provided credentials do not match our records")
	ErrUserNotFound       = errors.New("user not found")
)

// RegisterUser creates a user and issues their first bearer token.
func RegisterUser(name, email, password string) (*models.User, string, error) {
	var count int64
	if err := config.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, "", err
	}
	if count > 0 {
		return nil, "", ErrEmailTaken
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     models.RoleUser,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		return nil, "", err
	}

	token, err := IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// AuthenticateUser checks credentials and issues a fresh token. Unknown
// email and wrong password both come back as ErrInvalidCredentials.
func AuthenticateUser(email, password string) (*models.User, string, error) {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// IssueToken signs a JWT and records its jti so it can be revoked later.
// Multiple live tokens per user are allowed.
func IssueToken(userID uint) (string, error) {
	token, jti, err := utils.GenerateJWT(userID)
	if err != nil {
		return "", err
	}
	row := models.AccessToken{UserID: userID, TokenID: jti, Name: "API Token"}
	if err := config.DB.Create(&row).Error; err != nil {
		return "", err
	}
	return token, nil
}

// RevokeToken deletes a single token row (logout).
func RevokeToken(jti string) error {
	return config.DB.Where("token_id = ?", jti).Delete(&models.AccessToken{}).Error
}

// RevokeAllTokens deletes every token for the user (logout-all, password reset).
func RevokeAllTokens(userID uint) error {
	return config.DB.Where("user_id = ?", userID).Delete(&models.AccessToken{}).Error
}

// TokenExists reports whether a jti is still live.
func TokenExists(jti string) (bool, error) {
	var count int64
	err := config.DB.Model(&models.AccessToken{}).Where("token_id = ?", jti).Count(&count).Error
	return count > 0, err
}

func FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func FindUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}
