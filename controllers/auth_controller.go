package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jdu211109/UniLunch/middlewares"
	"github.com/jdu211109/UniLunch/models"
	"github.com/jdu211109/UniLunch/services"

	"github.com/gin-gonic/gin"
)

type RegisterInput struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func userJSON(u *models.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	}
}

func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	if errs := validateRegister(input); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "errors": errs})
		return
	}

	user, token, err := services.RegisterUser(input.Name, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "errors": gin.H{
				"email": "The email has already been taken.",
			}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Registration successful",
		"user":       userJSON(user),
		"token":      token,
		"token_type": "Bearer",
	})
}

func validateRegister(in RegisterInput) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = "The name field is required."
	} else if len(in.Name) > 255 {
		errs["name"] = "The name may not be greater than 255 characters."
	}
	if in.Email == "" {
		errs["email"] = "The email field is required."
	} else if !strings.Contains(in.Email, "@") || len(in.Email) > 255 {
		errs["email"] = "The email must be a valid email address."
	}
	if in.Password == "" {
		errs["password"] = "The password field is required."
	} else if len(in.Password) < 8 {
		errs["password"] = "The password must be at least 8 characters."
	} else if in.Password != in.PasswordConfirmation {
		errs["password"] = "The password confirmation does not match."
	}
	return errs
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	user, token, err := services.AuthenticateUser(input.Email, input.Password)
	if err != nil {
		// Same message for unknown email and wrong password
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "The provided credentials do not match our records."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Login successful",
		"user":       userJSON(user),
		"token":      token,
		"token_type": "Bearer",
	})
}

func Logout(c *gin.Context) {
	jti := c.GetString("tokenID")
	if err := services.RevokeToken(jti); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

func LogoutAll(c *gin.Context) {
	userID := c.GetUint("userID")
	if err := services.RevokeAllTokens(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out from all devices successfully"})
}

func CurrentUser(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": userJSON(user)})
}
