package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/jdu211109/UniLunch/services"

	"github.com/gin-gonic/gin"
)

type SendCodeInput struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyCodeInput struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

type ResetPasswordInput struct {
	Email                string `json:"email" binding:"required,email"`
	Code                 string `json:"code" binding:"required,len=6"`
	Password             string `json:"password" binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required"`
}

func SendResetCode(c *gin.Context) {
	var input SendCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	if err := services.SendResetCode(input.Email, time.Now()); err != nil {
		// Mail delivery details stay server-side
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Не удалось отправить email. Попробуйте позже."})
		return
	}

	// Success-shaped even when the email is unknown
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Если аккаунт с таким email существует, код был отправлен."})
}

func VerifyResetCode(c *gin.Context) {
	var input VerifyCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	err := services.VerifyResetCode(input.Email, input.Code, time.Now())
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Код подтвержден"})
	case errors.Is(err, services.ErrInvalidResetCode):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Неверный или истекший код"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
	}
}

func ResetPassword(c *gin.Context) {
	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Invalid input"})
		return
	}
	if input.Password != input.PasswordConfirmation {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "errors": gin.H{
			"password": "The password confirmation does not match.",
		}})
		return
	}

	err := services.ResetPassword(input.Email, input.Code, input.Password, time.Now())
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Пароль успешно изменен"})
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Пользователь не найден"})
	case errors.Is(err, services.ErrInvalidResetCode):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Неверный или истекший код"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
	}
}
