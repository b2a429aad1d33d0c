package controllers

import (
	"net/http"
	"strconv"

	"github.com/jdu211109/UniLunch/config"
	"github.com/jdu211109/UniLunch/models"

	"github.com/gin-gonic/gin"
)

type UpdateRoleInput struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

func ListUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Order("created_at ASC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(users))
	for i := range users {
		out = append(out, gin.H{
			"id":        users[i].ID,
			"name":      users[i].Name,
			"email":     users[i].Email,
			"role":      users[i].Role,
			"createdAt": users[i].CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": out})
}

func UpdateUserRole(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	var input UpdateRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "errors": gin.H{
			"role": "The selected role is invalid.",
		}})
		return
	}

	var user models.User
	if err := config.DB.First(&user, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	if err := config.DB.Model(&user).Update("role", input.Role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User role updated successfully",
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
