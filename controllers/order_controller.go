package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/jdu211109/UniLunch/middlewares"
	"github.com/jdu211109/UniLunch/models"
	"github.com/jdu211109/UniLunch/services"

	"github.com/gin-gonic/gin"
)

type CreateOrderInput struct {
	Items         []services.OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	PickupTime    string                      `json:"pickupTime" binding:"required"`
	PaymentMethod string                      `json:"paymentMethod" binding:"required,oneof=cash card"`
}

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

func orderJSON(o *models.Order) gin.H {
	return gin.H{
		"id":            o.ID,
		"items":         o.Items,
		"totalPrice":    o.TotalPrice,
		"pickupTime":    o.PickupTime,
		"paymentMethod": o.PaymentMethod,
		"status":        o.Status,
		"createdAt":     o.CreatedAt,
		"updatedAt":     o.UpdatedAt,
	}
}

func adminOrderJSON(o *models.Order) gin.H {
	userName := "Unknown"
	if o.User.ID != 0 {
		userName = o.User.Name
	}
	out := orderJSON(o)
	out["userId"] = o.UserID
	out["userName"] = userName
	return out
}

// ListOrders returns the caller's own orders, newest first.
func ListOrders(c *gin.Context) {
	userID := c.GetUint("userID")
	orders, err := services.ListOrdersForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(orders))
	for i := range orders {
		out = append(out, orderJSON(&orders[i]))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": out})
}

// CreateOrder turns the client cart into a confirmed, snapshot-priced order.
func CreateOrder(c *gin.Context) {
	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Invalid input"})
		return
	}
	if _, err := time.Parse("15:04", input.PickupTime); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "errors": gin.H{
			"pickupTime": "The pickup time does not match the format H:i.",
		}})
		return
	}

	userID := c.GetUint("userID")
	order, err := services.CreateOrder(userID, input.Items, input.PickupTime, input.PaymentMethod)
	if err != nil {
		if errors.Is(err, services.ErrMealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order confirmed successfully",
		"order":   orderJSON(order),
	})
}

// AdminListOrders shows orders older than the visibility delay plus a count
// of confirmed orders still inside it.
func AdminListOrders(c *gin.Context) {
	orders, pendingCount, err := services.AdminListOrders(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(orders))
	for i := range orders {
		out = append(out, adminOrderJSON(&orders[i]))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "pendingCount": pendingCount, "orders": out})
}

// UpdateOrderStatus is admin-only; any of the three statuses may be set.
func UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}

	var input UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	order, err := services.UpdateOrderStatus(uint(id), input.Status)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Order status updated",
			"order":   gin.H{"id": order.ID, "status": order.Status},
		})
	case errors.Is(err, services.ErrInvalidOrderStatus):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "errors": gin.H{
			"status": "The selected status is invalid.",
		}})
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
	}
}

// CancelOrder is owner-only and bound by the cancel window.
func CancelOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}

	userID := c.GetUint("userID")
	order, err := services.CancelOrder(uint(id), userID, time.Now())
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Order cancelled successfully",
			"order":   gin.H{"id": order.ID, "status": order.Status},
		})
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
	case errors.Is(err, services.ErrNotOrderOwner):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Unauthorized"})
	case errors.Is(err, services.ErrOrderNotCancellable):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cannot cancel this order"})
	case errors.Is(err, services.ErrCancelWindowExpired):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Order can only be cancelled within 2 minutes of creation"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
	}
}

// DeleteOrder is a hard delete available to the owner or an admin, in any
// order state.
func DeleteOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}

	user := middlewares.CurrentUser(c)
	err = services.DeleteOrder(uint(id), user)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order deleted"})
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
	case errors.Is(err, services.ErrNotOrderOwner):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Unauthorized"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
	}
}
