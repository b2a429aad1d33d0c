package services

import (
	"errors"
	"math"
	"time"

	"github.com/jdu211109/UniLunch/config"
	"github.com/jdu211109/UniLunch/models"
)

// The two windows are both 2 minutes today but answer different questions:
// AdminVisibilityDelay decides when staff see an order, CancelWindow decides
// how long the owner may still cancel it. Keep them separate.
const (
	AdminVisibilityDelay = 2 * time.Minute
	CancelWindow         = 2 * time.Minute
)

var (
	ErrMealNotFound        = errors.New("meal not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrNotOrderOwner       = errors.New("order belongs to another user")
	ErrOrderNotCancellable = errors.New("cannot cancel this order")
	ErrCancelWindowExpired = errors.New("order can only be cancelled within 2 minutes of creation")
	ErrInvalidOrderStatus  = errors.New("invalid order status")
)

type OrderItemRequest struct {
	MealID   uint `json:"mealId" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

// CreateOrder snapshots meal name/price/image into the order so later
// catalog edits never change what the customer agreed to pay.
func CreateOrder(userID uint, items []OrderItemRequest, pickupTime, paymentMethod string) (*models.Order, error) {
	enriched := make(models.OrderItems, 0, len(items))
	var total float64

	for _, item := range items {
		var meal models.Meal
		if err := config.DB.First(&meal, item.MealID).Error; err != nil {
			return nil, ErrMealNotFound
		}
		total += meal.Price * float64(item.Quantity)
		enriched = append(enriched, models.OrderItem{
			MealID:   meal.ID,
			MealName: meal.Name,
			Quantity: item.Quantity,
			Price:    meal.Price,
			ImageURL: meal.ImageURL,
		})
	}

	order := models.Order{
		UserID:        userID,
		Items:         enriched,
		TotalPrice:    math.Round(total*100) / 100,
		PickupTime:    pickupTime,
		PaymentMethod: paymentMethod,
		Status:        models.StatusConfirmed,
	}
	if err := config.DB.Create(&order).Error; err != nil {
		return nil, err
	}

	emitOrderPending()
	return &order, nil
}

// ListOrdersForUser returns the caller's own orders, newest first. Owners
// see their orders immediately, the admin visibility delay does not apply.
func ListOrdersForUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := config.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// AdminListOrders returns orders older than the visibility delay, newest
// first, plus the count of confirmed orders still inside the delay. An
// order's visibility is governed purely by its age — a status change inside
// the window does not reveal it early.
func AdminListOrders(now time.Time) ([]models.Order, int64, error) {
	cutoff := now.Add(-AdminVisibilityDelay)

	var orders []models.Order
	err := config.DB.
		Preload("User").
		Where("status IN ?", []string{models.StatusConfirmed, models.StatusCompleted, models.StatusCancelled}).
		Where("created_at <= ?", cutoff).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	var pendingCount int64
	err = config.DB.Model(&models.Order{}).
		Where("status = ?", models.StatusConfirmed).
		Where("created_at > ?", cutoff).
		Count(&pendingCount).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, pendingCount, nil
}

// UpdateOrderStatus sets any of the three current statuses regardless of the
// order's present state. No transition matrix is enforced here.
func UpdateOrderStatus(orderID uint, status string) (*models.Order, error) {
	switch status {
	case models.StatusConfirmed, models.StatusCompleted, models.StatusCancelled:
	default:
		return nil, ErrInvalidOrderStatus
	}

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		return nil, ErrOrderNotFound
	}

	if err := config.DB.Model(&order).Update("status", status).Error; err != nil {
		return nil, err
	}

	emitOrderStatus(order.ID, order.Status)
	return &order, nil
}

// CancelOrder is the owner-facing cancellation. Preconditions are checked
// in a fixed sequence: ownership, then state, then the time window.
func CancelOrder(orderID, userID uint, now time.Time) (*models.Order, error) {
	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		return nil, ErrOrderNotFound
	}

	if order.UserID != userID {
		return nil, ErrNotOrderOwner
	}
	if order.Status != models.StatusConfirmed {
		return nil, ErrOrderNotCancellable
	}
	if now.Sub(order.CreatedAt) > CancelWindow {
		return nil, ErrCancelWindowExpired
	}

	if err := config.DB.Model(&order).Update("status", models.StatusCancelled).Error; err != nil {
		return nil, err
	}

	emitOrderStatus(order.ID, order.Status)
	return &order, nil
}

// DeleteOrder hard-deletes an order. Owner or admin only; no status or
// time restriction, unlike CancelOrder.
func DeleteOrder(orderID uint, requester *models.User) error {
	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		return ErrOrderNotFound
	}

	if order.UserID != requester.ID && !requester.IsAdmin() {
		return ErrNotOrderOwner
	}

	return config.DB.Unscoped().Delete(&order).Error
}
