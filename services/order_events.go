package services

import (
	"time"

	"github.com/jdu211109/UniLunch/config"
	"github.com/jdu211109/UniLunch/models"
)

type orderEventDeps struct {
	rt *RealtimeHub
}

var _events orderEventDeps

func InitOrderEvents(rt *RealtimeHub) {
	_events = orderEventDeps{rt: rt}
}

// emitOrderPending tells admin dashboards how many orders are waiting out
// the visibility delay. Only the count goes over the wire — the orders
// themselves stay hidden until the delay elapses.
func emitOrderPending() { // safe to call anywhere
	if _events.rt == nil {
		return // not initialized
	}

	cutoff := time.Now().Add(-AdminVisibilityDelay)
	var pendingCount int64
	if err := config.DB.Model(&models.Order{}).
		Where("status = ?", models.StatusConfirmed).
		Where("created_at > ?", cutoff).
		Count(&pendingCount).Error; err != nil {
		return
	}

	_events.rt.Broadcast(map[string]any{
		"kind":         "orders.pending",
		"pendingCount": pendingCount,
	})
}

func emitOrderStatus(orderID uint, status string) {
	if _events.rt == nil {
		return
	}
	_events.rt.Broadcast(map[string]any{
		"kind":   "order.status",
		"id":     orderID,
		"status": status,
	})
}
