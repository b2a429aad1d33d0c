package models

import (
    "database/sql/driver"
    "encoding/json"
    "fmt"

    "gorm.io/gorm"
)

const (
    // Legacy status kept for old rows; creation always starts at confirmed.
    StatusPending   = "pending"
    StatusConfirmed = "confirmed"
    StatusCompleted = "completed"
    StatusCancelled = "cancelled"

    PaymentCash = "cash"
    PaymentCard = "card"
)

// Each OrderItem stores a snapshot of the meal at order time — the name,
// price and image are copied from the catalog and never re-read, so later
// catalog edits or deletions don't touch existing orders.
type OrderItem struct {
    MealID   uint    `json:"mealId"`
    MealName string  `json:"mealName"`
    Quantity int     `json:"quantity"`
    Price    float64 `json:"price"`
    ImageURL string  `json:"imageUrl"`
}

// OrderItems is persisted as a single JSON column.
type OrderItems []OrderItem

func (items OrderItems) Value() (driver.Value, error) {
    return json.Marshal(items)
}

func (items *OrderItems) Scan(src any) error {
    switch v := src.(type) {
    case nil:
        *items = nil
        return nil
    case []byte:
        return json.Unmarshal(v, items)
    case string:
        return json.Unmarshal([]byte(v), items)
    }
    return fmt.Errorf("unsupported type %T for order items", src)
}

type Order struct {
    gorm.Model
    UserID        uint       `gorm:"not null;index"`
    User          User
    Items         OrderItems `gorm:"type:jsonb;not null"`
    TotalPrice    float64    `gorm:"not null"`
    PickupTime    string     `gorm:"type:varchar(5);not null"` // "HH:MM"
    PaymentMethod string     `gorm:"not null"`
    Status        string     `gorm:"not null;index"`
}
