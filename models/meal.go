package models

import (
    "gorm.io/gorm"
)

// A menu entry managed by admins, publicly readable
type Meal struct {
    gorm.Model
    Name         string  `gorm:"not null" json:"name"`
    Description  string  `json:"description"`
    Price        float64 `gorm:"not null" json:"price"`
    ImageURL     string  `json:"image_url"`
    Category     string  `gorm:"not null" json:"category"`
    IsVegetarian bool    `json:"is_vegetarian"`
    IsSpicy      bool    `json:"is_spicy"`
    IsAvailable  bool    `json:"is_available"`
}

// Allowed meal categories mapped to their display names
var MealCategories = map[string]string{
    "set":     "Сет",
    "main":    "Блюда",
    "salad":   "Салаты",
    "soup":    "Суп/Самса",
    "dessert": "Десерты",
    "drink":   "Напиток",
    "extra":   "Дополнительно",
}

func ValidMealCategory(category string) bool {
    _, ok := MealCategories[category]
    return ok
}
