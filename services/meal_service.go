package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jdu211109/UniLunch/config"
	"github.com/jdu211109/UniLunch/models"

	"gorm.io/gorm"
)

// MealInput uses pointers so updates can tell "field absent" from
// "field set to zero value". Unspecified fields are preserved on update.
type MealInput struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price"`
	ImageURL     *string  `json:"image_url"`
	Category     *string  `json:"category"`
	IsVegetarian *bool    `json:"is_vegetarian"`
	IsSpicy      *bool    `json:"is_spicy"`
	IsAvailable  *bool    `json:"is_available"`
}

// ValidateMealInput returns a field→message map, empty when valid. For a
// partial update, absent fields are not required.
func ValidateMealInput(in MealInput, partial bool) map[string]string {
	errs := make(map[string]string)

	if in.Name == nil {
		if !partial {
			errs["name"] = "The name field is required."
		}
	} else if strings.TrimSpace(*in.Name) == "" {
		errs["name"] = "The name field is required."
	} else if len(*in.Name) > 255 {
		errs["name"] = "The name may not be greater than 255 characters."
	}

	if in.Price == nil {
		if !partial {
			errs["price"] = "The price field is required."
		}
	} else if *in.Price < 0 {
		errs["price"] = "The price must be at least 0."
	}

	if in.Category == nil {
		if !partial {
			errs["category"] = "The category field is required."
		}
	} else if !models.ValidMealCategory(*in.Category) {
		errs["category"] = fmt.Sprintf("The selected category is invalid: %s", *in.Category)
	}

	return errs
}

func ListMeals() ([]models.Meal, error) {
	var meals []models.Meal
	err := config.DB.Order("created_at DESC").Find(&meals).Error
	return meals, err
}

func GetMeal(id uint) (*models.Meal, error) {
	var meal models.Meal
	if err := config.DB.First(&meal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}
	return &meal, nil
}

// CreateMeal validates and persists a catalog entry. Boolean flags default
// to false when absent.
func CreateMeal(in MealInput) (*models.Meal, map[string]string, error) {
	if errs := ValidateMealInput(in, false); len(errs) > 0 {
		return nil, errs, nil
	}

	meal := models.Meal{
		Name:     *in.Name,
		Price:    *in.Price,
		Category: *in.Category,
	}
	if in.Description != nil {
		meal.Description = *in.Description
	}
	if in.ImageURL != nil {
		meal.ImageURL = *in.ImageURL
	}
	if in.IsVegetarian != nil {
		meal.IsVegetarian = *in.IsVegetarian
	}
	if in.IsSpicy != nil {
		meal.IsSpicy = *in.IsSpicy
	}
	if in.IsAvailable != nil {
		meal.IsAvailable = *in.IsAvailable
	}

	if err := config.DB.Create(&meal).Error; err != nil {
		return nil, nil, err
	}
	return &meal, nil, nil
}

// UpdateMeal applies only the fields present in the input.
func UpdateMeal(id uint, in MealInput) (*models.Meal, map[string]string, error) {
	meal, err := GetMeal(id)
	if err != nil {
		return nil, nil, err
	}

	if errs := ValidateMealInput(in, true); len(errs) > 0 {
		return nil, errs, nil
	}

	updates := make(map[string]any)
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Price != nil {
		updates["price"] = *in.Price
	}
	if in.ImageURL != nil {
		updates["image_url"] = *in.ImageURL
	}
	if in.Category != nil {
		updates["category"] = *in.Category
	}
	if in.IsVegetarian != nil {
		updates["is_vegetarian"] = *in.IsVegetarian
	}
	if in.IsSpicy != nil {
		updates["is_spicy"] = *in.IsSpicy
	}
	if in.IsAvailable != nil {
		updates["is_available"] = *in.IsAvailable
	}

	if len(updates) > 0 {
		if err := config.DB.Model(meal).Updates(updates).Error; err != nil {
			return nil, nil, err
		}
	}
	return meal, nil, nil
}

// DeleteMeal is unconditional: orders snapshot meal data at creation, so a
// deleted meal is never dereferenced by order history.
func DeleteMeal(id uint) error {
	meal, err := GetMeal(id)
	if err != nil {
		return err
	}
	return config.DB.Unscoped().Delete(meal).Error
}
