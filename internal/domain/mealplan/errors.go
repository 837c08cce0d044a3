package mealplan

import "errors"

var (
	ErrUserNameRequired = errors.New("user name is required")
	ErrInvalidDay       = errors.New("selected day must be a weekday name")
	ErrEmptyPlan        = errors.New("meal plan must contain at least one meal")
	ErrMealNameRequired = errors.New("every planned meal needs a name")
)
