package validation

import (
	"fmt"
	"regexp"

	"github.com/rewear-marketplace-api/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidateRegistration validates a registration request. Required
// fields and formats are checked here, not in the session store.
func ValidateRegistration(name, email, password string) []ValidationError {
	var errors []ValidationError

	if name == "" {
		errors = append(errors, ValidationError{Field: "name", Message: "name is required"})
	}

	if email == "" {
		errors = append(errors, ValidationError{Field: "email", Message: "email is required"})
	} else if !emailRegex.MatchString(email) {
		errors = append(errors, ValidationError{Field: "email", Message: "invalid email format", Value: email})
	}

	if password == "" {
		errors = append(errors, ValidationError{Field: "password", Message: "password is required"})
	} else if len(password) < 6 {
		errors = append(errors, ValidationError{Field: "password", Message: "password must be at least 6 characters"})
	}

	return errors
}

// ValidateItem validates a new listing before it reaches the catalog
// store.
func ValidateItem(item *models.Item) []ValidationError {
	var errors []ValidationError

	if item.Title == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title is required"})
	}
	if item.Description == "" {
		errors = append(errors, ValidationError{Field: "description", Message: "description is required"})
	}

	if item.Category == "" {
		errors = append(errors, ValidationError{Field: "category", Message: "category is required"})
	} else if !models.ValidCategories[item.Category] {
		errors = append(errors, ValidationError{
			Field:   "category",
			Message: "invalid category, must be one of: tops, bottoms, dresses, outerwear, accessories, shoes",
			Value:   item.Category,
		})
	}

	if item.Size == "" {
		errors = append(errors, ValidationError{Field: "size", Message: "size is required"})
	}

	if item.Condition == "" {
		errors = append(errors, ValidationError{Field: "condition", Message: "condition is required"})
	} else if !models.ValidConditions[item.Condition] {
		errors = append(errors, ValidationError{
			Field:   "condition",
			Message: "invalid condition, must be one of: Like New, Good, Fair, Poor",
			Value:   item.Condition,
		})
	}

	if item.Type == "" {
		errors = append(errors, ValidationError{Field: "type", Message: "type is required"})
	} else if !models.ValidItemTypes[item.Type] {
		errors = append(errors, ValidationError{
			Field:   "type",
			Message: "invalid type, must be one of: swap, points, both",
			Value:   item.Type,
		})
	}

	if item.Type == models.ItemTypePoints || item.Type == models.ItemTypeBoth {
		if item.PointsRequired < 1 {
			errors = append(errors, ValidationError{
				Field:   "pointsRequired",
				Message: "points required must be at least 1",
				Value:   item.PointsRequired,
			})
		}
	}

	return errors
}

// ValidateItemUpdate validates the fields present in a partial item
// update. Absent fields are skipped.
func ValidateItemUpdate(upd *models.ItemUpdate) []ValidationError {
	var errors []ValidationError

	if upd.Title != nil && *upd.Title == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title cannot be empty"})
	}
	if upd.Category != nil && !models.ValidCategories[*upd.Category] {
		errors = append(errors, ValidationError{Field: "category", Message: "invalid category", Value: *upd.Category})
	}
	if upd.Condition != nil && !models.ValidConditions[*upd.Condition] {
		errors = append(errors, ValidationError{Field: "condition", Message: "invalid condition", Value: *upd.Condition})
	}
	if upd.Type != nil && !models.ValidItemTypes[*upd.Type] {
		errors = append(errors, ValidationError{Field: "type", Message: "invalid type", Value: *upd.Type})
	}
	if upd.Status != nil && !models.ValidItemStatuses[*upd.Status] {
		errors = append(errors, ValidationError{Field: "status", Message: "invalid status", Value: *upd.Status})
	}
	if upd.PointsRequired != nil && *upd.PointsRequired < 1 {
		errors = append(errors, ValidationError{Field: "pointsRequired", Message: "points required must be at least 1", Value: *upd.PointsRequired})
	}

	return errors
}

// Error implements the error interface for a ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
