package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// User role validation
	validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		role := fl.Field().String()
		validRoles := []string{"studio_owner", "studio_admin", "studio_photographer", "client"}
		for _, r := range validRoles {
			if role == r {
				return true
			}
		}
		return false
	})

	// Project status validation
	validate.RegisterValidation("project_status", func(fl validator.FieldLevel) bool {
		status := fl.Field().String()
		validStatuses := []string{"draft", "uploading", "processing", "review", "delivered", "archived", ""}
		for _, s := range validStatuses {
			if status == s {
				return true
			}
		}
		return false
	})

	// Batch action type validation
	validate.RegisterValidation("action_type", func(fl validator.FieldLevel) bool {
		action := fl.Field().String()
		validActions := []string{"select", "favorite", "comment", "approve", "download"}
		for _, a := range validActions {
			if action == a {
				return true
			}
		}
		return false
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "url":
			errors[field] = "Invalid URL format"
		case "role":
			errors[field] = "Invalid role. Must be: studio_owner, studio_admin, studio_photographer, or client"
		case "project_status":
			errors[field] = "Invalid project status"
		case "action_type":
			errors[field] = "Invalid action type. Must be: select, favorite, comment, approve, or download"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
