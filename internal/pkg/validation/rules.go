// Package validation registers the domain-specific binding rules used by request DTOs.
package validation

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/unimatch/internal/app/models"
)

// Tag names usable in `binding:"..."` struct tags
const (
	TagEducationLevel = "edulevel"
	TagCourseLevel    = "courselevel"
)

var rules = map[string]validator.Func{
	TagEducationLevel: func(fl validator.FieldLevel) bool {
		_, ok := models.ParseEducationLevel(fl.Field().String())
		return ok
	},
	TagCourseLevel: func(fl validator.FieldLevel) bool {
		_, ok := models.ParseCourseLevel(fl.Field().String())
		return ok
	},
}

// Register adds the rules to v.
func Register(v *validator.Validate) error {
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// RegisterWithGin adds the rules to gin's default binding validator.
func RegisterWithGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding validator is not go-playground/validator")
	}
	return Register(v)
}
