package handlers

import (
	"sync"

	"github.com/SscSPs/print_quota_service/internal/utils/printing"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the custom binding tags used by the DTOs to gin's validator.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("pagerange", validatePageRange)
		}
	})
}

// validatePageRange checks page range syntax only; bounds depend on the document.
func validatePageRange(fl validator.FieldLevel) bool {
	return printing.ValidatePageRangeSyntax(fl.Field().String()) == nil
}
