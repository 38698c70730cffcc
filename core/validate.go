package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var paramValidate *validator.Validate

func init() {
	paramValidate = validator.New()
	paramValidate.RegisterValidation("finite", validateFinite)
}

func validateFinite(fl validator.FieldLevel) bool {
	v := fl.Field().Float()
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidateParams checks the `validate` tags of a parameter struct and reports
// every violation as a single ErrInvalidParameter.
func ValidateParams(params interface{}) error {
	err := paramValidate.Struct(params)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return InvalidParameterf("%s", err)
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fmt.Sprintf("%s=%v violates %s%s", fe.Field(), fe.Value(), fe.Tag(), tagParam(fe.Param())))
	}
	msg := strings.Join(msgs, ", ")
	zap.L().Info(fmt.Sprintf("rejected parameters/reason:%s", msg))
	return InvalidParameterf("%s", msg)
}

func tagParam(p string) string {
	if p == "" {
		return ""
	}
	return "=" + p
}

// ValidateProbability reports whether p is a probability.
func ValidateProbability(name string, p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return InvalidParameterf("%s=%v must be within [0, 1]", name, p)
	}
	return nil
}
