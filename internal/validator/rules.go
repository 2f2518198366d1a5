package validator

import (
	"log"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"jobportal_backend/internal/models"
)

// registerCustomRules installs the domain validation tags. Empty values
// pass every custom rule; 'required' covers presence.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup error.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-application-status", validateApplicationStatus)
	mustRegister("is-job-type", validateJobType)
	mustRegister("is-salary", validateSalary)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ValidRole(models.UserRole(value))
}

func validateApplicationStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ValidApplicationStatus(models.ApplicationStatus(value))
}

func validateJobType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch value {
	case "Full-Time", "Part-Time", "Contract", "Internship":
		return true
	default:
		return false
	}
}

// validateSalary accepts a single number ("85000") or a "min-max"
// range ("50000-70000"). Listings with other encodings still render;
// this rule only guards what employers submit.
func validateSalary(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	if _, err := strconv.ParseFloat(value, 64); err == nil {
		return true
	}
	parts := strings.SplitN(value, "-", 2)
	if len(parts) != 2 {
		return false
	}
	_, errLo := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	_, errHi := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	return errLo == nil && errHi == nil
}
