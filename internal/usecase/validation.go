package usecase

import (
	"fmt"
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	igHandleRegex  = regexp.MustCompile(`^[a-zA-Z0-9._]{1,30}$`)
	twoFACodeRegex = regexp.MustCompile(`^[0-9]{6}$`)
)

// Limites operacionais do agente. Acima de 200 envios/dia a conta entra
// em território de bloqueio da plataforma.
const (
	DefaultDailyLimit           = 30
	DefaultCheckIntervalMinutes = 30
	MaxDailyLimit               = 200
	MaxCheckIntervalMinutes     = 720
)

func ValidateStartAgentInput(input StartAgentInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Username) == "" {
		errors = append(errors, ValidationError{"username", "is required"})
	} else if !igHandleRegex.MatchString(input.Username) {
		errors = append(errors, ValidationError{"username", "must be a valid instagram handle"})
	}

	if input.Password == "" {
		errors = append(errors, ValidationError{"password", "is required"})
	}

	if strings.TrimSpace(input.TargetAccount) == "" {
		errors = append(errors, ValidationError{"target_account", "is required"})
	} else if !igHandleRegex.MatchString(input.TargetAccount) {
		errors = append(errors, ValidationError{"target_account", "must be a valid instagram handle"})
	}

	if input.VerificationCode != "" && !twoFACodeRegex.MatchString(input.VerificationCode) {
		errors = append(errors, ValidationError{"verification_code", "must be a 6 digit code"})
	}

	if input.DailyLimit < 0 || input.DailyLimit > MaxDailyLimit {
		errors = append(errors, ValidationError{"daily_limit", fmt.Sprintf("must be between 1 and %d", MaxDailyLimit)})
	}

	if input.CheckIntervalMinutes < 0 || input.CheckIntervalMinutes > MaxCheckIntervalMinutes {
		errors = append(errors, ValidationError{"check_interval_minutes", fmt.Sprintf("must be between 1 and %d", MaxCheckIntervalMinutes)})
	}

	return errors
}

// ApplyStartDefaults preenche limite e intervalo quando não informados.
func ApplyStartDefaults(input StartAgentInput) StartAgentInput {
	if input.DailyLimit == 0 {
		input.DailyLimit = DefaultDailyLimit
	}
	if input.CheckIntervalMinutes == 0 {
		input.CheckIntervalMinutes = DefaultCheckIntervalMinutes
	}
	return input
}
