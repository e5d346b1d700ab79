package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validStartInput() StartAgentInput {
	return StartAgentInput{
		Username:      "alejandro.rojas",
		Password:      "secret",
		TargetAccount: "ecoflowpower_ve",
	}
}

func TestValidateStartAgentInputOK(t *testing.T) {
	input := ApplyStartDefaults(validStartInput())
	assert.Empty(t, ValidateStartAgentInput(input))
	assert.Equal(t, DefaultDailyLimit, input.DailyLimit)
	assert.Equal(t, DefaultCheckIntervalMinutes, input.CheckIntervalMinutes)
}

func TestValidateStartAgentInputMissingFields(t *testing.T) {
	errs := ValidateStartAgentInput(StartAgentInput{})

	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
	}
	assert.True(t, fields["username"])
	assert.True(t, fields["password"])
	assert.True(t, fields["target_account"])
}

func TestValidateStartAgentInputBadHandle(t *testing.T) {
	input := validStartInput()
	input.TargetAccount = "conta com espaço"
	errs := ValidateStartAgentInput(input)
	assert.Len(t, errs, 1)
	assert.Equal(t, "target_account", errs[0].Field)
}

func TestValidateStartAgentInputBadVerificationCode(t *testing.T) {
	input := validStartInput()
	input.VerificationCode = "12ab56"
	errs := ValidateStartAgentInput(input)
	assert.Len(t, errs, 1)
	assert.Equal(t, "verification_code", errs[0].Field)
}

func TestValidateStartAgentInputLimits(t *testing.T) {
	input := validStartInput()
	input.DailyLimit = MaxDailyLimit + 1
	input.CheckIntervalMinutes = MaxCheckIntervalMinutes + 1

	errs := ValidateStartAgentInput(input)
	assert.Len(t, errs, 2)
}

func TestApplyStartDefaultsKeepsExplicitValues(t *testing.T) {
	input := validStartInput()
	input.DailyLimit = 50
	input.CheckIntervalMinutes = 10

	out := ApplyStartDefaults(input)
	assert.Equal(t, 50, out.DailyLimit)
	assert.Equal(t, 10, out.CheckIntervalMinutes)
}
