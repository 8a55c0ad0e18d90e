package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertErrContains(t *testing.T, err error, want string) {
	t.Helper()
	require.Error(t, err)
	assert.Contains(t, err.Error(), want)
}

// =====================
// registerRules
// =====================

func TestRegisterRules_EmptyTagFails(t *testing.T) {
	v := validator.New()

	err := registerRules(v, map[string]validator.Func{"": validCVV})
	assertErrContains(t, err, `register validation ""`)
}

func TestRegisterRules_NilFuncFails(t *testing.T) {
	v := validator.New()

	err := registerRules(v, map[string]validator.Func{"cvv": nil})
	assertErrContains(t, err, `register validation "cvv"`)
}

func TestNew_RegistersCustomRules(t *testing.T) {
	var got *Validator
	require.NotPanics(t, func() { got = New() })

	type card struct {
		CVV string `validate:"cvv"`
	}
	assert.NoError(t, got.v.Struct(card{CVV: "123"}))
	assert.Error(t, got.v.Struct(card{CVV: "12"}))
}
