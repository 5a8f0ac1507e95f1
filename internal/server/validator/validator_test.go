package validator

import (
	"errors"
	"testing"

	"github.com/nulzo/zoo-api/internal/store/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_ZooInput(t *testing.T) {
	v := New()

	assert.NoError(t, v.Struct(model.ZooInput{Name: "Lincoln Park Zoo"}))

	err := v.Struct(model.ZooInput{})
	require.Error(t, err)

	errs := v.ParseError(err)
	assert.Equal(t, map[string]string{"name": "name is a required field"}, errs)
}

func TestValidator_ParseError_NonValidation(t *testing.T) {
	v := New()

	errs := v.ParseError(errors.New("unexpected EOF"))
	assert.Contains(t, errs, "body")
}
