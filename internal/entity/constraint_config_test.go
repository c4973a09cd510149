package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstraintConfig_IntParam(t *testing.T) {
	c := ConstraintConfig{Parameters: map[string]interface{}{
		"max_consecutive": 5,
		"as_int64":        int64(9),
		"as_float":        float64(3),
		"wrong_type":      "nope",
	}}

	assert.Equal(t, 5, c.IntParam("max_consecutive", 1))
	assert.Equal(t, 9, c.IntParam("as_int64", 1))
	assert.Equal(t, 3, c.IntParam("as_float", 1))
	assert.Equal(t, 1, c.IntParam("wrong_type", 1))
	assert.Equal(t, 1, c.IntParam("missing", 1))
}

func TestConstraintConfig_IntParam_NilParameters(t *testing.T) {
	c := ConstraintConfig{}
	assert.Equal(t, 7, c.IntParam("anything", 7))
}

func TestConstraintConfig_StringSliceParam(t *testing.T) {
	c := ConstraintConfig{Parameters: map[string]interface{}{
		"shifts": []string{"DAY", "NIGHT"},
	}}

	assert.Equal(t, []string{"DAY", "NIGHT"}, c.StringSliceParam("shifts", nil))
	assert.Equal(t, []string{"default"}, c.StringSliceParam("missing", []string{"default"}))
}
