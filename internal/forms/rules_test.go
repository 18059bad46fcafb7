package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuesReaders(t *testing.T) {
	v := Values{
		"name":    "  Board Room  ",
		"count":   "12",
		"flag":    "true",
		"missing": nil,
	}
	assert.Equal(t, "Board Room", v.Str("name"))
	assert.Equal(t, 12, v.Int("count"))
	assert.True(t, v.Bool("flag"))
	assert.Equal(t, "", v.Str("missing"))
	assert.Equal(t, "", v.Str("unknown"))
}

func TestValidateFirstFailureWins(t *testing.T) {
	rules := []Rule{
		Required("name", "Name is required"),
		MinInt("max_members", 2, "Capacity must be at least 2"),
	}
	err := Validate(Values{"name": "", "max_members": 0}, rules)
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name", vErr.Field)
	assert.Equal(t, "Name is required", err.Error())
}

func TestRequiredIf(t *testing.T) {
	rule := RequiredIf("pin_required", "participant_pin", "PIN is required when PIN protection is enabled")

	tests := []struct {
		name    string
		values  Values
		wantErr bool
	}{
		{"flag off, pin empty", Values{"pin_required": false, "participant_pin": ""}, false},
		{"flag off, pin set", Values{"pin_required": false, "participant_pin": "1234"}, false},
		{"flag on, pin set", Values{"pin_required": true, "participant_pin": "1234"}, false},
		{"flag on, pin empty", Values{"pin_required": true, "participant_pin": ""}, true},
		{"flag on, pin whitespace", Values{"pin_required": true, "participant_pin": "   "}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.values, []Rule{rule})
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, "PIN is required when PIN protection is enabled", err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOneOf(t *testing.T) {
	rule := OneOf("routing_type", []string{"extension", "ring_group"}, "Routing type is invalid")
	assert.NoError(t, Validate(Values{"routing_type": "extension"}, []Rule{rule}))
	assert.Error(t, Validate(Values{"routing_type": "queue"}, []Rule{rule}))
	assert.Error(t, Validate(Values{}, []Rule{rule}))
}

func TestClone(t *testing.T) {
	orig := Values{"a": 1}
	dup := orig.Clone()
	dup.Set("a", 2)
	assert.Equal(t, 1, orig.Int("a"))
	assert.Equal(t, 2, dup.Int("a"))
}
