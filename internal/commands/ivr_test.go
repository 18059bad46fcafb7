package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-100-precent/EchoPBX/internal/models"
)

func TestParseIVROption(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    models.IvrMenuOption
		wantErr bool
	}{
		{
			"full form",
			"1=extension:100:Sales",
			models.IvrMenuOption{Digit: "1", DestinationType: "extension", DestinationID: 100, Description: "Sales"},
			false,
		},
		{
			"without description",
			"0=ring_group:7",
			models.IvrMenuOption{Digit: "0", DestinationType: "ring_group", DestinationID: 7},
			false,
		},
		{
			"description keeps colons",
			"9=extension:42:After hours: voicemail",
			models.IvrMenuOption{Digit: "9", DestinationType: "extension", DestinationID: 42, Description: "After hours: voicemail"},
			false,
		},
		{"missing equals", "1extension:100", models.IvrMenuOption{}, true},
		{"missing id", "1=extension", models.IvrMenuOption{}, true},
		{"bad id", "1=extension:abc", models.IvrMenuOption{}, true},
		{"empty digit", "=extension:100", models.IvrMenuOption{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIVROption(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBoolMark(t *testing.T) {
	assert.Equal(t, "yes", boolMark(true))
	assert.Equal(t, "no", boolMark(false))
}
