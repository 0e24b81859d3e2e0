package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/swordfish/internal/core/domain"
)

func TestParseWindowIdent(t *testing.T) {
	tests := []struct {
		in   string
		want WindowIdent
	}{
		{"MAIN", WindowMain},
		{"main", WindowMain},
		{" Settings ", WindowSettings},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWindowIdent(tt.in)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseWindowIdent_Unknown(t *testing.T) {
	_, err := ParseWindowIdent("TRAY")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
