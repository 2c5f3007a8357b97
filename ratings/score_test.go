package ratings

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidScore(t *testing.T) {
	tests := []struct {
		name  string
		score int
		want  bool
	}{
		{"lowest valid", 1, true},
		{"highest valid", 10, true},
		{"mid scale", 7, true},
		{"zero", 0, false},
		{"negative", -3, false},
		{"above scale", 11, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, validScore(tt.score))
		})
	}
}
