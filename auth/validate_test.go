package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"letters and digits", "abcd1234", true},
		{"mixed case", "Abcd1234", true},
		{"long", "a1a1a1a1a1a1a1a1", true},
		{"too short", "abc1234", false},
		{"digits only", "12345678", false},
		{"letters only", "abcdefgh", false},
		{"contains symbol", "abcd123!", false},
		{"contains space", "abcd 1234", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ValidPassword(tt.password))
		})
	}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"simple", "a@x.com", true},
		{"subdomain", "user@mail.example.com", true},
		{"plus tag", "user+tag@example.com", true},
		{"no at", "userexample.com", false},
		{"no tld", "user@example", false},
		{"no local part", "@example.com", false},
		{"spaces", "us er@example.com", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ValidEmail(tt.email))
		})
	}
}
