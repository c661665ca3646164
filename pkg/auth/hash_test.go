package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hashService := &HashService{Cost: bcrypt.MinCost}

	tests := []struct {
		name        string
		password    string
		expectError error
	}{
		{
			name:     "Valid Password",
			password: "Str0ng!Pass",
		},
		{
			name:        "Empty Password",
			password:    "",
			expectError: ErrEmptyPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashedPassword, err := hashService.HashPassword(tt.password)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Empty(t, hashedPassword)
			} else {
				assert.NoError(t, err)
				assert.NotEqual(t, tt.password, hashedPassword)
			}
		})
	}
}

func TestComparePassword(t *testing.T) {
	hashService := &HashService{Cost: bcrypt.MinCost}
	hashed, err := hashService.HashPassword("Str0ng!Pass")
	assert.NoError(t, err)

	tests := []struct {
		name           string
		password       string
		hashedPassword string
		expectMatch    bool
	}{
		{
			name:           "Matching Password",
			password:       "Str0ng!Pass",
			hashedPassword: hashed,
			expectMatch:    true,
		},
		{
			name:           "Non-Matching Password",
			password:       "Wr0ng!Pass",
			hashedPassword: hashed,
			expectMatch:    false,
		},
		{
			name:           "Empty Hash",
			password:       "Str0ng!Pass",
			hashedPassword: "",
			expectMatch:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := hashService.ComparePassword(tt.hashedPassword, tt.password)
			assert.Equal(t, tt.expectMatch, match)
		})
	}
}
