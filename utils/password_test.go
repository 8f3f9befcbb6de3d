package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidPassword(t *testing.T) {
	cases := []struct {
		password string
		valid    bool
	}{
		{"Abcdefg1", true},
		{"abc", false},
		{"ALLUPPER1", false},
		{"alllower1", false},
		{"NoDigitsHere", false},
		{"Short1a", false},
	}

	for _, tc := range cases {
		t.Run(tc.password, func(t *testing.T) {
			assert.Equal(t, tc.valid, IsValidPassword(tc.password))
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Abcdefg1")
	require.NoError(t, err)
	assert.NotEqual(t, "Abcdefg1", hash)

	assert.True(t, CheckPassword(hash, "Abcdefg1"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
