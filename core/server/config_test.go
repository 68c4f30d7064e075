package server_test

import (
	"testing"

	"story-manager/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_IsValidProfile(t *testing.T) {
	tests := []struct {
		name    string
		profile string
		want    bool
	}{
		{"Library", server.ProfileLibrary, true},
		{"Legacy", server.ProfileLegacy, true},
		{"Invalid", "arcturus", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{Profile: tt.profile}
			assert.Equal(t, tt.want, c.IsValidProfile())
		})
	}
}
