package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt64(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
	}{
		{"Nil", nil, 0},
		{"Int64", int64(6000), 6000},
		{"Int", 12, 12},
		{"Uint32", uint32(7), 7},
		{"Bytes", []byte("123"), 123},
		{"String", " 42 ", 42},
		{"Large", "4294967296", 4294967296},
		{"Garbage", "abc", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt64(tt.in))
		})
	}
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "zork1", ToString("zork1"))
	assert.Equal(t, "en", ToString([]byte("en")))
	assert.Equal(t, "5", ToString(5))
}
