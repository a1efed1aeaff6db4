package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, NullIfEmpty(""))
	if got := NullIfEmpty("3B"); assert.NotNil(t, got) {
		assert.Equal(t, "3B", *got)
	}
}

func TestStringOrDefault(t *testing.T) {
	empty := ""
	set := "x.png"
	assert.Equal(t, "def", StringOrDefault(nil, "def"))
	assert.Equal(t, "def", StringOrDefault(&empty, "def"))
	assert.Equal(t, "x.png", StringOrDefault(&set, "def"))
}

func TestNullInt64(t *testing.T) {
	assert.Nil(t, NullInt64(0))
	assert.Equal(t, int64(7), *NullInt64(7))
}
