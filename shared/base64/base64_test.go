package base64_test

import (
	"roomly/shared/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pixelPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="

func TestGetContentType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "png avatar", input: pixelPNG, expected: "image/png"},
		{name: "webp avatar", input: "data:image/webp;base64,UklGRg==", expected: "image/webp"},
		{name: "parameters kept", input: "data:image/svg+xml;charset=utf-8;base64,PHN2Zz4=", expected: "image/svg+xml;charset=utf-8"},
		{name: "empty string", input: "", expected: ""},
		{name: "missing data prefix", input: "image/png;base64,AAAA", expected: ""},
		{name: "missing base64 marker", input: "data:image/png,AAAA", expected: ""},
		{name: "empty media type", input: "data:;base64,", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, base64.GetContentType(tt.input))
		})
	}
}

func TestDecode(t *testing.T) {
	contentType, data, err := base64.Decode(pixelPNG)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, []byte("\x89PNG"), data[:4])

	_, _, err = base64.Decode("data:image/png;base64,%%%")
	assert.Error(t, err)

	_, _, err = base64.Decode("data:image/png;base64,")
	assert.ErrorIs(t, err, base64.ErrInvalidDataURI)

	_, _, err = base64.Decode("not a data uri")
	assert.ErrorIs(t, err, base64.ErrInvalidDataURI)
}
