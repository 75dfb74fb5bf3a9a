package base64

import (
	stdBase64 "encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	dataPrefix   = "data:"
	base64Marker = ";base64,"
)

var ErrInvalidDataURI = errors.New("invalid data uri")

// GetContentType returns the media type of a data URI, or "" when it is malformed.
func GetContentType(file string) string {
	if !strings.HasPrefix(file, dataPrefix) {
		return ""
	}

	end := strings.Index(file, base64Marker)
	if end < len(dataPrefix) {
		return ""
	}

	return file[len(dataPrefix):end]
}

// Decode splits a data URI into its media type and payload.
func Decode(file string) (contentType string, data []byte, err error) {
	contentType = GetContentType(file)
	if contentType == "" {
		return "", nil, ErrInvalidDataURI
	}

	payload := file[strings.Index(file, base64Marker)+len(base64Marker):]

	data, err = stdBase64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data uri: %w", err)
	}

	if len(data) == 0 {
		return "", nil, ErrInvalidDataURI
	}

	return contentType, data, nil
}
