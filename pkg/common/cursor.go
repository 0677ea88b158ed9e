package common

import (
	"encoding/base64"
	"encoding/json"

	apperrors "github.com/axthosarouris/nva-publication-api-sub001/pkg/errors"
)

// EncodeCursor serializes a continuation key into an opaque pagination token.
// An empty key means the result set is exhausted and yields an empty token.
func EncodeCursor(key map[string]string) string {
	if len(key) == 0 {
		return ""
	}

	raw, err := json.Marshal(key)
	if err != nil {
		// map[string]string cannot fail to marshal
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor parses an opaque pagination token back into a continuation key.
func DecodeCursor(cursor string) (map[string]string, error) {
	if cursor == "" {
		return nil, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, apperrors.NewValidationError("malformed pagination cursor").WithCause(err)
	}

	var key map[string]string
	if err := json.Unmarshal(raw, &key); err != nil {
		return nil, apperrors.NewValidationError("malformed pagination cursor").WithCause(err)
	}

	return key, nil
}
