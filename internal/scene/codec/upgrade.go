package codec

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Upgrade migrates a token from an older snapshot format to the current one.
//
// Version 0 tokens (written before the format carried a version stamp) are
// the only older format: they are the same shape as version 1 but lack the
// "version" field. Upgrading stamps the field in place.
//
// Tokens already at the current version are returned unchanged.
func Upgrade(t Token) (Token, error) {
	if !gjson.Valid(string(t)) {
		return "", ErrMalformedToken
	}

	version := gjson.Get(string(t), "version")
	if version.Exists() {
		if version.Int() > FormatVersion {
			return "", fmt.Errorf("%w: %d", ErrUnsupportedVersion, version.Int())
		}
		return t, nil
	}

	stamped, err := sjson.Set(string(t), "version", FormatVersion)
	if err != nil {
		return "", fmt.Errorf("upgrading snapshot: %w", err)
	}
	return Token(stamped), nil
}
