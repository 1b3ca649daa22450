package engine

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrMalformedOutput reports engine output that lacks the expected
// timing-line structure.
var ErrMalformedOutput = errors.New("malformed engine output")

// DecodeOutput converts raw engine output to a string. Candidate
// decodings are tried in order; the first that accepts the whole
// buffer wins. If none do, invalid sequences are replaced rather than
// reported, so decoding never fails.
func DecodeOutput(raw []byte) string {
	candidates := []transform.Transformer{
		encoding.UTF8Validator,
		charmap.ISO8859_1.NewDecoder(),
	}

	for _, t := range candidates {
		if out, _, err := transform.Bytes(t, raw); err == nil {
			return string(out)
		}
	}

	out, _, _ := transform.Bytes(unicode.UTF8.NewDecoder(), raw)

	return string(out)
}

// ExtractTiming pulls the timing figure out of raw engine output.
//
// The engine prints its timing summary as the last substantive line,
// followed by a trailing newline, with the shape
// "label=value trailing text". The value after the first '=' of the
// first space-delimited field is returned verbatim, with no numeric or
// unit validation.
func ExtractTiming(raw []byte) (string, error) {
	lines := strings.Split(DecodeOutput(raw), "\n")
	if len(lines) < 2 {
		return "", fmt.Errorf(
			"%w: expected at least 2 lines, got %d",
			ErrMalformedOutput, len(lines),
		)
	}

	timingLine := strings.TrimSpace(lines[len(lines)-2])

	// First space-delimited field; trailing text after the value is
	// free-form commentary from the engine.
	token, _, _ := strings.Cut(timingLine, " ")

	_, value, found := strings.Cut(token, "=")
	if !found {
		return "", fmt.Errorf(
			"%w: token %q has no '='", ErrMalformedOutput, token,
		)
	}

	return value, nil
}
