package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SchemaValidator validates a parsed struct after JSON extraction.
// Returns nil if valid, or a descriptive error if invalid.
type SchemaValidator[T any] func(T) error

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// ValidateTags is a SchemaValidator that enforces `validate` struct tags.
func ValidateTags[T any](v T) error {
	return structValidator.Struct(v)
}

// ExtractJSON extracts a JSON object of type T from raw LLM text output.
// It handles markdown code fences, leading/trailing text, nested braces,
// comments, trailing commas and bare leading decimals.
// If validator is non-nil, the extracted value is validated before return.
func ExtractJSON[T any](raw string, validate SchemaValidator[T]) (T, error) {
	var zero T

	jsonStr := extractJSONBlock(stripCodeFences(raw))
	if jsonStr == "" {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}
	jsonStr = repairJSON(jsonStr)

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	if validate != nil {
		if err := validate(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}

	return result, nil
}

// stripCodeFences drops markdown fence lines (```json, ```), keeping
// whatever sits between them.
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// walkJSON calls visit for every byte of s that lies outside a string
// literal, passing its index. Bytes inside strings are skipped.
func walkJSON(s string, visit func(i int) (skipTo int)) {
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
			continue
		case inString && c == '\\':
			escaped = true
			continue
		case c == '"':
			inString = !inString
			continue
		case inString:
			continue
		}
		if next := visit(i); next > i {
			i = next - 1
		}
	}
}

// extractJSONBlock finds the first balanced { ... } block in the text.
func extractJSONBlock(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}
	depth := 0
	end := -1
	walkJSON(s[start:], func(i int) int {
		if end >= 0 {
			return len(s)
		}
		switch s[start+i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				end = start + i + 1
			}
		}
		return 0
	})
	if end < 0 {
		return ""
	}
	return s[start:end]
}

// repairJSON fixes what models commonly get wrong outside string values:
// comments, trailing commas before a closing bracket, and numbers
// written as ".5" or "-.5".
func repairJSON(s string) string {
	drop := make([]bool, len(s))
	zeroBefore := make([]bool, len(s))

	walkJSON(s, func(i int) int {
		c := s[i]
		switch {
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			j := i
			for j < len(s) && s[j] != '\n' {
				drop[j] = true
				j++
			}
			return j
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			j := i
			for j < len(s) && !(s[j] == '/' && j > i+2 && s[j-1] == '*') {
				drop[j] = true
				j++
			}
			if j < len(s) {
				drop[j] = true
				j++
			}
			return j
		case c == ',':
			if k := nextNonSpace(s, i+1); k < len(s) && (s[k] == '}' || s[k] == ']') {
				drop[i] = true
			}
		case c == '.' && i+1 < len(s) && isDigit(s[i+1]) && isNumericBoundary(prevNonSpace(s, i-1)):
			zeroBefore[i] = true
		}
		return 0
	})

	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		if drop[i] {
			continue
		}
		if zeroBefore[i] {
			b.WriteByte('0')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}

func nextNonSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func prevNonSpace(s string, i int) byte {
	for ; i >= 0; i-- {
		if !isSpace(s[i]) {
			return s[i]
		}
	}
	return 0
}

func isNumericBoundary(c byte) bool {
	switch c {
	case 0, ':', ',', '[', '{', '-':
		return true
	default:
		return false
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
