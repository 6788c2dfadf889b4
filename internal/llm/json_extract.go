package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// fencePattern matches markdown code fences with an optional language tag.
var fencePattern = regexp.MustCompile("(?s)```(\\w*)\\s*\\n(.+?)\\n```")

// ExtractJSON pulls a JSON object or array out of a model response that may
// be wrapped in markdown. Fenced ```json blocks are tried first, then the
// first raw {...} or [...] found by bracket matching.
func ExtractJSON(response string) (string, error) {
	if candidate, ok := extractFenced(response); ok {
		return candidate, nil
	}

	if candidate, ok := extractRaw(response); ok {
		return candidate, nil
	}

	return "", fmt.Errorf("no valid JSON found in response")
}

// ExtractJSONAs extracts JSON and unmarshals it into T.
func ExtractJSONAs[T any](response string) (T, error) {
	var result T

	jsonStr, err := ExtractJSON(response)
	if err != nil {
		return result, err
	}

	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return result, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return result, nil
}

func extractFenced(response string) (string, bool) {
	for _, match := range fencePattern.FindAllStringSubmatch(response, -1) {
		lang := strings.ToLower(match[1])
		if lang != "" && lang != "json" {
			continue
		}

		content := strings.TrimSpace(match[2])
		if !strings.HasPrefix(content, "{") && !strings.HasPrefix(content, "[") {
			continue
		}
		if json.Valid([]byte(content)) {
			return content, true
		}
	}
	return "", false
}

func extractRaw(response string) (string, bool) {
	objAt := strings.Index(response, "{")
	arrAt := strings.Index(response, "[")

	start := -1
	var closer byte
	if objAt >= 0 && (arrAt < 0 || objAt < arrAt) {
		start, closer = objAt, '}'
	} else if arrAt >= 0 {
		start, closer = arrAt, ']'
	}
	if start < 0 {
		return "", false
	}

	candidate := matchBrackets(response[start:], closer)
	if candidate != "" && json.Valid([]byte(candidate)) {
		return candidate, true
	}
	return "", false
}

// matchBrackets returns the prefix of s up to the bracket balancing s[0],
// skipping brackets inside string literals. Returns "" when unbalanced.
func matchBrackets(s string, closer byte) string {
	if len(s) == 0 {
		return ""
	}

	opener := s[0]
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}

	return ""
}
