package service

import (
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"strings"

	"github.com/pageza/fridge-chef/backend/internal/types"
)

// fenceMarker matches an opening fence with an optional language tag, or a closing fence
var fenceMarker = regexp.MustCompile("```[A-Za-z0-9_+-]*")

var errNotObject = errors.New("expected a JSON object")

// SanitizeRecipeJSON strips markdown code fences from raw model output and
// makes sure the resulting object carries a nutrition entry. The returned
// text is valid JSON.
func SanitizeRecipeJSON(raw string) (string, error) {
	cleaned := strings.TrimSpace(fenceMarker.ReplaceAllString(raw, ""))

	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return "", &MalformedOutputError{Raw: raw, Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return "", &MalformedOutputError{Raw: raw, Err: errors.New("unexpected data after JSON object")}
	}
	if obj == nil {
		return "", &MalformedOutputError{Raw: raw, Err: errNotObject}
	}

	if nutrition, ok := obj["nutrition"]; ok && nutrition != nil {
		return cleaned, nil
	}

	obj["nutrition"] = types.NutritionUnavailable
	patched, err := json.Marshal(obj)
	if err != nil {
		return "", &MalformedOutputError{Raw: raw, Err: err}
	}
	return string(patched), nil
}
