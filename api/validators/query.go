package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

const maxLanguageLen = 16

// ParseIDParam reads a positive integer path parameter.
func ParseIDParam(r *http.Request, key string) (uint, error) {
	raw := strings.TrimSpace(chi.URLParam(r, key))
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "path parameter must be a positive integer").WithDetails(map[string]any{"field": key})
	}
	return uint(value), nil
}

// ParseQueryIDs reads a comma separated id list such as tag_ids=1,2,3.
func ParseQueryIDs(r *http.Request, key string) ([]uint, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	var out []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, err := strconv.ParseUint(part, 10, 64)
		if err != nil || value == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must list positive integers").WithDetails(map[string]any{"field": key})
		}
		out = append(out, uint(value))
	}
	return out, nil
}

// Language returns the requested translation language, empty for base fields.
func Language(r *http.Request) string {
	return strings.ToLower(SanitizeString(r.URL.Query().Get("language"), maxLanguageLen))
}

// QueryString returns a trimmed, length-capped query value.
func QueryString(r *http.Request, key string, maxLen int) string {
	return SanitizeString(r.URL.Query().Get(key), maxLen)
}
