package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	pkgerrors "github.com/epc-retail/exclusivity-backend/pkg/errors"
)

// QueryString returns a trimmed query parameter.
func QueryString(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// RequireQuery returns the parameter or a validation error naming it.
func RequireQuery(r *http.Request, key string) (string, error) {
	value := QueryString(r, key)
	if value == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "missing query parameter").
			WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

// ParseQueryInt parses an optional bounded integer parameter.
func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := QueryString(r, key)
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").
			WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").
			WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParsePathUUID parses a UUID path segment.
func ParsePathUUID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "identifier must be a UUID")
	}
	return id, nil
}
