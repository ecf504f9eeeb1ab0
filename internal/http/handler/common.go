package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/imanage/imanage-api/internal/domain"
	"go.uber.org/zap"
)

var validate = newValidator()

// newValidator reports json field names so error maps match the payload keys
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondValidationError sends a standardized validation error response with specific field messages
func respondValidationError(w http.ResponseWriter, err error) {
	fields := make(map[string]string)
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[toJSONFieldName(fe.Field())] = formatValidationError(fe)
		}
	}

	respondJSON(w, http.StatusBadRequest, domain.APIError{
		Type:   domain.ErrorTypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
		Detail: "One or more fields failed validation",
		Errors: fields,
	})
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", toJSONFieldName(fe.Field()))
	case "email":
		return "Must be a valid email address"
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", fe.Param())
	case "lt":
		return fmt.Sprintf("Must be less than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", fe.Param())
	default:
		return domain.GetValidationMessage(fe.Tag())
	}
}

// toJSONFieldName converts a Go struct field name to its JSON equivalent (camelCase)
func toJSONFieldName(field string) string {
	if len(field) == 0 {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// respondWithError sends a standardized JSON error response
func respondWithError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, domain.APIError{
		Type:   getErrorType(status),
		Title:  http.StatusText(status),
		Status: status,
		Detail: message,
	})
}

// getErrorType returns the appropriate error type for an HTTP status code
func getErrorType(status int) string {
	switch status {
	case http.StatusBadRequest:
		return domain.ErrorTypeBadRequest
	case http.StatusUnauthorized:
		return domain.ErrorTypeUnauthorized
	case http.StatusNotFound:
		return domain.ErrorTypeNotFound
	case http.StatusConflict:
		return domain.ErrorTypeConflict
	case http.StatusServiceUnavailable:
		return domain.ErrorTypeUnavailable
	default:
		return domain.ErrorTypeInternal
	}
}

// statusForKind is the only place error kinds become status codes
func statusForKind(kind domain.ErrorKind) (int, string) {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound, domain.ErrorTypeNotFound
	case domain.KindValidation:
		return http.StatusBadRequest, domain.ErrorTypeValidation
	case domain.KindConflict:
		return http.StatusConflict, domain.ErrorTypeConflict
	case domain.KindUnavailable:
		return http.StatusServiceUnavailable, domain.ErrorTypeUnavailable
	default:
		return http.StatusInternalServerError, domain.ErrorTypeInternal
	}
}

// respondError writes err as an APIError. Structured errors keep their user
// message; anything else is logged and reported as a generic 500.
func respondError(w http.ResponseWriter, logger *zap.Logger, action string, err error) {
	derr, ok := domain.AsError(err)
	if !ok {
		logger.Error("failed to "+action, zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to "+action)
		return
	}

	status, errType := statusForKind(derr.Kind)
	if status >= http.StatusInternalServerError {
		logger.Error("failed to "+action, zap.Error(err))
	} else {
		logger.Debug("request rejected", zap.String("action", action), zap.Error(err))
	}

	body := domain.APIError{
		Type:       errType,
		Title:      http.StatusText(status),
		Status:     status,
		Detail:     derr.Message,
		References: derr.References,
	}
	if derr.Field != "" {
		body.Errors = map[string]string{derr.Field: derr.Message}
	}
	respondJSON(w, status, body)
}

// decodeJSON reads and validates a request body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			respondWithError(w, http.StatusBadRequest, "Request body is required")
			return false
		}
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		respondValidationError(w, err)
		return false
	}
	return true
}

// parseID reads the {id} route parameter
func parseID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s", param))
		return uuid.Nil, false
	}
	return id, true
}

// parseIndex reads the 1-based {index} of a line item
func parseIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 1 {
		respondWithError(w, http.StatusBadRequest, "Item index must be a positive integer")
		return 0, false
	}
	return index, true
}
