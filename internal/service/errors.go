package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/imanage/imanage-api/internal/domain"
	"github.com/ttacon/libphonenumber"
)

// DefaultPhoneRegion is used for phone numbers entered without a country code
const DefaultPhoneRegion = "US"

// parseRef parses an optional foreign key. Blank input means no reference
// and yields nil, so it is stored as NULL and never as an empty string.
func parseRef(field, raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domain.NewValidationError(field, fmt.Sprintf("%s %q is not a valid id", field, raw))
	}
	return &id, nil
}

// parseRequiredRef parses a mandatory foreign key
func parseRequiredRef(field, raw string) (uuid.UUID, error) {
	id, err := parseRef(field, raw)
	if err != nil {
		return uuid.Nil, err
	}
	if id == nil {
		return uuid.Nil, domain.NewValidationError(field, fmt.Sprintf("%s is required", field))
	}
	return *id, nil
}

// normalizePhone formats phone as E.164 when it parses as a valid number.
// Anything else is contact text and is kept as entered, trimmed.
func normalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}
	num, err := libphonenumber.Parse(phone, DefaultPhoneRegion)
	if err != nil || !libphonenumber.IsValidNumber(num) {
		return phone
	}
	return libphonenumber.Format(num, libphonenumber.E164)
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}
