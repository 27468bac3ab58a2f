package domain

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ID string

// ValidateID accepts both id formats the storage adapters generate:
// 24-char hex object ids and canonical UUIDs.
func ValidateID(id string) bool {
	if len(id) == 24 {
		return true
	}
	return len(id) == 36 && uuid.Validate(id) == nil
}

// NormalizeID maps the spellings both stores resolve to one key: object
// ids are lowercased, and any UUID form uuid.Parse accepts (upper case,
// braces, urn:uuid:, no hyphens) becomes its canonical hyphenated form.
// Anything else is returned trimmed and unchanged.
func NormalizeID(id ID) ID {
	raw := strings.TrimSpace(string(id))
	if len(raw) == 24 {
		if _, err := hex.DecodeString(raw); err == nil {
			return ID(strings.ToLower(raw))
		}
	}
	if parsed, err := uuid.Parse(raw); err == nil {
		return ID(parsed.String())
	}
	return ID(raw)
}

func NewAmountFromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

func NewAmountFromString(value string) (decimal.Decimal, error) {
	return decimal.NewFromString(value)
}

type Event interface {
	GetName() string
	GetEntityName() string
}
