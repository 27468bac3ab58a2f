package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/rafaelleal24/orders/internal/core/domain"
	"github.com/rafaelleal24/orders/internal/core/serviceerrors"
)

func parseID(id domain.ID) (string, error) {
	parsed, err := uuid.Parse(string(id))
	if err != nil {
		return "", serviceerrors.NewInvalidRequestError("invalid ID format")
	}
	return parsed.String(), nil
}

// parseIDs drops ids that are not UUIDs; such ids cannot match a row.
func parseIDs(ids []domain.ID) []string {
	return lo.Uniq(lo.FilterMap(ids, func(id domain.ID, _ int) (string, bool) {
		parsed, err := parseID(id)
		return parsed, err == nil
	}))
}

func newID() domain.ID {
	return domain.ID(uuid.NewString())
}

func parseAmount(value string) (decimal.Decimal, error) {
	return decimal.NewFromString(value)
}

// now is truncated to the precision timestamptz keeps.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
