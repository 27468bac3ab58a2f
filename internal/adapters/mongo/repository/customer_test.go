package repository_test

import (
	"context"
	"testing"

	"github.com/rafaelleal24/orders/internal/adapters/mongo/repository"
	"github.com/rafaelleal24/orders/internal/core/serviceerrors"
)

func TestCustomerRepository_Create(t *testing.T) {
	repo := repository.NewCustomerRepository(testDB)
	ctx := context.Background()

	t.Run("creates customer and returns valid ID", func(t *testing.T) {
		id, err := repo.Create(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(string(id)) != 24 {
			t.Fatalf("expected 24-char hex ID, got %q (len=%d)", id, len(string(id)))
		}
	})
}

func TestCustomerRepository_FindByID(t *testing.T) {
	repo := repository.NewCustomerRepository(testDB)
	ctx := context.Background()

	t.Run("returns existing customer", func(t *testing.T) {
		id, err := repo.Create(ctx)
		if err != nil {
			t.Fatalf("setup: create failed: %v", err)
		}

		customer, err := repo.FindByID(ctx, id)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if customer.ID != id {
			t.Fatalf("expected id %s, got %s", id, customer.ID)
		}
		if customer.CreatedAt.IsZero() {
			t.Fatal("expected CreatedAt to be stored")
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "aabbccddee112233aabbccdd")
		if !serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			t.Fatalf("expected KindNotFound, got %v", err)
		}
	})

	t.Run("invalid ID format", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "invalid-id")
		if !serviceerrors.IsOfKind(err, serviceerrors.KindInvalidRequest) {
			t.Fatalf("expected KindInvalidRequest, got %v", err)
		}
	})
}
