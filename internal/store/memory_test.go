package store

import (
	"context"
	"testing"

	"fcastillo/sri-comprobantes/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreAppendAndList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	c1 := &models.Comprobante{
		ClaveAcceso:  "clave-1",
		CodDoc:       models.TipoFactura,
		Tipo:         "Factura",
		ImporteTotal: decimal.RequireFromString("120.00"),
	}
	c2 := &models.Comprobante{
		ClaveAcceso: "clave-2",
		CodDoc:      models.TipoRetencion,
		Tipo:        "Retención",
	}

	assert.NoError(t, store.Append(ctx, c1))
	assert.NoError(t, store.Append(ctx, c2))

	list, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	// Insertion order is preserved
	assert.Equal(t, "clave-1", list[0].ClaveAcceso)
	assert.Equal(t, "clave-2", list[1].ClaveAcceso)
	assert.False(t, list[0].CreatedAt.IsZero())
}

func TestMemoryStoreRejectsDuplicateClave(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	c := &models.Comprobante{ClaveAcceso: "clave-1"}
	assert.NoError(t, store.Append(ctx, c))

	err := store.Append(ctx, &models.Comprobante{ClaveAcceso: "clave-1"})
	assert.ErrorIs(t, err, ErrDuplicateClave)

	list, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMemoryStoreListClaves(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	claves, err := store.ListClaves(ctx)
	assert.NoError(t, err)
	assert.Empty(t, claves)

	assert.NoError(t, store.Append(ctx, &models.Comprobante{ClaveAcceso: "clave-1"}))
	assert.NoError(t, store.Append(ctx, &models.Comprobante{ClaveAcceso: "clave-2"}))

	claves, err = store.ListClaves(ctx)
	assert.NoError(t, err)
	assert.Len(t, claves, 2)
	_, ok := claves["clave-1"]
	assert.True(t, ok)
	_, ok = claves["clave-2"]
	assert.True(t, ok)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	c := &models.Comprobante{ClaveAcceso: "clave-1", RazonSocialEmisor: "Original"}
	assert.NoError(t, store.Append(ctx, c))

	// Mutating the appended struct must not affect the stored record
	c.RazonSocialEmisor = "Mutated"

	list, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "Original", list[0].RazonSocialEmisor)
}
