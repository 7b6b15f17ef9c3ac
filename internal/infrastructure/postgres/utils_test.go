package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Orders-api/internal/domain"
)

func TestConstraintError(t *testing.T) {
	dup := fmt.Errorf("insert order: %w", &pgconn.PgError{Code: "23505", ConstraintName: "orders_lookup_code_order_key"})
	err := constraintError(dup)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"An order with this lookup_code_order already exists."}, vErr.Fields["lookup_code_order"])

	fk := &pgconn.PgError{Code: "23503", ConstraintName: "orders_status_fk"}
	require.ErrorAs(t, constraintError(fk), &vErr)
	assert.Contains(t, vErr.Fields, "status")

	assert.Nil(t, constraintError(&pgconn.PgError{Code: "23505", ConstraintName: "otro"}))
	assert.Nil(t, constraintError(errors.New("conexión rechazada")))
}

func TestNullHelpers(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	assert.Equal(t, "x", emptyIfNull(nullIfEmpty("x")))
	assert.Equal(t, "", emptyIfNull(nil))
}
