package db

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type fakeExecer struct {
	statements []string
	failOn     int
	err        error
}

func (fake *fakeExecer) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	fake.statements = append(fake.statements, sql)
	if fake.err != nil && len(fake.statements) == fake.failOn {
		return pgconn.CommandTag{}, fake.err
	}
	return pgconn.NewCommandTag("OK"), nil
}

func TestReset(t *testing.T) {
	t.Run("executes the schema statement by statement", func(t *testing.T) {
		fake := &fakeExecer{}

		err := Reset(context.Background(), fake)

		require.NoError(t, err)
		require.NotEmpty(t, fake.statements)

		joined := strings.Join(fake.statements, "\n")
		require.Contains(t, joined, "DROP TABLE IF EXISTS items")
		require.Contains(t, joined, "DROP TABLE IF EXISTS users")
		require.Contains(t, joined, "CREATE TABLE items")
		require.Contains(t, joined, "CREATE TABLE users")
		require.Contains(t, joined, "ux_items_barcode")
		require.Contains(t, joined, "ux_items_product_id")

		// Un comando por Exec; el protocolo extendido no acepta más.
		for _, statement := range fake.statements {
			trimmed := strings.TrimSuffix(strings.TrimSpace(statement), ";")
			require.NotContains(t, trimmed, ";")
		}
	})

	t.Run("stops at the first error", func(t *testing.T) {
		execErr := errors.New("permission denied")
		fake := &fakeExecer{failOn: 2, err: execErr}

		err := Reset(context.Background(), fake)

		require.ErrorIs(t, err, execErr)
		require.Len(t, fake.statements, 2)
	})
}
