package db_conn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Схема прогоняется только против живой БД, но ее контракты на удаление
// проверяемы по тексту: они ломаются молча и всплывают как 500 в проде
func TestMigrations_Schema(t *testing.T) {
	sqlb, err := migrationsFS.ReadFile("migrations/001_init.sql")
	require.NoError(t, err)
	schema := string(sqlb)

	t.Run("should not block driver deletion on order history", func(t *testing.T) {
		// Заказы (включая доставленные в retention-окне) не держат
		// профиль водителя: FK зануляется, снимок имени/телефона остается
		assert.Contains(t, schema, "REFERENCES delivery_boys(id) ON DELETE SET NULL")
	})

	t.Run("should cascade driver profile and tokens from user account", func(t *testing.T) {
		assert.Contains(t, schema, "REFERENCES users(id) ON DELETE CASCADE")
		assert.Contains(t, schema, "REFERENCES delivery_boys(id) ON DELETE CASCADE")
	})

	t.Run("should keep ledger independent of orders", func(t *testing.T) {
		// Журнал транзакций переживает retention-очистку заказов
		assert.NotContains(t, schema, "REFERENCES orders")
	})

	t.Run("should leave transaction control to the migration runner", func(t *testing.T) {
		assert.NotContains(t, schema, "BEGIN")
		assert.NotContains(t, schema, "COMMIT")
	})
}
