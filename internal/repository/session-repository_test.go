package repository

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gojobot/internal/domain"
	"gojobot/internal/i18n"
	"gojobot/traits/database"
)

func TestMemoryRepositoryMissReturnsNil(t *testing.T) {
	repo := NewMemorySessionRepository()

	sess, err := repo.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestMemoryRepositorySaveAndGet(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	sess := domain.NewSession(42)
	sess.Language = i18n.LangEN
	sess.PreferredStore = "1553"
	require.NoError(t, repo.Save(ctx, sess))

	got, err := repo.Get(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, i18n.LangEN, got.Language)
	assert.Equal(t, "1553", got.PreferredStore)
}

func TestMemoryRepositoryReturnsCopies(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.NewSession(42)))

	first, err := repo.Get(ctx, 42)
	require.NoError(t, err)
	first.PreferredStore = "9999"

	second, err := repo.Get(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, second.PreferredStore, "mutating a returned session must not change the store")
}

func TestDecodeSessionNormalizesLanguage(t *testing.T) {
	sess, err := decodeSession([]byte(`{"telegram_id":42,"language":"klingon","preferred_store":"1553"}`))
	require.NoError(t, err)
	assert.Equal(t, i18n.Default, sess.Language)
	assert.Equal(t, "1553", sess.PreferredStore)

	sess, err = decodeSession([]byte(`{"telegram_id":42,"language":"en"}`))
	require.NoError(t, err)
	assert.Equal(t, i18n.LangEN, sess.Language)

	_, err = decodeSession([]byte(`not json`))
	assert.Error(t, err)
}

func newSQLiteRepo(t *testing.T) *SQLiteSessionRepository {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// a single connection keeps every statement on the same :memory: database
	db.SetMaxOpenConns(1)

	require.NoError(t, database.CreateTables(db, zap.NewNop()))
	return NewSQLiteSessionRepository(db, zap.NewNop())
}

func TestSQLiteRepositoryMissReturnsNil(t *testing.T) {
	repo := newSQLiteRepo(t)

	sess, err := repo.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestSQLiteRepositorySaveAndGet(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	sess := domain.NewSession(42)
	sess.PreferredStore = "1553"
	require.NoError(t, repo.Save(ctx, sess))

	got, err := repo.Get(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(42), got.TelegramID)
	assert.Equal(t, i18n.Default, got.Language)
	assert.Equal(t, "1553", got.PreferredStore)
}

func TestSQLiteRepositoryUpsert(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	sess := domain.NewSession(42)
	require.NoError(t, repo.Save(ctx, sess))

	sess.Language = i18n.LangAM
	sess.PreferredStore = "0042"
	require.NoError(t, repo.Save(ctx, sess))

	got, err := repo.Get(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, i18n.LangAM, got.Language)
	assert.Equal(t, "0042", got.PreferredStore)
}
