package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdulachik/fanpost/internal/db"
	"github.com/abdulachik/fanpost/internal/fanvue"
)

type fakeVerifier struct {
	verifyErr error
	creators  []fanvue.Creator
	listErr   error

	verifyCalls int
	listCalls   int
}

func (f *fakeVerifier) VerifyToken(ctx context.Context) error {
	f.verifyCalls++
	return f.verifyErr
}

func (f *fakeVerifier) ListCreators(ctx context.Context) ([]fanvue.Creator, error) {
	f.listCalls++
	return f.creators, f.listErr
}

func openTestDB(t *testing.T, path string) *db.Store {
	t.Helper()

	ctx := context.Background()
	database, err := db.NewStore(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, database.Migrate(ctx))
	return database
}

func TestStore_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("success resolves first creator", func(t *testing.T) {
		store := NewStore(openTestDB(t, filepath.Join(t.TempDir(), "test.db")))
		api := &fakeVerifier{creators: []fanvue.Creator{
			{UUID: "acc-1", DisplayName: "Luna"},
			{UUID: "acc-2", DisplayName: "Other"},
		}}

		label, err := store.Authenticate(ctx, api, "tok-1", "ref-1")
		require.NoError(t, err)

		assert.Equal(t, "Luna", label)
		assert.Equal(t, "tok-1", store.AccessToken())
		assert.Equal(t, "acc-1", store.AccountUUID())
		assert.Equal(t, "Luna", store.AccountName())
		assert.True(t, store.IsAuthenticated())
	})

	t.Run("display name falls back to uuid", func(t *testing.T) {
		store := NewStore(openTestDB(t, filepath.Join(t.TempDir(), "test.db")))
		api := &fakeVerifier{creators: []fanvue.Creator{{UUID: "acc-1"}}}

		label, err := store.Authenticate(ctx, api, "tok-1", "")
		require.NoError(t, err)
		assert.Equal(t, "acc-1", label)
	})

	t.Run("tokens are trimmed", func(t *testing.T) {
		store := NewStore(openTestDB(t, filepath.Join(t.TempDir(), "test.db")))
		api := &fakeVerifier{creators: []fanvue.Creator{{UUID: "acc-1", DisplayName: "Luna"}}}

		_, err := store.Authenticate(ctx, api, "  tok-1  ", "  ref-1  ")
		require.NoError(t, err)
		assert.Equal(t, "tok-1", store.AccessToken())
	})

	t.Run("empty token rejected without network calls", func(t *testing.T) {
		store := NewStore(openTestDB(t, filepath.Join(t.TempDir(), "test.db")))
		api := &fakeVerifier{}

		_, err := store.Authenticate(ctx, api, "   ", "")

		var valErr *fanvue.ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, "access_token", valErr.Field)
		assert.Equal(t, 0, api.verifyCalls)
		assert.Equal(t, 0, api.listCalls)
	})

	t.Run("verification failure rolls token back to unset", func(t *testing.T) {
		store := NewStore(openTestDB(t, filepath.Join(t.TempDir(), "test.db")))
		api := &fakeVerifier{verifyErr: errors.New("verify token: not authenticated")}

		_, err := store.Authenticate(ctx, api, "bad-token", "")
		require.Error(t, err)

		assert.Empty(t, store.AccessToken())
		assert.False(t, store.IsAuthenticated())
		assert.Equal(t, 0, api.listCalls)
	})

	t.Run("creator listing failure rolls back", func(t *testing.T) {
		store := NewStore(openTestDB(t, filepath.Join(t.TempDir(), "test.db")))
		api := &fakeVerifier{listErr: errors.New("list creators: boom")}

		_, err := store.Authenticate(ctx, api, "tok-1", "")
		require.Error(t, err)
		assert.Empty(t, store.AccessToken())
	})

	t.Run("zero creators rolls back", func(t *testing.T) {
		store := NewStore(openTestDB(t, filepath.Join(t.TempDir(), "test.db")))
		api := &fakeVerifier{creators: []fanvue.Creator{}}

		_, err := store.Authenticate(ctx, api, "tok-1", "")
		require.Error(t, err)

		assert.Contains(t, err.Error(), "no creator accounts")
		assert.Empty(t, store.AccessToken())
		assert.Empty(t, store.AccountUUID())
	})
}

func TestStore_Persistence(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "session.db")

	first := NewStore(openTestDB(t, dbPath))
	api := &fakeVerifier{creators: []fanvue.Creator{{UUID: "acc-1", DisplayName: "Luna"}}}
	_, err := first.Authenticate(ctx, api, "tok-1", "ref-1")
	require.NoError(t, err)

	// A fresh store on the same database restores the session.
	second := NewStore(openTestDB(t, dbPath))
	require.NoError(t, second.Load(ctx))

	assert.Equal(t, "tok-1", second.AccessToken())
	assert.Equal(t, "acc-1", second.AccountUUID())
	assert.Equal(t, "Luna", second.AccountName())
}

func TestStore_Load_EmptyDatabase(t *testing.T) {
	store := NewStore(openTestDB(t, filepath.Join(t.TempDir(), "empty.db")))

	require.NoError(t, store.Load(context.Background()))
	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.AccountUUID())
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "session.db")

	store := NewStore(openTestDB(t, dbPath))
	api := &fakeVerifier{creators: []fanvue.Creator{{UUID: "acc-1", DisplayName: "Luna"}}}
	_, err := store.Authenticate(ctx, api, "tok-1", "")
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx))
	assert.False(t, store.IsAuthenticated())

	// The cleared session must not come back on reload.
	reloaded := NewStore(openTestDB(t, dbPath))
	require.NoError(t, reloaded.Load(ctx))
	assert.False(t, reloaded.IsAuthenticated())
}
