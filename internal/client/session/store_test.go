package session

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/myblog/internal/client/router"
	"github.com/dmitrijs2005/myblog/internal/client/storage"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNav struct {
	navigated []string
	replaced  []string
}

func (n *recordingNav) Navigate(p string) { n.navigated = append(n.navigated, p) }
func (n *recordingNav) Replace(p string)  { n.replaced = append(n.replaced, p) }

// failingStorage returns err from every call.
type failingStorage struct{ err error }

func (f failingStorage) GetItem(context.Context, string) (string, bool, error) {
	return "", false, f.err
}
func (f failingStorage) GetItems(context.Context, ...string) (map[string]string, error) {
	return nil, f.err
}
func (f failingStorage) SetItems(context.Context, map[string]string) error { return f.err }
func (f failingStorage) RemoveItems(context.Context, ...string) error      { return f.err }
func (f failingStorage) Items(context.Context) (map[string]string, error) {
	return nil, f.err
}

var testIdentity = Identity{UserID: "user-1", Username: "testuser", DisplayName: "Test User"}

func TestStore_StartsUnknown(t *testing.T) {
	s := NewStore(storage.NewMemoryStorage(), nil, nil)
	assert.Equal(t, StatusUnknown, s.State().Status)
	assert.False(t, s.IsAuthenticated())
}

func TestStore_LoginPersistsExactlyFourValues(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStorage()
	s := NewStore(st, nil, nil)
	require.NoError(t, s.Initialize(ctx))

	require.NoError(t, s.Login(ctx, "mock-token-123", testIdentity))

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "mock-token-123", s.Token())
	assert.Equal(t, testIdentity, s.Identity())

	items, err := st.Items(ctx)
	require.NoError(t, err)
	want := map[string]string{
		KeyToken:       "mock-token-123",
		KeyUserID:      "user-1",
		KeyUsername:    "testuser",
		KeyDisplayName: "Test User",
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Errorf("storage mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_LoginRejectsEmptyFields(t *testing.T) {
	ctx := context.Background()
	cases := map[string]struct {
		token string
		id    Identity
	}{
		"token":       {"", testIdentity},
		"userID":      {"t", Identity{Username: "u", DisplayName: "d"}},
		"username":    {"t", Identity{UserID: "1", DisplayName: "d"}},
		"displayName": {"t", Identity{UserID: "1", Username: "u"}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			st := storage.NewMemoryStorage()
			s := NewStore(st, nil, nil)
			require.NoError(t, s.Initialize(ctx))

			err := s.Login(ctx, tc.token, tc.id)
			require.ErrorIs(t, err, ErrIncompleteSession)
			assert.False(t, s.IsAuthenticated())

			items, _ := st.Items(ctx)
			assert.Empty(t, items)
		})
	}
}

func TestStore_LogoutClearsEverythingAndNavigates(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStorage()
	nav := &recordingNav{}
	s := NewStore(st, nav, nil)
	require.NoError(t, st.SetItems(ctx, map[string]string{"unrelated": "keep"}))
	require.NoError(t, s.Login(ctx, "tok", testIdentity))

	require.NoError(t, s.Logout(ctx))

	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, State{Status: StatusUnauthenticated}, s.State())
	items, err := st.Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"unrelated": "keep"}, items)
	assert.Equal(t, []string{router.PathLogin}, nav.navigated)
}

func TestStore_LogoutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStorage()
	nav := &recordingNav{}
	s := NewStore(st, nav, nil)
	require.NoError(t, s.Initialize(ctx))

	require.NoError(t, s.Logout(ctx))
	require.NoError(t, s.Logout(ctx))

	assert.False(t, s.IsAuthenticated())
	items, _ := st.Items(ctx)
	assert.Empty(t, items)
	assert.Equal(t, []string{router.PathLogin, router.PathLogin}, nav.navigated)
}

func TestStore_InitializePartialStorageIsUnauthenticated(t *testing.T) {
	ctx := context.Background()
	full := map[string]string{
		KeyToken:       "tok",
		KeyUserID:      "user-1",
		KeyUsername:    "testuser",
		KeyDisplayName: "Test User",
	}
	for _, missing := range Keys {
		t.Run(missing, func(t *testing.T) {
			st := storage.NewMemoryStorage()
			partial := map[string]string{}
			for k, v := range full {
				if k != missing {
					partial[k] = v
				}
			}
			require.NoError(t, st.SetItems(ctx, partial))

			s := NewStore(st, nil, nil)
			require.NoError(t, s.Initialize(ctx))
			assert.Equal(t, State{Status: StatusUnauthenticated}, s.State())
		})
	}

	t.Run("empty value", func(t *testing.T) {
		st := storage.NewMemoryStorage()
		withEmpty := map[string]string{}
		for k, v := range full {
			withEmpty[k] = v
		}
		withEmpty[KeyDisplayName] = ""
		require.NoError(t, st.SetItems(ctx, withEmpty))

		s := NewStore(st, nil, nil)
		require.NoError(t, s.Initialize(ctx))
		assert.False(t, s.IsAuthenticated())
	})
}

func TestStore_RehydrationRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/storage.db"

	st, err := storage.Open(ctx, path)
	require.NoError(t, err)
	s := NewStore(st, nil, nil)
	require.NoError(t, s.Initialize(ctx))
	require.NoError(t, s.Login(ctx, "mock-token-123", testIdentity))
	before := s.State()
	require.NoError(t, st.Close())

	// simulated restart
	st2, err := storage.Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st2.Close() })

	s2 := NewStore(st2, nil, nil)
	require.NoError(t, s2.Initialize(ctx))
	if diff := cmp.Diff(before, s2.State()); diff != "" {
		t.Errorf("rehydrated session mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_InitializeStorageError(t *testing.T) {
	boom := errors.New("disk gone")
	s := NewStore(failingStorage{err: boom}, nil, nil)

	err := s.Initialize(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, StatusUnauthenticated, s.State().Status)
}

func TestStore_LoginStorageErrorKeepsState(t *testing.T) {
	boom := errors.New("disk gone")
	s := NewStore(failingStorage{err: boom}, nil, nil)

	err := s.Login(context.Background(), "tok", testIdentity)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, StatusUnknown, s.State().Status)
}

func TestStore_LogoutStorageErrorKeepsStateAndDoesNotNavigate(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStorage()
	nav := &recordingNav{}
	s := NewStore(mem, nav, nil)
	require.NoError(t, s.Login(ctx, "tok", testIdentity))

	s.storage = failingStorage{err: errors.New("locked")}
	require.Error(t, s.Logout(ctx))

	assert.True(t, s.IsAuthenticated())
	assert.Empty(t, nav.navigated)
}

func TestStore_SubscribeAndUnsubscribe(t *testing.T) {
	ctx := context.Background()
	s := NewStore(storage.NewMemoryStorage(), nil, nil)

	var seen []Status
	unsubscribe := s.Subscribe(func(st State) { seen = append(seen, st.Status) })

	require.NoError(t, s.Initialize(ctx))
	require.NoError(t, s.Login(ctx, "tok", testIdentity))

	unsubscribe()
	unsubscribe()
	require.NoError(t, s.Logout(ctx))

	assert.Equal(t, []Status{StatusUnauthenticated, StatusAuthenticated}, seen)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "unknown", StatusUnknown.String())
	assert.Equal(t, "authenticated", StatusAuthenticated.String())
	assert.Equal(t, "unauthenticated", StatusUnauthenticated.String())
}
