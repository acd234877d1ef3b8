package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSetGet(t *testing.T) {
	store, kv := newTestStore(t)

	require.NoError(t, store.Set("tok1", []byte(`{"id":"u1"}`)))

	token, profile, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, "tok1", token)
	assert.JSONEq(t, `{"id":"u1"}`, string(profile))

	raw, found, err := kv.GetValue(Namespace, TokenKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.NotEqual(t, "tok1", raw, "token is encrypted at rest")

	got, ok := store.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok1", got)
}

func TestStorePlainText(t *testing.T) {
	kv := newTestKV(t)
	store := NewStore(kv, nil)

	require.NoError(t, store.Set("tok1", []byte(`{}`)))
	raw, _, _ := kv.GetValue(Namespace, TokenKey)
	assert.Equal(t, "tok1", raw)
}

func TestStoreGetEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	token, profile, err := store.Get()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, profile)

	_, ok := store.Token()
	assert.False(t, ok)
}

func TestStoreClearIsNarrow(t *testing.T) {
	store, kv := newTestStore(t)

	require.NoError(t, kv.SetValues(Namespace, map[string]string{"theme": "dark"}))
	require.NoError(t, store.Set("tok1", []byte(`{"id":"u1"}`)))

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear(), "clearing twice is fine")

	token, profile, err := store.Get()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, profile)

	theme, found, _ := kv.GetValue(Namespace, "theme")
	assert.True(t, found)
	assert.Equal(t, "dark", theme)
}

func TestStorePurge(t *testing.T) {
	store, kv := newTestStore(t)

	require.NoError(t, kv.SetValues(Namespace, map[string]string{"theme": "dark"}))
	require.NoError(t, store.Set("tok1", []byte(`{"id":"u1"}`)))

	n, err := store.Purge()
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestStorePreferences(t *testing.T) {
	store, _ := newTestStore(t)

	theme, err := store.Preference(ThemeKey)
	require.NoError(t, err)
	assert.Empty(t, theme)

	require.NoError(t, store.SetPreference(ThemeKey, "light"))
	require.NoError(t, store.Set("tok1", []byte(`{"id":"u1"}`)))
	require.NoError(t, store.Clear())

	theme, err = store.Preference(ThemeKey)
	require.NoError(t, err)
	assert.Equal(t, "light", theme, "logout keeps preferences")

	assert.ErrorIs(t, store.SetPreference(TokenKey, "x"), ErrReservedKey)
	assert.ErrorIs(t, store.SetPreference(ProfileKey, "x"), ErrReservedKey)

	n, err := store.Purge()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	theme, err = store.Preference(ThemeKey)
	require.NoError(t, err)
	assert.Empty(t, theme)
}

func TestStoreCorruptToken(t *testing.T) {
	store, kv := newTestStore(t)

	require.NoError(t, kv.SetValues(Namespace, map[string]string{
		TokenKey:   "garbage",
		ProfileKey: `{"id":"u1"}`,
	}))

	token, profile, err := store.Get()
	assert.ErrorIs(t, err, ErrCorruptToken)
	assert.Empty(t, token)
	assert.NotNil(t, profile)

	_, ok := store.Token()
	assert.False(t, ok)
}
