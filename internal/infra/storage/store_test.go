package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	repo "ticketstore/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// どの実装でも同じ振る舞いになること
func runStoreContract(t *testing.T, s repo.KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, repo.ErrNotFound)

	require.NoError(t, s.Set(ctx, "k", []byte(`[1,2]`)))
	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(v))

	require.NoError(t, s.Set(ctx, "k", []byte(`[3]`)))
	v, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[3]`, string(v))

	require.NoError(t, s.Remove(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, repo.ErrNotFound)

	// 無いキーの削除はエラーにしない
	assert.NoError(t, s.Remove(ctx, "k"))
}

func TestMemoryStore_Contract(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	in := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", in))
	in[0] = 'x'

	out, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(out))
}

func TestFileStore_Contract(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "nested", "store.json"), nil)
	require.NoError(t, err)
	runStoreContract(t, s)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	s1, err := NewFileStore(path, nil)
	require.NoError(t, err, nil)
	require.NoError(t, s1.Set(ctx, repo.KeyCart, []byte(`[{"id":1}]`)))
	require.NoError(t, s1.Set(ctx, repo.KeyTheme, []byte(`"dark"`)))

	s2, err := NewFileStore(path, nil)
	require.NoError(t, err, nil)
	v, err := s2.Get(ctx, repo.KeyCart)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(v))
}

func TestFileStore_CorruptFileMovedAside(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := NewFileStore(path, nil)
	require.NoError(t, err)

	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, repo.ErrNotFound)

	// 壊れた中身は退避されている
	moved, err := os.ReadFile(path + ".corrupt")
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(moved))

	// 書き込みは復旧する
	require.NoError(t, s.Set(ctx, repo.KeyCart, []byte(`[]`)))
	require.NoError(t, s.Remove(ctx, repo.KeyCart))
	require.NoError(t, s.Set(ctx, repo.KeyTheme, []byte(`"dark"`)))
	v, err := s.Get(ctx, repo.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, `"dark"`, string(v))
}

func TestNewFileStore_EmptyPath(t *testing.T) {
	_, err := NewFileStore("", nil)
	assert.Error(t, err, nil)
}

func TestNamespaced_IsolatesProfiles(t *testing.T) {
	ctx := context.Background()
	base := NewMemoryStore()

	a := Namespaced(base, "a")
	b := Namespaced(base, "b")

	require.NoError(t, a.Set(ctx, repo.KeyCart, []byte("A")))
	_, err := b.Get(ctx, repo.KeyCart)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	raw, err := base.Get(ctx, "profile:a:"+repo.KeyCart)
	require.NoError(t, err)
	assert.Equal(t, "A", string(raw))

	runStoreContract(t, b)
}
