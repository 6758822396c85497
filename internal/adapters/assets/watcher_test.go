package assets_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mazerepair/internal/adapters/assets"
	"go.trai.ch/mazerepair/internal/core/domain"
	"go.trai.ch/mazerepair/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestWatcher_InvalidatesChangedFiles(t *testing.T) {
	dir := t.TempDir()
	index := filepath.Join(dir, domain.IndexDocument)
	require.NoError(t, os.WriteFile(index, []byte("v1"), 0o600))

	store, err := assets.NewStore(domain.WebSettings{StaticDir: dir, CacheTTL: time.Hour})
	require.NoError(t, err)
	require.NoError(t, store.Start(t.Context()))
	t.Cleanup(func() { require.NoError(t, store.Stop(t.Context())) })

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()

	watcher := assets.NewWatcher(dir, store, log)
	assert.Equal(t, "asset-watcher", watcher.Name())
	require.NoError(t, watcher.Start(t.Context()))
	t.Cleanup(func() { require.NoError(t, watcher.Stop(t.Context())) })

	asset, err := store.Get("/")
	require.NoError(t, err)
	require.Equal(t, "v1", string(asset.Data))

	require.NoError(t, os.WriteFile(index, []byte("v2"), 0o600))

	require.Eventually(t, func() bool {
		asset, err := store.Get("/")
		return err == nil && string(asset.Data) == "v2"
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWatcher_StartTwiceAndStopIdempotent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.IndexDocument), []byte("x"), 0o600))

	store, err := assets.NewStore(domain.WebSettings{StaticDir: dir})
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	watcher := assets.NewWatcher(dir, store, mocks.NewMockLogger(ctrl))

	require.NoError(t, watcher.Stop(t.Context()))
	require.NoError(t, watcher.Start(t.Context()))
	require.Error(t, watcher.Start(t.Context()))
	require.NoError(t, watcher.Stop(t.Context()))
	require.NoError(t, watcher.Stop(t.Context()))
}
