package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type chanConfig struct {
	src chan int
}

func (c *chanConfig) Reload(update chan<- int) {
	for v := range c.src {
		update <- v
	}
}

type recorder struct {
	name string
	got  chan int
}

func newRecorder(name string) *recorder {
	return &recorder{name: name, got: make(chan int, 16)}
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) Watch(ch <-chan int) {
	for v := range ch {
		r.got <- v
	}
	close(r.got)
}

func receive(t *testing.T, ch <-chan int) int {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config")
	}
	return 0
}

func TestConfigManager_Notify(t *testing.T) {
	src := &chanConfig{src: make(chan int)}
	manager := NewManager[int](src)

	_, ok := manager.Current()
	require.False(t, ok)

	m := newRecorder("m")
	manager.AddModule(m)
	src.src <- 1
	require.Equal(t, 1, receive(t, m.got))

	current, ok := manager.Current()
	require.True(t, ok)
	require.Equal(t, 1, current)

	late := newRecorder("late")
	manager.AddModule(late)
	require.Equal(t, 1, receive(t, late.got), "a late module starts with the current value")

	manager.RemoveModule("late")
	_, open := <-late.got
	require.False(t, open)

	src.src <- 2
	require.Equal(t, 2, receive(t, m.got))

	close(src.src)
	require.NoError(t, manager.Close())
	_, open = <-m.got
	require.False(t, open)
}

type fileConfig struct {
	Result struct {
		AccessPolicy string `toml:"access_policy"`
	} `toml:"result"`
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
}

func writeConfig(t *testing.T, path, policy, level string) {
	t.Helper()
	content := "[result]\naccess_policy = \"" + policy + "\"\n\n[log]\nlevel = \"" + level + "\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestTOMLFile_ReadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, "abort", "debug")

	cfg, err := TOMLFile[fileConfig]{Path: path}.ReadConfig()
	require.NoError(t, err)
	require.Equal(t, "abort", cfg.Result.AccessPolicy)
	require.Equal(t, "debug", cfg.Log.Level)

	_, err = TOMLFile[fileConfig]{Path: filepath.Join(t.TempDir(), "missing.toml")}.ReadConfig()
	require.Error(t, err)
}

func TestNewFileManager_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, "panic", "info")

	manager, err := NewFileManager[fileConfig](TOMLFile[fileConfig]{Path: path})
	require.NoError(t, err)
	defer manager.Close()

	current, ok := manager.Current()
	require.True(t, ok)
	require.Equal(t, "panic", current.Result.AccessPolicy)

	writeConfig(t, path, "abort", "warn")
	require.Eventually(t, func() bool {
		current, _ := manager.Current()
		return current.Result.AccessPolicy == "abort" && current.Log.Level == "warn"
	}, 5*time.Second, 20*time.Millisecond)
}

func TestNewFileManager_BadInitialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[result\n"), 0o644))

	_, err := NewFileManager[fileConfig](TOMLFile[fileConfig]{Path: path})
	require.Error(t, err)
}

func TestNewFileManager_ReadErrorHandler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, "panic", "info")

	errs := make(chan error, 16)
	manager, err := NewFileManager[fileConfig](TOMLFile[fileConfig]{Path: path}, WithErrorHandler(func(err error) {
		select {
		case errs <- err:
		default:
		}
	}))
	require.NoError(t, err)
	defer manager.Close()

	require.NoError(t, os.WriteFile(path, []byte("[result\n"), 0o644))
	select {
	case err := <-errs:
		require.Contains(t, err.Error(), "decode")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for read error")
	}
}
