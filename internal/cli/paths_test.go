package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/drainplan/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	t.Run("xdg", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")
		dir, err := cacheDir()
		if err != nil {
			t.Fatalf("cacheDir() error: %v", err)
		}
		if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})

	t.Run("home", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "")
		dir, err := cacheDir()
		if err != nil {
			t.Fatalf("cacheDir() error: %v", err)
		}
		if want := filepath.Join(home, ".cache", appName); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})
}

func TestNewCache(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)
	t.Setenv(envRedisAddr, "")
	c := New(io.Discard, log.InfoLevel)
	ctx := context.Background()

	cc, err := c.newCache(ctx, true)
	if err != nil {
		t.Fatalf("newCache(noCache) error: %v", err)
	}
	if _, ok := cc.(cache.NullCache); !ok {
		t.Errorf("newCache(noCache) = %T, want cache.NullCache", cc)
	}

	cc, err = c.newCache(ctx, false)
	if err != nil {
		t.Fatalf("newCache() error: %v", err)
	}
	fc, ok := cc.(*cache.FileCache)
	if !ok {
		t.Fatalf("newCache() = %T, want *cache.FileCache", cc)
	}
	if want := filepath.Join(xdg, appName); fc.Dir() != want {
		t.Errorf("FileCache.Dir() = %q, want %q", fc.Dir(), want)
	}
}

func TestNewCacheRedisUnreachable(t *testing.T) {
	t.Setenv(envRedisAddr, "127.0.0.1:1")
	c := New(io.Discard, log.InfoLevel)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.newCache(ctx, false); err == nil {
		t.Error("newCache() with unreachable redis should fail")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans", "north", "frame.svg")
	if err := writeFile(path, []byte("<svg/>")); err != nil {
		t.Fatalf("writeFile() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("file content = %q", data)
	}
}
