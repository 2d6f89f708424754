// Package binary locates the external yt-dlp and ffmpeg executables and
// caches the result per dependency-resolution mode.
package binary

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"sync/atomic"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/ytget/ytdlp-manager/internal/model"
)

// Executable names without platform suffix
const (
	YtDlpName  = "yt-dlp"
	FFmpegName = "ffmpeg"
)

// ErrNotFound is returned when yt-dlp cannot be located
var ErrNotFound = errors.New("yt-dlp executable not found")

// Resolution is an immutable snapshot of located executables. FFmpeg is
// empty when ffmpeg could not be found; yt-dlp falls back to its own
// limited muxing in that case.
type Resolution struct {
	Mode   model.DepMode
	YtDlp  string
	FFmpeg string
}

// Cache resolves executables and memoizes the result per mode. Entries are
// replaced, never mutated, so readers always see a complete Resolution.
type Cache struct {
	binDir     string
	store      *cache.Cache
	group      singleflight.Group
	generation atomic.Uint64

	lookPath func(string) (string, error)
	isFile   func(string) bool
}

// NewCache creates a cache. binDir holds app-managed executables.
func NewCache(binDir string) *Cache {
	return &Cache{
		binDir:   binDir,
		store:    cache.New(cache.NoExpiration, 0),
		lookPath: exec.LookPath,
		isFile:   isRegularFile,
	}
}

// BinDir returns the directory searched in managed mode
func (c *Cache) BinDir() string {
	return c.binDir
}

// Resolve returns the executables for mode, resolving them on first use.
// Concurrent callers for the same mode share one resolution.
func (c *Cache) Resolve(ctx context.Context, mode model.DepMode) (*Resolution, error) {
	if !mode.IsValid() {
		mode = model.DepModeAuto
	}

	if cached, ok := c.store.Get(string(mode)); ok {
		return cached.(*Resolution), nil
	}

	gen := c.generation.Load()
	key := string(mode) + "@" + strconv.FormatUint(gen, 10)
	v, err, _ := c.group.Do(key, func() (any, error) {
		res, err := c.resolve(ctx, mode)
		if err != nil {
			return nil, err
		}
		// skip storing results computed before an invalidation
		if c.generation.Load() == gen {
			c.store.Set(string(mode), res, cache.NoExpiration)
		}
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Resolution), nil
}

// Available reports whether yt-dlp can be located for mode
func (c *Cache) Available(ctx context.Context, mode model.DepMode) bool {
	_, err := c.Resolve(ctx, mode)
	return err == nil
}

// Invalidate drops every cached resolution, forcing re-resolution on next use
func (c *Cache) Invalidate() {
	c.generation.Add(1)
	c.store.Flush()
}

func (c *Cache) resolve(ctx context.Context, mode model.DepMode) (*Resolution, error) {
	res := &Resolution{Mode: mode}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		path, err := c.locate(ctx, mode, YtDlpName)
		if err != nil {
			return fmt.Errorf("%w (mode %s): %v", ErrNotFound, mode, err)
		}
		res.YtDlp = path
		return nil
	})
	g.Go(func() error {
		if path, err := c.locate(ctx, mode, FFmpegName); err == nil {
			res.FFmpeg = path
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Cache) locate(ctx context.Context, mode model.DepMode, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch mode {
	case model.DepModeSystem:
		return c.lookPath(name)
	case model.DepModeManaged:
		return c.managedPath(name)
	default:
		if path, err := c.managedPath(name); err == nil {
			return path, nil
		}
		return c.lookPath(name)
	}
}

func (c *Cache) managedPath(name string) (string, error) {
	if c.binDir == "" {
		return "", fmt.Errorf("managed bin directory is not configured")
	}
	path := filepath.Join(c.binDir, ExecutableName(name))
	if !c.isFile(path) {
		return "", fmt.Errorf("%s not found in %s", name, c.binDir)
	}
	return path, nil
}

// ExecutableName appends the platform executable suffix
func ExecutableName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
