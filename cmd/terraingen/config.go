package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dm-vev/terrabuilder/server/world/generator/terrain"
	"github.com/hashicorp/go-getter"
	"github.com/pelletier/go-toml"
)

// readConfig reads the terrain configuration at path. A missing local file is
// created with the default configuration. Paths that look like URLs or
// go-getter source strings are downloaded first.
func readConfig(ctx context.Context, log *slog.Logger, path string) (terrain.UserConfig, error) {
	c := terrain.DefaultConfig()
	if remote(path) {
		local, err := fetchConfig(ctx, path)
		if err != nil {
			return c, err
		}
		defer os.RemoveAll(filepath.Dir(local))
		log.Info("Downloaded terrain config.", "src", path)
		path = local
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		data, err = toml.Marshal(c)
		if err != nil {
			return c, fmt.Errorf("encode default config: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return c, fmt.Errorf("create default config: %w", err)
		}
		log.Info("Created default terrain config.", "path", path)
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

// remote reports if path should be fetched with go-getter rather than read
// from disk.
func remote(path string) bool {
	return strings.Contains(path, "://") || strings.Contains(path, "::")
}

// fetchConfig downloads the config at src into a temporary directory and
// returns the path of the local copy.
func fetchConfig(ctx context.Context, src string) (string, error) {
	dir, err := os.MkdirTemp("", "terraingen")
	if err != nil {
		return "", fmt.Errorf("create download directory: %w", err)
	}
	dst := filepath.Join(dir, "terrain.toml")
	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Mode: getter.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		_ = os.RemoveAll(dir)
		return "", fmt.Errorf("download config: %w", err)
	}
	return dst, nil
}
