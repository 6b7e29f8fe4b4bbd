package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type localConfig struct {
	Dir string `json:"dir"`
}

type localTarget struct {
	dir string
}

func init() {
	Register("local", createLocalTarget)
}

func createLocalTarget(args interface{}) (Target, error) {
	config := &localConfig{}
	if err := decodeConfig(args, config); err != nil {
		return nil, err
	}
	if config.Dir == "" {
		return nil, fmt.Errorf("local target dir is required")
	}
	return &localTarget{dir: config.Dir}, nil
}

func (t *localTarget) Put(ctx context.Context, key string, data []byte) error {
	_ = ctx
	if strings.Contains(key, "/") || strings.Contains(key, "\\") {
		return fmt.Errorf("invalid backup key")
	}
	if err := os.MkdirAll(t.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(t.dir, key), data, 0o644)
}
