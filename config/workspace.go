package config

import (
	"fmt"
	"os"
	"strconv"
)

type WorkspaceConfig struct {
	Root       string
	TtlMinutes int
}

// GetWorkspaceConfig reads the root under which every request gets its own
// working directory. TtlMinutes of zero disables the sweep and artifacts
// persist indefinitely.
func GetWorkspaceConfig() (*WorkspaceConfig, error) {
	root := os.Getenv("WORKSPACE_DIR")
	if root == "" {
		root = os.TempDir()
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create workspace root %s: %w", root, err)
	}

	ttlMinutes := 0
	if v := os.Getenv("WORKSPACE_TTL_MINUTES"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("failed to parse WORKSPACE_TTL_MINUTES")
		}
		ttlMinutes = parsed
	}

	return &WorkspaceConfig{
		Root:       root,
		TtlMinutes: ttlMinutes,
	}, nil
}
