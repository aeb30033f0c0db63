//go:build !unix && !windows

package main

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/cellterm/config"
)

func openPlatform(cfg *config.Config) (device, error) {
	return nil, errors.Errorf("backend %q is not available on this platform", cfg.Backend)
}
