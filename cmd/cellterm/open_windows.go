//go:build windows

package main

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/cellterm/backend/wincon"
	"github.com/lixenwraith/cellterm/config"
)

func openPlatform(cfg *config.Config) (device, error) {
	switch cfg.Backend {
	case config.BackendAuto, config.BackendWincon:
		return wincon.Open()
	}
	return nil, errors.Errorf("backend %q is not available on this platform", cfg.Backend)
}
