//go:build unix

package main

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/cellterm/backend/ansi"
	"github.com/lixenwraith/cellterm/config"
)

func openPlatform(cfg *config.Config) (device, error) {
	switch cfg.Backend {
	case config.BackendAuto, config.BackendANSI:
		return ansi.Open(ansi.Options{Mouse: cfg.Mouse})
	}
	return nil, errors.Errorf("backend %q is not available on this platform", cfg.Backend)
}
