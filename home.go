package vroom

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/everydev1618/govroom/conf"
)

// Paths holds the filesystem locations vroom works with. They are derived
// once from the environment and passed explicitly to the controller and
// store; nothing reads them from globals afterwards.
type Paths struct {
	Home     string // vroom home directory
	ConfDir  string // Home/conf, bind-mounted into the engine container
	ConfFile string // Home/vroom.conf, the flat KEY=value store
}

// ResolvePaths derives the vroom paths from the environment. The home
// directory defaults to ~/.vroom but can be overridden with the VROOM_HOME
// environment variable. When neither resolves, it returns ErrNoHome.
func ResolvePaths() (Paths, error) {
	home := os.Getenv("VROOM_HOME")
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil || userHome == "" {
			return Paths{}, fmt.Errorf("resolve home directory: %w", ErrNoHome)
		}
		home = filepath.Join(userHome, ".vroom")
	}

	return Paths{
		Home:     home,
		ConfDir:  filepath.Join(home, "conf"),
		ConfFile: filepath.Join(home, "vroom.conf"),
	}, nil
}

// Provision creates the home and conf directories and an empty config file
// if they don't exist. Safe to call on every invocation.
func (p Paths) Provision() error {
	if _, err := conf.EnsureDir(p.ConfDir); err != nil {
		return fmt.Errorf("provision conf directory: %w", err)
	}
	if _, err := conf.EnsureFile(p.ConfFile); err != nil {
		return fmt.Errorf("provision config file: %w", err)
	}
	return nil
}
