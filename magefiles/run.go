//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// View opens the example scene in the terminal viewer.
func (Run) View() error {
	_, err := executeCmd("go", withArgs("run", "./cmd/scanline", "view", "testdata/courtyard.toml"), withStream())
	return err
}

// Frame renders the example scene to frame.png.
func (Run) Frame() error {
	mg.Deps(Build.Binary)
	_, err := executeCmd("bin/scanline", withArgs("render", "testdata/courtyard.toml", "--out", "frame.png", "--log-level", "info"), withStream())
	return err
}
