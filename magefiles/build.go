//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Binary builds the scanline command into bin/.
func (Build) Binary() error {
	_, err := executeCmd("go", withArgs("build", "-o", "bin/scanline", "./cmd/scanline"), withStream())
	return err
}

// Release builds a stripped binary with the version stamped in.
func (Build) Release(version string) error {
	ldflags := "-s -w -X main.version=" + version
	_, err := executeCmd("go",
		withArgs("build", "-trimpath", "-ldflags", ldflags, "-o", "bin/scanline", "./cmd/scanline"),
		withEnv("CGO_ENABLED=0"),
		withStream(),
	)
	return err
}
