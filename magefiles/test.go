//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Unit runs every package's tests.
func (Test) Unit() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Race runs the tests under the race detector; parallel light refresh and
// the scene watcher are the concurrent parts.
func (Test) Race() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./pkg/..."), withStream())
	return err
}

// Bench runs the renderer benchmarks.
func (Test) Bench() error {
	_, err := executeCmd("go", withArgs("test", "-run", "^$", "-bench", ".", "./pkg/render/", "./pkg/math3d/"), withStream())
	return err
}

// Vet runs go vet.
func (Test) Vet() error {
	_, err := executeCmd("go", withArgs("vet", "./..."), withStream())
	return err
}
