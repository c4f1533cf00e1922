//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target to run when none is specified.
var Default = Build

var binary = filepath.Join("bin", "cubes")

// Build compiles the cubes binary into bin/.
func Build() error {
	fmt.Println("Building", binary)
	return sh.RunV("go", "build", "-o", binary, "./cmd/cubes")
}

// Test runs every package's tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Render writes one full turn of the cube grid (120 frames at 3 degrees)
// to frames/.
func Render() error {
	mg.Deps(Build)
	return sh.RunV(binary, "render", "--frames", "120", "--out", "frames")
}
