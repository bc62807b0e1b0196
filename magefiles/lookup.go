//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Resolve prints every name the registries know a drug by.
func Resolve(name string) error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "resolve", name)
}

// Trials resolves a drug and prints the merged trials for all its names.
func Trials(name string) error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "trials", "--drug", name)
}
