//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Prints the frame sync plans for the default configuration.
func (Run) Plan() error {
	fmt.Println("Run swapsync...")
	if _, err := executeCmd("go", withArgs("run", "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Prints the plans for swapsync.toml and re-plans on every change.
func (Run) Watch() error {
	mg.Deps(Build.Binary)
	if _, err := executeCmd("bin/swapsync", withArgs("-config", "swapsync.toml", "-watch"), withStream()); err != nil {
		return err
	}
	return nil
}
