//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binary   = "bin/propmarket-server"
	wireDir  = "./internal/app"
	docsOut  = "cmd/server/docs"
	coverOut = "coverage.out"
)

var Default = Build

// Build compiles the server into bin/.
func Build() error {
	mg.Deps(Generate)
	fmt.Println("==> build", binary)
	return sh.RunV("go", "build", "-trimpath", "-o", binary, "./cmd/server")
}

// Generate refreshes wire_gen.go and the swagger docs.
func Generate() {
	mg.Deps(Wire, Swagger)
}

// Wire regenerates the dependency injector of internal/app.
func Wire() error {
	fmt.Println("==> wire", wireDir)
	return sh.RunV("wire", "gen", wireDir)
}

// Swagger regenerates the OpenAPI docs from handler annotations.
func Swagger() error {
	fmt.Println("==> swag", docsOut)
	return sh.RunV("swag", "init",
		"-g", "cmd/server/docs.go",
		"-d", ".",
		"-o", docsOut,
		"--parseInternal",
	)
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "-count=1", "./...")
}

// Cover writes coverage.out and prints the per-function summary.
func Cover() error {
	if err := sh.RunV("go", "test", "-covermode=atomic", "-coverprofile="+coverOut, "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func="+coverOut)
}

// Lint runs go vet and golangci-lint.
func Lint() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	return sh.RunV("golangci-lint", "run", "./...")
}

// Migrate applies the schema using the current configuration and exits.
func Migrate() error {
	fmt.Println("==> migrate")
	return sh.RunV("go", "run", "./cmd/server", "-migrate-only")
}

// Run builds and starts the server against the local configuration.
func Run() error {
	mg.Deps(Build)
	return sh.RunV(binary)
}

// CI is the pipeline run on every push.
func CI() {
	mg.SerialDeps(Generate, Lint, Cover, Build)
}

// Clean removes build and coverage output.
func Clean() error {
	if err := sh.Rm("bin"); err != nil {
		return err
	}
	return os.RemoveAll(coverOut)
}

// Install fetches the code generators and linter used by the other targets.
func Install() error {
	for _, tool := range []string{
		"github.com/google/wire/cmd/wire@latest",
		"github.com/swaggo/swag/cmd/swag@latest",
		"github.com/golangci/golangci-lint/cmd/golangci-lint@latest",
	} {
		if err := sh.RunV("go", "install", tool); err != nil {
			return fmt.Errorf("install %s: %w", tool, err)
		}
	}
	return nil
}
