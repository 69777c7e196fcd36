//go:build stave

package main

import (
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b": Build,
	"t": Test.Default,
	"l": Lint.Default,
	"c": Check,
	"i": Install,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	Bench st.Namespace
)

// Build compiles the mtfind binary with version info.
// Skips recompilation when source files have not changed.
func Build() error {
	rebuild, err := target.Dir("bin/mtfind", "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println("bin/mtfind is up to date")
		return nil
	}
	fmt.Println("Building mtfind...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", "bin/mtfind", "./cmd/mtfind")
}

// Check runs format, lint, and test sequentially.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build artifacts.
func Clean() error {
	fmt.Println("Cleaning build artifacts...")
	if err := sh.Rm("bin"); err != nil {
		return err
	}
	return sh.Rm("coverage.out")
}

// Install installs mtfind to $GOBIN or $GOPATH/bin.
func Install() error {
	fmt.Println("Installing mtfind...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/mtfind")
}

// Deps ensures all dependencies are downloaded.
func Deps() error {
	fmt.Println("Downloading dependencies...")
	if err := sh.RunV("go", "mod", "download"); err != nil {
		return err
	}
	return sh.RunV("go", "mod", "tidy")
}

// Default runs all tests with race detection and coverage.
func (Test) Default() error {
	fmt.Println("Running tests...")
	return sh.RunV("go", "test", "-race", "./...",
		"-coverprofile=coverage.out", "-covermode=atomic")
}

// Verbose runs all tests with verbose output.
func (Test) Verbose() error {
	fmt.Println("Running tests (verbose)...")
	return sh.RunV("go", "test", "-v", "-race", "./...")
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	fmt.Println("Running linters...")
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix (for CI pipelines).
func (Lint) CI() error {
	fmt.Println("Running linters (CI mode)...")
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	fmt.Println("Formatting code...")
	return sh.RunV("gofmt", "-w", ".")
}

// Vet runs go vet.
func (Lint) Vet() error {
	fmt.Println("Running go vet...")
	return sh.RunV("go", "vet", "./...")
}

// Default runs the search and strategy benchmarks.
func (Bench) Default() error {
	fmt.Println("Running benchmarks...")
	return sh.RunV("go", "test", "-bench=.", "-benchmem", "-run=^$",
		"./pkg/search/...", "./pkg/strategy/...")
}

// ldflags builds the linker flags injecting version metadata.
func ldflags() string {
	return strings.Join([]string{
		fmt.Sprintf("-X main.version=%s", gitDescribe()),
		fmt.Sprintf("-X main.commit=%s", gitCommit()),
		fmt.Sprintf("-X main.date=%s", time.Now().UTC().Format(time.RFC3339)),
	}, " ")
}

func gitDescribe() string {
	out, err := exec.Command("git", "describe", "--tags", "--always", "--dirty").Output()
	if err != nil {
		return "dev"
	}
	return strings.TrimSpace(string(out))
}

func gitCommit() string {
	out, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		return "none"
	}
	return strings.TrimSpace(string(out))
}
