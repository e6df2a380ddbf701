package driver

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	goruntime "runtime"
)

// FindRuntime looks up a device tool in PATH and falls back to a bundled
// copy under bin/<any>/ next to the executable or in the working directory
func FindRuntime(runtime string) (string, error) {
	binPath, err := exec.LookPath(runtime)
	if err == nil {
		return binPath, nil
	}

	if bundled, ok := findBundled(runtime); ok {
		return bundled, nil
	}

	if errors.Is(err, exec.ErrNotFound) {
		return "", NewRuntimeError(fmt.Sprintf("`%s` not found in PATH", runtime), err)
	}
	return "", NewRuntimeError(fmt.Sprintf("failed to locate `%s`", runtime), err)
}

func findBundled(runtime string) (string, bool) {
	var lookup []string

	if exePath, err := os.Executable(); err == nil {
		lookup = append(lookup, filepath.Dir(exePath))
	}
	if wd, err := os.Getwd(); err == nil {
		lookup = append(lookup, wd)
	}

	name := runtime
	if goruntime.GOOS == "windows" {
		name += ".exe"
	}

	for _, dir := range lookup {
		matches, err := filepath.Glob(filepath.Join(dir, "bin", "*", name))
		if err != nil {
			continue // continue to next directory
		}

		for _, binPath := range matches {
			if info, err := os.Stat(binPath); err == nil && !info.IsDir() {
				return binPath, true
			}
		}
	}

	return "", false
}
