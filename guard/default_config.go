package guard

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigEnv names a config file that takes precedence over the candidates.
const ConfigEnv = "GUARD_CONFIG"

// DefaultConfigCandidates are the file names tried, in order, in each search
// directory.
func DefaultConfigCandidates() []string {
	return []string{
		"guard.yaml",
		"guard.yml",
		"sentry.yaml",
		"sentry.yml",
		filepath.FromSlash("guard/guard.yaml"),
		filepath.FromSlash("guard/guard.yml"),
	}
}

// configSearchDirs is the working directory followed by the directory of
// the running binary, which on Lambda is the deployment package root.
func configSearchDirs() []string {
	dirs := []string{""}
	if exe, err := os.Executable(); err == nil {
		if dir := filepath.Dir(exe); dir != "." {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func isFile(p string) bool {
	st, err := os.Stat(p)
	return err == nil && st.Mode().IsRegular()
}

// FindDefaultConfigFile returns the file named by GUARD_CONFIG, or the first
// candidate found in the search directories.
func FindDefaultConfigFile() (string, error) {
	if p := os.Getenv(ConfigEnv); p != "" {
		if !isFile(p) {
			return "", fmt.Errorf("guard: %s=%s is not a file", ConfigEnv, p)
		}
		return p, nil
	}

	dirs := configSearchDirs()
	for _, dir := range dirs {
		for _, name := range DefaultConfigCandidates() {
			if p := filepath.Join(dir, name); isFile(p) {
				return p, nil
			}
		}
	}
	return "", fmt.Errorf("guard: no config file in %q (tried %v, %s unset)", dirs, DefaultConfigCandidates(), ConfigEnv)
}

// WithDefaultConfigFile loads the file FindDefaultConfigFile picks.
// It panics if there is none or it cannot be read.
func WithDefaultConfigFile() Option {
	p, err := FindDefaultConfigFile()
	if err != nil {
		return OptionFunc(func(*Options) {
			panic(fmt.Errorf("guard.WithDefaultConfigFile: %w", err))
		})
	}
	return WithConfigFile(p)
}
