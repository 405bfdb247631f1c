package forest

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"github.com/p-jackson/arm/internal/manifest"
	"github.com/p-jackson/arm/internal/marker"
)

// ErrRootNotFound is the cause of every failed root search.
var ErrRootNotFound = errors.New("root of forest not found")

// FindRoot walks up from start to the nearest directory holding a root
// marker. The marker is parsed and validated before the path is returned.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	startedInConfig := isFile(filepath.Join(dir, manifest.DefaultFilename))

	for {
		if marker.Exists(dir) {
			if _, err := marker.Load(dir); err != nil {
				return "", err
			}
			return dir, nil
		}
		// filepath.Dir is a fixed point at the filesystem root.
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	msg := ErrRootNotFound.Error()
	if startedInConfig {
		msg += ` (Do you need to call "arm init"?)`
	}
	return "", errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(msg).
		WithCause(ErrRootNotFound)
}

// LocateRoot finds the root from the working directory and changes the
// process working directory to it. Callers rely on this side effect for
// resolving relative paths afterwards.
func LocateRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	root, err := FindRoot(wd)
	if err != nil {
		return "", err
	}
	if err := os.Chdir(root); err != nil {
		return "", err
	}
	return root, nil
}

// IsRootNotFound reports whether err came from a failed root search.
func IsRootNotFound(err error) bool {
	return errors.Is(err, ErrRootNotFound)
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
