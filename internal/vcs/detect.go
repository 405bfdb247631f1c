package vcs

import (
	"os"
	"path/filepath"
	"strings"
)

// Detect classifies origin without any network access. An origin with no
// scheme separator is a local path, resolved against base, and is judged by
// its on-disk metadata. Anything else is matched by substring: "git" first,
// then "hg". ok is false when neither matches; callers must skip the
// repository rather than guess.
func Detect(origin, base string) (b Backend, ok bool) {
	if !strings.Contains(origin, ":") {
		p := origin
		if !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		return DetectDir(p)
	}
	if strings.Contains(origin, "git") {
		return Git, true
	}
	if strings.Contains(origin, "hg") {
		return Hg, true
	}
	return nil, false
}

// DetectDir classifies a local repository by its metadata. A bare git
// repository counts as git.
func DetectDir(dir string) (Backend, bool) {
	for _, b := range Backends() {
		if exists(filepath.Join(dir, b.MetadataDir())) {
			return b, true
		}
	}
	if isBareGit(dir) {
		return Git, true
	}
	return nil, false
}

// IsRepository reports whether dir holds a working tree of any backend.
func IsRepository(dir string) bool {
	for _, b := range Backends() {
		if exists(filepath.Join(dir, b.MetadataDir())) {
			return true
		}
	}
	return false
}

// IsMetadataDir reports whether name is a backend's private directory.
func IsMetadataDir(name string) bool {
	for _, b := range Backends() {
		if b.MetadataDir() == name {
			return true
		}
	}
	return false
}

func isBareGit(dir string) bool {
	return isFile(filepath.Join(dir, "HEAD")) &&
		isDir(filepath.Join(dir, "objects")) &&
		isDir(filepath.Join(dir, "refs"))
}

// exists accepts a file too: git worktrees and submodules use a .git file.
func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
