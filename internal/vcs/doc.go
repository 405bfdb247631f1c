// Package vcs abstracts the two supported version control backends, git and
// Mercurial. Mutating and long-running operations are returned as
// chain.Commands for the caller to queue; only small read-only queries
// (current branch, origin, branch existence) are executed directly.
package vcs
