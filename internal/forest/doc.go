// Package forest ties the root marker, the manifest and the version control
// backends together. It locates the forest root, resolves the declared
// dependencies against the on-disk layout, and plans the per-repository
// commands for install, clone, status, outgoing, make-branch and switch.
//
// Every operation continues past per-repository problems (unknown backend,
// missing branch, failing command); only a missing root or an invalid
// configuration file is fatal.
package forest
