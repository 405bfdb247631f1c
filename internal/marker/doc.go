// Package marker handles the .arm-root.json file that marks the root of a
// forest and points at the configuration directory holding the manifest.
package marker
