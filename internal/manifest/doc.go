// Package manifest reads and writes the arm.json dependency manifest kept in
// the main repository's configuration directory. Dependency order is
// preserved exactly as written so the file round-trips without churn.
package manifest
