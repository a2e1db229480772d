// Package types defines the interfaces shared across reslot's packages.
// The filesystem abstraction lives here so that the scanner, migrator and
// overlay writer can depend on it without importing a concrete implementation.
package types
