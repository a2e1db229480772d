// Package filesystem provides filesystem implementations for reslot.
//
// This package contains implementations of the types.FS interface:
// the standard OS filesystem and an afero-backed adapter used by tests
// and by callers that want to stage a migration in memory.
package filesystem
