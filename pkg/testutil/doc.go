// Package testutil provides utilities for testing reslot components.
//
// Key components:
//   - ModBuilder: declarative setup of a mod tree on an in-memory filesystem
//   - Resources: dir-info and known-files fixtures written where the engine
//     expects them
//   - FaultyFS: a types.FS wrapper that injects errors for chosen paths
//   - MockFS: a testify mock of types.FS for asserting call sequences
//
// All test data is defined inline; tests never touch the real filesystem.
package testutil
