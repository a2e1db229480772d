// Package modfiles enumerates the files physically present in a mod.
//
// A mod is a directory mirroring the game's layout (fighter/, sound/, ui/,
// effect/ ...). The scanner walks every top-level subdirectory and records
// each file as a slash-separated path relative to the mod root. Files placed
// directly in the mod root (config.json, readmes, previews) are not part of
// the layout and are never recorded.
//
// The resulting Set is mutable: the migrator adds every destination it
// produces so later slot pairs in the same run see those files as present.
package modfiles
