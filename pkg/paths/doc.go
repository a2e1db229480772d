// Package paths resolves the locations reslot reads from and writes to.
//
// Resources (the dir-info layout and the known files list) are looked up
// in order:
//
//   - an explicit path from a flag
//   - an absolute path from configuration
//   - the working directory, and its resources/ subdirectory
//   - the directory containing the mod
//   - $RESLOT_DATA_DIR, then $XDG_DATA_HOME/reslot and each
//     $XDG_DATA_DIRS entry
//
// # Environment Variables
//
//   - RESLOT_DATA_DIR: extra resource directory searched before XDG
package paths
