// Package fsops moves files and directories without ever overwriting an
// existing entry, and classifies the OS errors the rename and merge flows
// recover from.
//
// Types and functions:
//   - Move(src, dst): pre-checks dst, renames, falls back to copy+remove
//     across devices. Case-only renames go through a temporary sibling.
//   - PruneEmptied(root, moved): removes the directories that moving files
//     out of root left empty, deepest first. Directories that were already
//     empty are kept.
//   - ErrDestinationExists / ErrDestinationIsDir: recoverable collisions.
//   - IsDirNotEmpty / IsCrossDevice: errno classifiers.
package fsops
