// Package driven defines the driven ports (secondary adapters) of the
// findex engine: interfaces the core depends on and adapters implement.
//
//   - SnapshotStore: crash-safe persistence of the index snapshot
//   - TaskRunner: executes the heavy load/build/save operations,
//     either in-process or on an external worker facility
//   - VolumeLister: supplies mounted volume roots
//   - SettingsStore: supplies the "indexing enabled" flag
package driven
