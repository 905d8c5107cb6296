package driven

// SettingsStore supplies user settings the engine consults but does
// not own.
type SettingsStore interface {
	// IndexingEnabled reports whether background indexing is enabled.
	IndexingEnabled() bool
}
