package driven

// VolumeLister supplies the mounted volume or drive roots of the host.
// Implemented by a platform collaborator outside this engine.
type VolumeLister interface {
	// Volumes returns the roots of all mounted volumes, e.g. "/" and
	// "/Volumes/Backup" on macOS or `C:\` and `D:\` on Windows.
	Volumes() []string
}

// StaticVolumes is a VolumeLister over a fixed list. Useful for tests
// and for callers that already know their mounts.
type StaticVolumes []string

// Volumes returns the fixed list.
func (v StaticVolumes) Volumes() []string { return v }
