package domain

import "time"

// EngineStatus is the observable state of the index engine.
type EngineStatus struct {
	// IsIndexing reports whether a build is currently running.
	IsIndexing bool `json:"isIndexing"`

	// TotalFiles is the estimated total file count for the current or
	// most recent build. It is a coarse progress figure, not a
	// correctness-bearing one.
	TotalFiles int `json:"totalFiles"`

	// IndexedFiles is the number of entries indexed so far.
	IndexedFiles int `json:"indexedFiles"`

	// LastIndexTime is when the last successful build completed,
	// or nil if the index has never been built.
	LastIndexTime *time.Time `json:"lastIndexTime"`
}
