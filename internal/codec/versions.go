package codec

// Frame versions for the two on-disk artifacts. The search loader is
// forward-compatible up to major 9 even though this codebase only ever
// emits major 7 — see SPEC_FULL.md's Open Question decisions.
const (
	FilterMajor    byte = 3
	FilterMinor    byte = 0
	SearchMajor    byte = 7
	SearchMinor    byte = 0
	SearchMaxMajor byte = 9
)

// FilterVersion is the version stamped on encoded FilterIndex frames.
var FilterVersion = Version{FilterMajor, FilterMinor}

// SearchVersion is the version stamped on encoded SearchIndex frames.
var SearchVersion = Version{SearchMajor, SearchMinor}
