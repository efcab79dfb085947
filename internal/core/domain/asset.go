package domain

// Asset is a single media record returned by a remote search.
//
// ID is the sole identity: two assets carrying the same ID are
// interchangeable for set purposes. Raw holds the decoded search payload
// (EXIF fields, people, tags) exactly as the server returned it; local
// filter rules evaluate against it. Assets are never mutated after
// creation and only their IDs survive past the filtering stages.
type Asset struct {
	ID  string
	Raw map[string]any
}
