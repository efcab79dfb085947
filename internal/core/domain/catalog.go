package domain

// Album is a remote collection that selected assets can be added to.
// UpdatedAt is carried as the server's timestamp string; nothing in the
// pipeline depends on parsing it.
type Album struct {
	ID         string
	Name       string
	Owner      string
	Shared     bool
	AssetCount int
	UpdatedAt  string
}

// Person is a recognised person on the server. People hidden in the
// server UI are still listed so that searches can reference them.
type Person struct {
	ID     string
	Name   string
	Hidden bool
}

// User is a server account.
type User struct {
	ID        string
	Name      string
	Email     string
	IsAdmin   bool
	UpdatedAt string
}
