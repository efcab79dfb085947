package domain

// Category names one of the remote search kinds.
type Category string

// Search categories.
const (
	// CategoryMetadata searches structured asset metadata (EXIF, paths, dates).
	CategoryMetadata Category = "metadata"

	// CategorySmart searches by free-text semantic query.
	CategorySmart Category = "smart"

	// CategoryPerson searches for assets containing a recognised person.
	CategoryPerson Category = "person"
)

// AllCategories returns the categories in their canonical pipeline order.
func AllCategories() []Category {
	return []Category{CategoryMetadata, CategorySmart, CategoryPerson}
}

// IsValid reports whether the category is a known search kind.
func (c Category) IsValid() bool {
	switch c {
	case CategoryMetadata, CategorySmart, CategoryPerson:
		return true
	default:
		return false
	}
}

func (c Category) String() string {
	return string(c)
}

// Query is one remote search: a category plus its free-form payload.
// Immutable once constructed.
//
// ResultLimit is an inclusive cap on accumulated results across pages;
// zero means unlimited. Label is a short human-readable origin (file name,
// person name, query text) used in reports and logs.
type Query struct {
	Category    Category
	Payload     map[string]any
	ResultLimit int
	Label       string
}
