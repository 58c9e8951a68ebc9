package model

// Item is any record owned by the remote API. IDs are server-assigned,
// opaque, and stable for the life of the record.
type Item interface {
	ItemID() string
	Label() string
}

// Activatable is implemented by resources carrying the soft enable/disable
// flag. Contacts do not have the concept.
type Activatable interface {
	IsActive() bool
}

// Categorized is implemented by resources grouped under a category
// dimension (projects, skills).
type Categorized interface {
	CategoryName() string
}
