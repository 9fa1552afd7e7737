package tags

import "github.com/mzhadan/pomotrack/internal/server/record"

// DefaultColor is used when the caller does not pick one.
const DefaultColor = "#000000"

// Tag is a user-owned label. Name is unique per owner among active tags;
// deleting a tag frees its name.
type Tag struct {
	record.Meta
	Name  string
	Color string
}
