package tasktags

import "time"

// Link ties one task to one tag for one owner. Links have no lifecycle of
// their own beyond creation and cascade removal when either side is deleted.
type Link struct {
	ID        string
	UserID    string
	TaskID    string
	TagID     string
	CreatedAt time.Time
	Version   int64
}
