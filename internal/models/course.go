package models

import "time"

type Course struct {
	ID              int64     `json:"id"`
	SeqNo           int64     `json:"seqNo"`
	Title           string    `json:"title"`
	IconURL         string    `json:"iconUrl"`
	IconObjectKey   string    `json:"-"`
	LongDescription string    `json:"longDescription"`
	Category        string    `json:"category"`
	URL             string    `json:"url"`
	CreatedAt       time.Time `json:"createdAt"`
	LastUpdatedAt   time.Time `json:"lastUpdatedAt"`
	Lessons         []Lesson  `json:"lessons,omitempty"`
}

// CourseChanges is a field patch for an existing course. Nil fields are left
// untouched. seqNo and timestamps are never patchable.
type CourseChanges struct {
	Title           *string `json:"title"`
	IconURL         *string `json:"iconUrl"`
	LongDescription *string `json:"longDescription"`
	Category        *string `json:"category"`
	URL             *string `json:"url"`
}

func (c CourseChanges) Empty() bool {
	return c.Title == nil && c.IconURL == nil && c.LongDescription == nil &&
		c.Category == nil && c.URL == nil
}
