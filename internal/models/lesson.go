package models

import "time"

type Lesson struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Duration      string    `json:"duration"`
	SeqNo         int64     `json:"seqNo"`
	CourseID      int64     `json:"courseId"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
