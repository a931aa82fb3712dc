package task

import "time"

// Task represents one to-do item owned by a single user. Every query
// against the tasks table filters on UserID first, so one user's tasks are
// never visible to another. Title is a secondary lookup key with
// first-match semantics; it is not unique.
type Task struct {
	ID          string     `gorm:"primarykey;size:36" json:"id"`
	UserID      string     `gorm:"size:100;not null;index" json:"user_id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"size:1000" json:"description"`
	Priority    string     `gorm:"size:50;not null;default:medium" json:"priority"`
	Status      string     `gorm:"size:50;not null;default:pending" json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Tags        string     `gorm:"size:500" json:"tags"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName returns the table name for the Task model.
func (Task) TableName() string {
	return "tasks"
}
