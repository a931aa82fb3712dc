package task

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no task matches a lookup.
var ErrNotFound = errors.New("task not found")

// Repository provides user-scoped access to task storage. Every method
// takes the owning user id and filters on it, so a caller can never reach
// another user's tasks through this type.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create saves a new task to the database.
func (r *Repository) Create(task *Task) error {
	if err := r.db.Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByUser retrieves a user's tasks, optionally narrowed to one status.
// An empty status or the literal "all" means no filter. Rows come back in
// insertion (rowid) order; no explicit ordering is applied.
func (r *Repository) FindByUser(userID, status string) ([]*Task, error) {
	query := r.db.Where("user_id = ?", userID)
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	var tasks []*Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	return tasks, nil
}

// FirstByTitle retrieves the first task matching (userID, title). When
// several tasks share a title the store picks one; title addressing has
// first-match semantics.
func (r *Repository) FirstByTitle(userID, title string) (*Task, error) {
	var task Task
	err := r.db.Where("user_id = ? AND title = ?", userID, title).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// Save writes back a patched task; GORM stamps updated_at.
func (r *Repository) Save(task *Task) error {
	if err := r.db.Save(task).Error; err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

// Delete removes one task by id. Deletion is physical and immediate.
func (r *Repository) Delete(userID, id string) error {
	result := r.db.Where("user_id = ? AND id = ?", userID, id).Delete(&Task{})
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllByUser removes every task owned by userID as a single statement
// and reports how many rows went away.
func (r *Repository) DeleteAllByUser(userID string) (int64, error) {
	result := r.db.Where("user_id = ?", userID).Delete(&Task{})
	if err := result.Error; err != nil {
		return 0, fmt.Errorf("failed to delete tasks: %w", err)
	}
	return result.RowsAffected, nil
}

// SetStatusByUser moves every task owned by userID to the given status as
// a single statement and reports how many rows were touched.
func (r *Repository) SetStatusByUser(userID, status string) (int64, error) {
	result := r.db.Model(&Task{}).Where("user_id = ?", userID).Update("status", status)
	if err := result.Error; err != nil {
		return 0, fmt.Errorf("failed to update tasks: %w", err)
	}
	return result.RowsAffected, nil
}

// CountByUser returns how many tasks the user owns, optionally narrowed to
// one status.
func (r *Repository) CountByUser(userID, status string) (int64, error) {
	query := r.db.Model(&Task{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}
