package task

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&Task{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// seedTask inserts a task directly and returns it.
func seedTask(t *testing.T, db *gorm.DB, userID, title, status string) *Task {
	t.Helper()

	task := &Task{
		ID:       uuid.New().String(),
		UserID:   userID,
		Title:    title,
		Priority: "medium",
		Status:   status,
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}
	return task
}

func TestRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	due := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	task := &Task{
		ID:          uuid.New().String(),
		UserID:      "alice",
		Title:       "Buy milk",
		Description: "Two liters",
		Priority:    "high",
		Status:      "pending",
		DueDate:     &due,
		Tags:        "errands,home",
	}

	if err := repo.Create(task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	var found Task
	if err := db.First(&found, "id = ?", task.ID).Error; err != nil {
		t.Fatalf("failed to find created task: %v", err)
	}

	if found.UserID != "alice" {
		t.Errorf("expected user_id %q, got %q", "alice", found.UserID)
	}
	if found.Title != task.Title {
		t.Errorf("expected title %q, got %q", task.Title, found.Title)
	}
	if found.DueDate == nil || !found.DueDate.Equal(due) {
		t.Errorf("expected due date %v, got %v", due, found.DueDate)
	}
	if found.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestRepository_FindByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	t.Run("empty database", func(t *testing.T) {
		tasks, err := repo.FindByUser("alice", "")
		if err != nil {
			t.Fatalf("FindByUser() error = %v", err)
		}
		if len(tasks) != 0 {
			t.Errorf("expected 0 tasks, got %d", len(tasks))
		}
	})

	seedTask(t, db, "alice", "Task A", "pending")
	seedTask(t, db, "alice", "Task B", "completed")
	seedTask(t, db, "bob", "Task C", "pending")

	t.Run("scoped to user", func(t *testing.T) {
		tasks, err := repo.FindByUser("alice", "")
		if err != nil {
			t.Fatalf("FindByUser() error = %v", err)
		}
		if len(tasks) != 2 {
			t.Fatalf("expected 2 tasks, got %d", len(tasks))
		}
		for _, task := range tasks {
			if task.UserID != "alice" {
				t.Errorf("expected only alice's tasks, got task owned by %q", task.UserID)
			}
		}
	})

	t.Run("status filter", func(t *testing.T) {
		tasks, err := repo.FindByUser("alice", "completed")
		if err != nil {
			t.Fatalf("FindByUser() error = %v", err)
		}
		if len(tasks) != 1 {
			t.Fatalf("expected 1 task, got %d", len(tasks))
		}
		if tasks[0].Title != "Task B" {
			t.Errorf("expected %q, got %q", "Task B", tasks[0].Title)
		}
	})

	t.Run("all means no filter", func(t *testing.T) {
		tasks, err := repo.FindByUser("alice", "all")
		if err != nil {
			t.Fatalf("FindByUser() error = %v", err)
		}
		if len(tasks) != 2 {
			t.Errorf("expected 2 tasks, got %d", len(tasks))
		}
	})
}

func TestRepository_FirstByTitle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	seeded := seedTask(t, db, "alice", "Buy milk", "pending")

	t.Run("existing task", func(t *testing.T) {
		found, err := repo.FirstByTitle("alice", "Buy milk")
		if err != nil {
			t.Fatalf("FirstByTitle() error = %v", err)
		}
		if found.ID != seeded.ID {
			t.Errorf("expected ID %q, got %q", seeded.ID, found.ID)
		}
	})

	t.Run("non-existent title", func(t *testing.T) {
		_, err := repo.FirstByTitle("alice", "No such task")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("another user's title", func(t *testing.T) {
		_, err := repo.FirstByTitle("bob", "Buy milk")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("duplicate titles return one task", func(t *testing.T) {
		seedTask(t, db, "alice", "Buy milk", "completed")

		found, err := repo.FirstByTitle("alice", "Buy milk")
		if err != nil {
			t.Fatalf("FirstByTitle() error = %v", err)
		}
		if found.Title != "Buy milk" {
			t.Errorf("expected title %q, got %q", "Buy milk", found.Title)
		}
	})
}

func TestRepository_Save(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	task := seedTask(t, db, "alice", "Original", "pending")

	task.Title = "Renamed"
	task.Status = "completed"
	if err := repo.Save(task); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	var found Task
	if err := db.First(&found, "id = ?", task.ID).Error; err != nil {
		t.Fatalf("failed to find saved task: %v", err)
	}
	if found.Title != "Renamed" {
		t.Errorf("expected title %q, got %q", "Renamed", found.Title)
	}
	if found.Status != "completed" {
		t.Errorf("expected status %q, got %q", "completed", found.Status)
	}
}

func TestRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	task := seedTask(t, db, "alice", "To be deleted", "pending")

	t.Run("wrong user cannot delete", func(t *testing.T) {
		err := repo.Delete("bob", task.ID)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delete existing task", func(t *testing.T) {
		if err := repo.Delete("alice", task.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		// Deletion is physical, the row is gone entirely
		var count int64
		if err := db.Model(&Task{}).Where("id = ?", task.ID).Count(&count).Error; err != nil {
			t.Fatalf("failed to count tasks: %v", err)
		}
		if count != 0 {
			t.Errorf("expected row to be removed, found %d", count)
		}
	})

	t.Run("delete non-existent task", func(t *testing.T) {
		err := repo.Delete("alice", "no-such-id")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestRepository_DeleteAllByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	seedTask(t, db, "alice", "Task A", "pending")
	seedTask(t, db, "alice", "Task B", "completed")
	seedTask(t, db, "bob", "Task C", "pending")

	count, err := repo.DeleteAllByUser("alice")
	if err != nil {
		t.Fatalf("DeleteAllByUser() error = %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 deleted, got %d", count)
	}

	// Bob's tasks are untouched
	remaining, err := repo.FindByUser("bob", "")
	if err != nil {
		t.Fatalf("FindByUser() error = %v", err)
	}
	if len(remaining) != 1 {
		t.Errorf("expected bob to keep 1 task, got %d", len(remaining))
	}
}

func TestRepository_SetStatusByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	seedTask(t, db, "alice", "Task A", "pending")
	seedTask(t, db, "alice", "Task B", "pending")
	other := seedTask(t, db, "bob", "Task C", "pending")

	count, err := repo.SetStatusByUser("alice", "completed")
	if err != nil {
		t.Fatalf("SetStatusByUser() error = %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 affected, got %d", count)
	}

	tasks, err := repo.FindByUser("alice", "")
	if err != nil {
		t.Fatalf("FindByUser() error = %v", err)
	}
	for _, task := range tasks {
		if task.Status != "completed" {
			t.Errorf("expected status %q, got %q for %q", "completed", task.Status, task.Title)
		}
	}

	var found Task
	if err := db.First(&found, "id = ?", other.ID).Error; err != nil {
		t.Fatalf("failed to find bob's task: %v", err)
	}
	if found.Status != "pending" {
		t.Errorf("expected bob's task untouched, got status %q", found.Status)
	}
}

func TestRepository_CountByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	seedTask(t, db, "alice", "Task A", "pending")
	seedTask(t, db, "alice", "Task B", "completed")
	seedTask(t, db, "alice", "Task C", "someday")
	seedTask(t, db, "bob", "Task D", "pending")

	total, err := repo.CountByUser("alice", "")
	if err != nil {
		t.Fatalf("CountByUser() error = %v", err)
	}
	if total != 3 {
		t.Errorf("expected total 3, got %d", total)
	}

	completed, err := repo.CountByUser("alice", "completed")
	if err != nil {
		t.Fatalf("CountByUser() error = %v", err)
	}
	if completed != 1 {
		t.Errorf("expected 1 completed, got %d", completed)
	}
}
