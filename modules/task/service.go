package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

// Statuses written by this module. Status is a free-form string at the
// storage layer; these are the values create and the bulk operations use,
// and the only ones analytics counts beyond the total.
const (
	statusPending   = "pending"
	statusCompleted = "completed"
)

const (
	defaultPriority = "medium"
	dueDateLayout   = "2006-01-02"
	// isoLayout is the fixed rendering format for dates in responses:
	// seconds-precision ISO-8601, e.g. "2024-03-15T00:00:00".
	isoLayout = "2006-01-02T15:04:05"
)

// Validation errors. Returning one of these aborts the reply; domain-level
// failures such as an unmatched title are reported inside a normal reply
// with status "error" instead.
var (
	errUserIDRequired = errors.New("user_id is required")
	errTitleRequired  = errors.New("title is required")
	errMissingFields  = errors.New("missing required fields")
)

// createTask handles the task.create service request.
func (m *TaskModule) createTask(_ context.Context, req CreateTaskRequest, _ *mono.Msg) (CreateTaskResponse, error) {
	if req.UserID == "" {
		return CreateTaskResponse{}, errUserIDRequired
	}
	if req.Title == "" {
		return CreateTaskResponse{}, errTitleRequired
	}

	priority := req.Priority
	if priority == "" {
		priority = defaultPriority
	}

	task := &Task{
		ID:          uuid.New().String(),
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		Status:      statusPending,
		DueDate:     parseDueDate(req.DueDate),
		Tags:        req.Tags,
	}

	if err := m.repo.Create(task); err != nil {
		return CreateTaskResponse{}, fmt.Errorf("failed to save task: %w", err)
	}

	return CreateTaskResponse{
		Status:  "success",
		Message: fmt.Sprintf("Task '%s' added.", task.Title),
		Task:    TaskSummary{ID: task.ID, Title: task.Title, Status: task.Status},
	}, nil
}

// listTasks handles the task.list service request.
func (m *TaskModule) listTasks(_ context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	if req.UserID == "" {
		return ListTasksResponse{}, errUserIDRequired
	}

	tasks, err := m.repo.FindByUser(req.UserID, req.Status)
	if err != nil {
		return ListTasksResponse{}, err
	}

	records := make([]TaskRecord, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, toTaskRecord(t))
	}

	return ListTasksResponse{Status: "success", Tasks: records}, nil
}

// deleteTask handles the task.delete service request. Missing arguments
// abort the reply; an unmatched title is a normal "error" reply.
func (m *TaskModule) deleteTask(_ context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if req.UserID == "" || req.TaskTitle == "" {
		return DeleteTaskResponse{}, errMissingFields
	}

	task, err := m.repo.FirstByTitle(req.UserID, req.TaskTitle)
	if errors.Is(err, ErrNotFound) {
		return DeleteTaskResponse{Status: "error", Message: "Task not found."}, nil
	}
	if err != nil {
		return DeleteTaskResponse{}, err
	}

	if err := m.repo.Delete(req.UserID, task.ID); err != nil {
		return DeleteTaskResponse{}, err
	}

	return DeleteTaskResponse{
		Status:  "success",
		Message: fmt.Sprintf("Task '%s' deleted.", req.TaskTitle),
	}, nil
}

// updateTask handles the task.update service request. Unlike delete, a
// missing argument here is a normal "error" reply, not an aborted call.
func (m *TaskModule) updateTask(_ context.Context, req UpdateTaskRequest, _ *mono.Msg) (UpdateTaskResponse, error) {
	if req.UserID == "" || req.CurrentTitle == "" {
		return UpdateTaskResponse{Status: "error", Message: "Missing fields"}, nil
	}

	task, err := m.repo.FirstByTitle(req.UserID, req.CurrentTitle)
	if errors.Is(err, ErrNotFound) {
		return UpdateTaskResponse{Status: "error", Message: "Task not found."}, nil
	}
	if err != nil {
		return UpdateTaskResponse{}, err
	}

	// Empty strings mean "not supplied"; a stored value cannot be cleared
	// through this operation.
	if req.NewTitle != "" {
		task.Title = req.NewTitle
	}
	if req.Description != "" {
		task.Description = req.Description
	}
	if req.Priority != "" {
		task.Priority = req.Priority
	}
	if req.Status != "" {
		task.Status = req.Status
	}
	if req.Tags != "" {
		task.Tags = req.Tags
	}
	if due := parseDueDate(req.DueDate); due != nil {
		task.DueDate = due
	}

	if err := m.repo.Save(task); err != nil {
		return UpdateTaskResponse{}, err
	}

	return UpdateTaskResponse{
		Status:  "success",
		Message: fmt.Sprintf("Task '%s' updated.", req.CurrentTitle),
		Task:    &UpdatedTask{Title: task.Title},
	}, nil
}

// getAnalytics handles the task.analytics service request.
func (m *TaskModule) getAnalytics(_ context.Context, req AnalyticsRequest, _ *mono.Msg) (AnalyticsResponse, error) {
	if req.UserID == "" {
		return AnalyticsResponse{}, errUserIDRequired
	}

	total, err := m.repo.CountByUser(req.UserID, "")
	if err != nil {
		return AnalyticsResponse{}, err
	}
	completed, err := m.repo.CountByUser(req.UserID, statusCompleted)
	if err != nil {
		return AnalyticsResponse{}, err
	}
	pending, err := m.repo.CountByUser(req.UserID, statusPending)
	if err != nil {
		return AnalyticsResponse{}, err
	}

	var score int64
	if total > 0 {
		score = completed * 100 / total
	}

	return AnalyticsResponse{
		Status: "success",
		Analytics: AnalyticsReport{
			TasksTotal:        total,
			TasksCompleted:    completed,
			TasksPending:      pending,
			ProductivityScore: score,
		},
	}, nil
}

// deleteAllTasks handles the task.delete_all service request.
func (m *TaskModule) deleteAllTasks(_ context.Context, req BulkTasksRequest, _ *mono.Msg) (BulkTasksResponse, error) {
	if req.UserID == "" {
		return BulkTasksResponse{}, errUserIDRequired
	}

	count, err := m.repo.DeleteAllByUser(req.UserID)
	if err != nil {
		return BulkTasksResponse{}, err
	}

	return BulkTasksResponse{
		Status:  "success",
		Message: fmt.Sprintf("Deleted %d tasks.", count),
	}, nil
}

// completeAllTasks handles the task.complete_all service request.
func (m *TaskModule) completeAllTasks(_ context.Context, req BulkTasksRequest, _ *mono.Msg) (BulkTasksResponse, error) {
	if req.UserID == "" {
		return BulkTasksResponse{}, errUserIDRequired
	}

	count, err := m.repo.SetStatusByUser(req.UserID, statusCompleted)
	if err != nil {
		return BulkTasksResponse{}, err
	}

	return BulkTasksResponse{
		Status:  "success",
		Message: fmt.Sprintf("Marked %d tasks completed.", count),
	}, nil
}

// resetAllTasks handles the task.reset_all service request.
func (m *TaskModule) resetAllTasks(_ context.Context, req BulkTasksRequest, _ *mono.Msg) (BulkTasksResponse, error) {
	if req.UserID == "" {
		return BulkTasksResponse{}, errUserIDRequired
	}

	count, err := m.repo.SetStatusByUser(req.UserID, statusPending)
	if err != nil {
		return BulkTasksResponse{}, err
	}

	return BulkTasksResponse{
		Status:  "success",
		Message: fmt.Sprintf("Marked %d tasks pending.", count),
	}, nil
}

// parseDueDate parses a YYYY-MM-DD calendar date at UTC midnight. Parsing
// is best-effort: invalid input yields nil, so the caller stores no due
// date rather than failing the whole operation.
func parseDueDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(dueDateLayout, value)
	if err != nil {
		return nil
	}
	return &parsed
}

// formatDate renders a timestamp in isoLayout, or nil for absent dates.
func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(isoLayout)
	return &s
}

// toTaskRecord converts a Task entity to its list representation.
func toTaskRecord(t *Task) TaskRecord {
	return TaskRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      t.Status,
		DueDate:     formatDate(t.DueDate),
		CreatedAt:   formatDate(&t.CreatedAt),
	}
}
