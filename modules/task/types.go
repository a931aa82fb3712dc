package task

// CreateTaskRequest is the request for creating a task. DueDate, when
// present, must be a YYYY-MM-DD calendar date; anything else is silently
// ignored. Priority defaults to "medium" when omitted.
type CreateTaskRequest struct {
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	Tags        string `json:"tags,omitempty"`
}

// TaskSummary is the short task view returned after creation.
type TaskSummary struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// CreateTaskResponse is the response after creating a task.
type CreateTaskResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Task    TaskSummary `json:"task"`
}

// ListTasksRequest is the request for listing a user's tasks. Status
// narrows the result to one status; empty or "all" means no filter.
type ListTasksRequest struct {
	UserID string `json:"user_id"`
	Status string `json:"status,omitempty"`
}

// TaskRecord is the full task view returned by list. Dates are rendered as
// ISO-8601 strings or null.
type TaskRecord struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	DueDate     *string `json:"due_date"`
	CreatedAt   *string `json:"created_at"`
}

// ListTasksResponse is the response containing a user's tasks.
type ListTasksResponse struct {
	Status string       `json:"status"`
	Tasks  []TaskRecord `json:"tasks"`
}

// DeleteTaskRequest is the request for deleting one task by title.
type DeleteTaskRequest struct {
	UserID    string `json:"user_id"`
	TaskTitle string `json:"task_title"`
}

// DeleteTaskResponse is the response after a delete attempt. Status is
// "error" with a message when no task matched.
type DeleteTaskResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// UpdateTaskRequest is the request for patching one task addressed by
// (UserID, CurrentTitle). Optional fields are applied only when non-empty;
// an empty string is indistinguishable from "not supplied" and never
// clears a stored value.
type UpdateTaskRequest struct {
	UserID       string `json:"user_id"`
	CurrentTitle string `json:"current_title"`
	NewTitle     string `json:"new_title,omitempty"`
	Description  string `json:"description,omitempty"`
	Priority     string `json:"priority,omitempty"`
	Status       string `json:"status,omitempty"`
	DueDate      string `json:"due_date,omitempty"`
	Tags         string `json:"tags,omitempty"`
}

// UpdatedTask carries the resulting title after a patch.
type UpdatedTask struct {
	Title string `json:"title"`
}

// UpdateTaskResponse is the response after an update attempt. Status is
// "error" with a message for missing arguments or an unmatched title.
type UpdateTaskResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Task    *UpdatedTask `json:"task,omitempty"`
}

// AnalyticsRequest is the request for a user's task analytics.
type AnalyticsRequest struct {
	UserID string `json:"user_id"`
}

// AnalyticsReport aggregates task counts for one user. Tasks whose status
// is neither "pending" nor "completed" count toward the total only.
type AnalyticsReport struct {
	TasksTotal        int64 `json:"tasks_total"`
	TasksCompleted    int64 `json:"tasks_completed"`
	TasksPending      int64 `json:"tasks_pending"`
	ProductivityScore int64 `json:"productivity_score"`
}

// AnalyticsResponse is the response containing a user's analytics.
type AnalyticsResponse struct {
	Status    string          `json:"status"`
	Analytics AnalyticsReport `json:"analytics"`
}

// BulkTasksRequest addresses every task owned by one user.
type BulkTasksRequest struct {
	UserID string `json:"user_id"`
}

// BulkTasksResponse is the response after a bulk operation; the message
// reports how many tasks were affected.
type BulkTasksResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
