package structs

import (
	models "github.com/ERRORIK404/task_calculator/pkg/db_models"
)

const (
	MsgTaskCreated = "Task created successfully"
	MsgTaskUpdated = "Task updated successfully"
	MsgTaskDeleted = "Task deleted successfully"
)

// Body of POST /tasks
type CreateTaskRequest struct {
	Title string `json:"title"`
}

// Body of PUT /tasks/{id}. Absent fields stay nil and are not touched.
type UpdateTaskRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

func (r UpdateTaskRequest) Patch() models.TaskPatch {
	return models.TaskPatch{Title: r.Title, Completed: r.Completed}
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
