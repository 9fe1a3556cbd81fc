package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	models "github.com/ERRORIK404/task_calculator/pkg/db_models"
	locerr "github.com/ERRORIK404/task_calculator/pkg/local_errors"
)

// ListTasks returns every task ordered by id. The slice is never nil.
func (h *DB) ListTasks(ctx context.Context) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	if err := h.DB.WithContext(ctx).Order("id").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (h *DB) CreateTask(ctx context.Context, title string) (*models.Task, error) {
	if title == "" {
		return nil, locerr.ErrTitleRequired
	}
	task := models.Task{Title: title}
	if err := h.DB.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return &task, nil
}

func (h *DB) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	return getTask(h.DB.WithContext(ctx), id)
}

// UpdateTask applies the supplied fields of patch inside one transaction.
func (h *DB) UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	var updated *models.Task
	err := h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := getTask(tx, id)
		if err != nil {
			return err
		}
		if patch.Empty() {
			updated = task
			return nil
		}
		if patch.Title != nil {
			task.Title = *patch.Title
		}
		if patch.Completed != nil {
			task.Completed = *patch.Completed
		}
		if err := tx.Save(task).Error; err != nil {
			return fmt.Errorf("update task %d: %w", id, err)
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (h *DB) DeleteTask(ctx context.Context, id int64) error {
	res := h.DB.WithContext(ctx).Delete(&models.Task{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete task %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return locerr.ErrTaskNotFound
	}
	return nil
}

func getTask(tx *gorm.DB, id int64) (*models.Task, error) {
	var task models.Task
	err := tx.First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, locerr.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return &task, nil
}
