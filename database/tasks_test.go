package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "github.com/ERRORIK404/task_calculator/pkg/db_models"
	locerr "github.com/ERRORIK404/task_calculator/pkg/local_errors"
	"github.com/ERRORIK404/task_calculator/pkg/logger"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := InitDB(":memory:", logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func ptr[T any](v T) *T { return &v }

func TestListTasks_Empty(t *testing.T) {
	db := newTestDB(t)

	tasks, err := db.ListTasks(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestCreateTask(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	first, err := db.CreateTask(ctx, "Test Task 1")
	require.NoError(t, err)
	second, err := db.CreateTask(ctx, "Test Task 2")
	require.NoError(t, err)

	assert.NotZero(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.Completed)

	tasks, err := db.ListTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Task{*first, *second}, tasks)
}

func TestCreateTask_TitleRequired(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.CreateTask(ctx, "")
	assert.ErrorIs(t, err, locerr.ErrTitleRequired)

	// Only presence is checked; whitespace is a title like any other.
	task, err := db.CreateTask(ctx, "   ")
	require.NoError(t, err)
	assert.Equal(t, "   ", task.Title)
}

func TestUpdateTask(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	created, err := db.CreateTask(ctx, "Update Task")
	require.NoError(t, err)

	updated, err := db.UpdateTask(ctx, created.ID, models.TaskPatch{
		Title:     ptr("Updated Title"),
		Completed: ptr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, models.Task{ID: created.ID, Title: "Updated Title", Completed: true}, *updated)

	stored, err := db.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *updated, *stored)
}

func TestUpdateTask_Partial(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	created, err := db.CreateTask(ctx, "Keep my title")
	require.NoError(t, err)

	_, err = db.UpdateTask(ctx, created.ID, models.TaskPatch{Completed: ptr(true)})
	require.NoError(t, err)
	stored, err := db.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keep my title", stored.Title)
	assert.True(t, stored.Completed)

	_, err = db.UpdateTask(ctx, created.ID, models.TaskPatch{Title: ptr("Renamed")})
	require.NoError(t, err)
	stored, err = db.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Title)
	assert.True(t, stored.Completed)

	same, err := db.UpdateTask(ctx, created.ID, models.TaskPatch{})
	require.NoError(t, err)
	assert.Equal(t, *stored, *same)
}

func TestUpdateTask_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.UpdateTask(context.Background(), 404, models.TaskPatch{Completed: ptr(true)})
	assert.ErrorIs(t, err, locerr.ErrTaskNotFound)
}

func TestUpdateTask_EmptyTitle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	created, err := db.CreateTask(ctx, "title")
	require.NoError(t, err)

	updated, err := db.UpdateTask(ctx, created.ID, models.TaskPatch{Title: ptr("")})
	require.NoError(t, err)
	assert.Equal(t, "", updated.Title)

	stored, err := db.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "", stored.Title)
}

func TestDeleteTask(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	created, err := db.CreateTask(ctx, "Test Task 1")
	require.NoError(t, err)

	require.NoError(t, db.DeleteTask(ctx, created.ID))

	_, err = db.GetTask(ctx, created.ID)
	assert.ErrorIs(t, err, locerr.ErrTaskNotFound)
	assert.ErrorIs(t, db.DeleteTask(ctx, created.ID), locerr.ErrTaskNotFound)
}

func TestInitDB_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	ctx := context.Background()

	db, err := InitDB(path, logger.Discard())
	require.NoError(t, err)
	created, err := db.CreateTask(ctx, "persisted")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = InitDB(path, logger.Discard())
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Ping(ctx))
	got, err := db.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Title)
}
