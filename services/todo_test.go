package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purrday-app/purrday_api/dto"
	"github.com/purrday-app/purrday_api/shared"
)

func newTodoSvc(sql *SqlService) *TodoService {
	return &TodoService{sqlSvc: sql}
}

func TestTodoLifecycle(t *testing.T) {
	sql := newTestSql(t)
	svc := newTodoSvc(sql)
	userID := seedUser(t, sql, "lister")

	created, err := svc.CreateTodo(userID, dto.CreateTodoRequest{Text: "Buy cat food", Date: shared.Today()})
	require.NoError(t, err)
	assert.False(t, created.Completed)

	done := true
	newText := "Buy premium cat food"
	updated, err := svc.UpdateTodo(userID, created.ID, dto.UpdateTodoRequest{Text: &newText, Completed: &done})
	require.NoError(t, err)
	assert.Equal(t, newText, updated.Text)
	assert.True(t, updated.Completed)
	assert.Equal(t, created.Date, updated.Date, "unset fields stay untouched")

	todos, err := svc.ListTodos(userID)
	require.NoError(t, err)
	require.Len(t, todos, 1)

	require.NoError(t, svc.DeleteTodo(userID, created.ID))

	todos, err = svc.ListTodos(userID)
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestTodoOwnershipEnforced(t *testing.T) {
	sql := newTestSql(t)
	svc := newTodoSvc(sql)
	owner := seedUser(t, sql, "towner")
	other := seedUser(t, sql, "tother")

	created, err := svc.CreateTodo(owner, dto.CreateTodoRequest{Text: "Secret plan", Date: shared.Today()})
	require.NoError(t, err)

	done := true
	_, err = svc.UpdateTodo(other, created.ID, dto.UpdateTodoRequest{Completed: &done})
	requireNotFound(t, err)

	err = svc.DeleteTodo(other, created.ID)
	requireNotFound(t, err)

	todos, err := svc.ListTodos(other)
	require.NoError(t, err)
	assert.Empty(t, todos, "listing never leaks another user's todos")
}

func TestDeleteMissingTodo(t *testing.T) {
	sql := newTestSql(t)
	svc := newTodoSvc(sql)
	userID := seedUser(t, sql, "deleter")

	requireNotFound(t, svc.DeleteTodo(userID, "no-such-todo"))
}

func requireNotFound(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	require.Equal(t, 404, appErr.StatusCode)
}
