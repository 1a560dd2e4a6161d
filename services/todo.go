package services

import (
	"errors"

	"github.com/alphabatem/common/context"
	"gorm.io/gorm"

	"github.com/purrday-app/purrday_api/dto"
	"github.com/purrday-app/purrday_api/model"
	"github.com/purrday-app/purrday_api/shared"
)

// TodoService is plain user-scoped CRUD over the task store.
type TodoService struct {
	context.DefaultService

	sqlSvc *SqlService
}

const TODO_SVC = "todo_svc"

func (svc TodoService) Id() string {
	return TODO_SVC
}

func (svc *TodoService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *TodoService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	return nil
}

func (svc *TodoService) ListTodos(userID string) ([]model.Todo, error) {
	todos, err := svc.sqlSvc.Todos().ListTodos(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return todos, nil
}

func (svc *TodoService) CreateTodo(userID string, req dto.CreateTodoRequest) (*model.Todo, error) {
	todo, err := svc.sqlSvc.Todos().CreateTodo(userID, req.Text, req.Date)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return todo, nil
}

func (svc *TodoService) UpdateTodo(userID, todoID string, req dto.UpdateTodoRequest) (*model.Todo, error) {
	todo, err := svc.sqlSvc.Todos().GetTodo(userID, todoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Todo not found")
		}
		return nil, svc.sqlSvc.HandleError(err)
	}

	if req.Text != nil {
		todo.Text = *req.Text
	}
	if req.Date != nil {
		todo.Date = *req.Date
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}

	if err := svc.sqlSvc.Todos().UpdateTodo(todo); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return todo, nil
}

func (svc *TodoService) DeleteTodo(userID, todoID string) error {
	if err := svc.sqlSvc.Todos().DeleteTodo(userID, todoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.NewNotFoundError(err, "Todo not found")
		}
		return svc.sqlSvc.HandleError(err)
	}
	return nil
}
