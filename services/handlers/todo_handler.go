package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/purrday-app/purrday_api/dto"
	"github.com/purrday-app/purrday_api/shared"
)

type TodoHandler struct {
	todoSvc TodoServiceInterface
}

func NewTodoHandler(todoSvc TodoServiceInterface) *TodoHandler {
	return &TodoHandler{
		todoSvc: todoSvc,
	}
}

// @Summary List todos
// @Description Return all of the user's todos, newest date first
// @Tags todos
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=[]model.Todo}
// @Router /api/v1/todos [get]
func (h *TodoHandler) ListTodos(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	todos, err := h.todoSvc.ListTodos(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Todos", todos)
}

// @Summary Create a todo
// @Tags todos
// @Accept json
// @Produce json
// @Security Bearer
// @Param createRequest body dto.CreateTodoRequest true "Todo text and date"
// @Success 201 {object} shared.Response{data=model.Todo}
// @Router /api/v1/todos [post]
func (h *TodoHandler) CreateTodo(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.CreateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	todo, err := h.todoSvc.CreateTodo(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Todo created", todo)
}

// @Summary Update a todo
// @Description Change any subset of text, date and completion state
// @Tags todos
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Todo ID"
// @Param updateRequest body dto.UpdateTodoRequest true "Fields to change"
// @Success 200 {object} shared.Response{data=model.Todo}
// @Router /api/v1/todos/{id} [put]
func (h *TodoHandler) UpdateTodo(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	todoID := c.Params("id")

	var req dto.UpdateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	todo, err := h.todoSvc.UpdateTodo(userID, todoID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Todo updated", todo)
}

// @Summary Delete a todo
// @Tags todos
// @Produce json
// @Security Bearer
// @Param id path string true "Todo ID"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/todos/{id} [delete]
func (h *TodoHandler) DeleteTodo(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	todoID := c.Params("id")

	if err := h.todoSvc.DeleteTodo(userID, todoID); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Todo deleted", nil)
}
