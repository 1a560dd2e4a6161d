package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/purrday-app/purrday_api/dto"
	"github.com/purrday-app/purrday_api/shared"
)

type AdviceHandler struct {
	adviceSvc AdviceServiceInterface
}

func NewAdviceHandler(adviceSvc AdviceServiceInterface) *AdviceHandler {
	return &AdviceHandler{
		adviceSvc: adviceSvc,
	}
}

// @Summary Get cached daily advice
// @Description Return the stored advice for a (date, cat) pair, or null when none was generated yet
// @Tags advice
// @Produce json
// @Security Bearer
// @Param date query string false "Date key (YYYY-MM-DD), defaults to today"
// @Param cat_name query string true "Cat persona name"
// @Success 200 {object} shared.Response{data=dto.DailyAdviceResponse}
// @Router /api/v1/advice [get]
func (h *AdviceHandler) GetDailyAdvice(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	date := c.Query("date")
	if date == "" {
		date = shared.Today()
	}
	if !shared.ValidDateKey(date) {
		return shared.NewBadRequestError(nil, "Invalid date")
	}

	catName := c.Query("cat_name")
	if catName == "" {
		return shared.NewBadRequestError(nil, "cat_name is required")
	}

	// A cache miss is a normal answer here, not an error.
	resp, err := h.adviceSvc.GetDailyAdvice(c.UserContext(), userID, date, catName)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Daily advice", resp)
}

// @Summary Ask the cat assistant
// @Description Generate advice, a daily summary or a greeting in the selected cat's voice
// @Tags advice
// @Accept json
// @Produce json
// @Security Bearer
// @Param assistantRequest body dto.AssistantRequest true "Action and persona"
// @Success 200 {object} shared.Response{data=dto.AssistantResponse}
// @Router /api/v1/assistant [post]
func (h *AdviceHandler) Assistant(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.AssistantRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	date := req.Date
	if date == "" {
		date = shared.Today()
	}

	var resp *dto.AssistantResponse
	var err error

	switch req.Action {
	case shared.ActionTaskAdvice:
		if req.TodoID == "" {
			return shared.NewBadRequestError(nil, "todo_id is required for task advice")
		}
		resp, err = h.adviceSvc.TaskAdvice(c.UserContext(), userID, req.TodoID, req.CatName)

	case shared.ActionSummarize:
		resp, err = h.adviceSvc.DailyAdvice(c.UserContext(), userID, date, req.CatName)

	case shared.ActionGreeting, shared.ActionMoodResponse:
		resp, err = h.adviceSvc.AttendanceMessage(c.UserContext(), req.CatName, req.Action, req.Mood)

	default:
		return shared.NewBadRequestError(nil, "Unknown action")
	}

	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Assistant response", resp)
}
