package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/purrday-app/purrday_api/dto"
	"github.com/purrday-app/purrday_api/shared"
)

type UserHandler struct {
	engagementSvc EngagementServiceInterface
	companionSvc  CompanionServiceInterface
	adviceSvc     AdviceServiceInterface
}

func NewUserHandler(engagementSvc EngagementServiceInterface, companionSvc CompanionServiceInterface, adviceSvc AdviceServiceInterface) *UserHandler {
	return &UserHandler{
		engagementSvc: engagementSvc,
		companionSvc:  companionSvc,
		adviceSvc:     adviceSvc,
	}
}

// @Summary Get attendance status
// @Description Check whether today's jelly reward is still claimable
// @Tags user
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.AttendanceStatusResponse}
// @Router /api/v1/user/attendance [get]
func (h *UserHandler) GetAttendanceStatus(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.engagementSvc.CheckEligibility(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Attendance status", resp)
}

// @Summary Claim daily attendance
// @Description Grant today's jelly, record the mood check-in and return a cat greeting
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param attendanceRequest body dto.ClaimAttendanceRequest true "Selected cat and today's mood"
// @Success 200 {object} shared.Response{data=dto.ClaimAttendanceResponse}
// @Router /api/v1/user/attendance [post]
func (h *UserHandler) ClaimAttendance(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.ClaimAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	granted, ledger, err := h.engagementSvc.ClaimReward(userID, req.Mood)
	if err != nil {
		return err
	}

	message := "You already checked in today!"
	if granted {
		greeting, err := h.adviceSvc.AttendanceMessage(c.UserContext(), req.SelectedCat, shared.ActionMoodResponse, req.Mood)
		if err != nil {
			return err
		}
		message = greeting.Message
	}

	return shared.ResponseJSON(c, http.StatusOK, "Attendance claimed", &dto.ClaimAttendanceResponse{
		Success:     granted,
		JellyCount:  ledger.JellyCount,
		LoginStreak: ledger.LoginStreak,
		Message:     message,
	})
}

// @Summary Get jelly balance
// @Description Return the user's jelly count and last reward date
// @Tags user
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.JellyResponse}
// @Router /api/v1/user/jelly [get]
func (h *UserHandler) GetJelly(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.engagementSvc.GetJelly(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Jelly balance", resp)
}

// @Summary Claim daily jelly
// @Description Grant today's jelly without a mood check-in
// @Tags user
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.ClaimJellyResponse}
// @Router /api/v1/user/jelly [post]
func (h *UserHandler) ClaimJelly(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	granted, ledger, err := h.engagementSvc.ClaimReward(userID, "")
	if err != nil {
		return err
	}

	message := "Jelly granted! 🍮"
	if !granted {
		message = "Today's jelly was already claimed"
	}

	return shared.ResponseJSON(c, http.StatusOK, "Jelly claim", &dto.ClaimJellyResponse{
		Success:    granted,
		JellyCount: ledger.JellyCount,
		Message:    message,
		CanReceive: false,
	})
}

// @Summary Track login
// @Description Update the login streak without granting a reward
// @Tags user
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.LoginTrackResponse}
// @Router /api/v1/user/login-track [post]
func (h *UserHandler) TrackLogin(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.engagementSvc.TrackLogin(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Login tracked", resp)
}

// @Summary List unlocked cats
// @Description Return the cats the user has adopted
// @Tags user
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.UnlockedCatsResponse}
// @Router /api/v1/user/cats [get]
func (h *UserHandler) GetUnlockedCats(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.companionSvc.UnlockedCats(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Unlocked cats", resp)
}

// @Summary Adopt a cat
// @Description Spend jelly to unlock a new companion cat
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param adoptRequest body dto.AdoptCatRequest true "Cat to adopt"
// @Success 200 {object} shared.Response{data=dto.AdoptCatResponse}
// @Router /api/v1/user/cats/adopt [post]
func (h *UserHandler) AdoptCat(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.AdoptCatRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.companionSvc.Adopt(userID, req.CatName)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Adoption result", resp)
}

// @Summary Get selected cat
// @Description Return the cat currently shown as the assistant
// @Tags user
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.SelectedCatResponse}
// @Router /api/v1/user/cats/selected [get]
func (h *UserHandler) GetSelectedCat(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.companionSvc.SelectedCat(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Selected cat", resp)
}

// @Summary Select a cat
// @Description Switch the assistant to one of the unlocked cats
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param selectRequest body dto.SelectCatRequest true "Cat to select"
// @Success 200 {object} shared.Response{data=dto.SelectedCatResponse}
// @Router /api/v1/user/cats/selected [put]
func (h *UserHandler) SelectCat(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.SelectCatRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.companionSvc.SelectCat(userID, req.SelectedCat)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Cat selected", resp)
}

// @Summary Get cat catalog
// @Description List every cat with its price and image
// @Tags user
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.CatCatalogResponse}
// @Router /api/v1/user/cats/catalog [get]
func (h *UserHandler) GetCatCatalog(c *fiber.Ctx) error {
	resp, err := h.companionSvc.Catalog()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Cat catalog", resp)
}

// @Summary Get mood history
// @Description Return recent mood check-ins, newest first
// @Tags user
// @Produce json
// @Security Bearer
// @Param limit query int false "Maximum entries to return" default(30)
// @Success 200 {object} shared.Response{data=dto.MoodHistoryResponse}
// @Router /api/v1/user/moods [get]
func (h *UserHandler) GetMoodHistory(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	limit := 30
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 365 {
			return shared.NewBadRequestError(err, "Invalid limit")
		}
		limit = parsed
	}

	resp, err := h.engagementSvc.MoodHistory(userID, limit)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Mood history", resp)
}
