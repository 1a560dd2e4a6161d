package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/purrday-app/purrday_api/dto"
	"github.com/purrday-app/purrday_api/model"
)

type AuthServiceInterface interface {
	Register(req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
	RequiredAuth() fiber.Handler
}

type JWTServiceInterface interface {
	ExtractTokenFromHeader(authHeader string) (string, error)
	VerifyJWTToken(token string) (string, error)
}

type EngagementServiceInterface interface {
	CheckEligibility(userID string) (*dto.AttendanceStatusResponse, error)
	ClaimReward(userID, mood string) (bool, *model.Ledger, error)
	TrackLogin(userID string) (*dto.LoginTrackResponse, error)
	GetJelly(userID string) (*dto.JellyResponse, error)
	MoodHistory(userID string, limit int) (*dto.MoodHistoryResponse, error)
}

type CompanionServiceInterface interface {
	Adopt(userID, catName string) (*dto.AdoptCatResponse, error)
	UnlockedCats(userID string) (*dto.UnlockedCatsResponse, error)
	SelectedCat(userID string) (*dto.SelectedCatResponse, error)
	SelectCat(userID, catName string) (*dto.SelectedCatResponse, error)
	Catalog() (*dto.CatCatalogResponse, error)
}

type AdviceServiceInterface interface {
	TaskAdvice(ctx context.Context, userID, todoID, catName string) (*dto.AssistantResponse, error)
	GetDailyAdvice(ctx context.Context, userID, date, catName string) (*dto.DailyAdviceResponse, error)
	DailyAdvice(ctx context.Context, userID, date, catName string) (*dto.AssistantResponse, error)
	AttendanceMessage(ctx context.Context, catName, action, mood string) (*dto.AssistantResponse, error)
}

type TodoServiceInterface interface {
	ListTodos(userID string) ([]model.Todo, error)
	CreateTodo(userID string, req dto.CreateTodoRequest) (*model.Todo, error)
	UpdateTodo(userID, todoID string, req dto.UpdateTodoRequest) (*model.Todo, error)
	DeleteTodo(userID, todoID string) error
}
