package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberSwagger "github.com/gofiber/swagger"
	log "github.com/sirupsen/logrus"

	"github.com/purrday-app/purrday_api/services/handlers"
	"github.com/purrday-app/purrday_api/shared"
)

type HttpService struct {
	context.DefaultService

	authSvc       *AuthService
	engagementSvc *EngagementService
	companionSvc  *CompanionService
	adviceSvc     *AdviceService
	todoSvc       *TodoService
	rateLimitSvc  *RateLimitService

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.engagementSvc = svc.Service(ENGAGEMENT_SVC).(*EngagementService)
	svc.companionSvc = svc.Service(COMPANION_SVC).(*CompanionService)
	svc.adviceSvc = svc.Service(ADVICE_SVC).(*AdviceService)
	svc.todoSvc = svc.Service(TODO_SVC).(*TodoService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)

	app := fiber.New(fiber.Config{
		JSONEncoder:  shared.JSONEncoder,
		JSONDecoder:  shared.JSONDecoder,
		ErrorHandler: svc.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("CORS_ORIGINS"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
	}))
	app.Use(MonitoringMiddleware())
	app.Use(svc.rateLimitSvc.IPRateLimit())

	svc.registerRoutes(app)

	svc.server = app
	log.WithField("port", svc.port).Info("HTTP server started")
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

func (svc *HttpService) registerRoutes(app *fiber.App) {
	authHandler := handlers.NewAuthHandler(svc.authSvc)
	userHandler := handlers.NewUserHandler(svc.engagementSvc, svc.companionSvc, svc.adviceSvc)
	todoHandler := handlers.NewTodoHandler(svc.todoSvc)
	adviceHandler := handlers.NewAdviceHandler(svc.adviceSvc)

	app.Get("/ping", svc.ping)
	app.Get("/swagger/*", fiberSwagger.HandlerDefault)

	v1 := app.Group("/api/v1")
	v1.Get("/ping", svc.ping)

	v1.Post("/register", svc.rateLimitSvc.RateLimit("register"), authHandler.Register)
	v1.Post("/login", svc.rateLimitSvc.RateLimit("login"), authHandler.Login)

	user := v1.Group("/user", svc.authSvc.RequiredAuth())
	user.Get("/attendance", userHandler.GetAttendanceStatus)
	user.Post("/attendance", userHandler.ClaimAttendance)
	user.Get("/jelly", userHandler.GetJelly)
	user.Post("/jelly", userHandler.ClaimJelly)
	user.Post("/login-track", userHandler.TrackLogin)
	user.Get("/moods", userHandler.GetMoodHistory)

	user.Get("/cats", userHandler.GetUnlockedCats)
	user.Get("/cats/catalog", userHandler.GetCatCatalog)
	user.Post("/cats/adopt", svc.rateLimitSvc.RateLimit("adopt"), userHandler.AdoptCat)
	user.Get("/cats/selected", userHandler.GetSelectedCat)
	user.Put("/cats/selected", userHandler.SelectCat)

	todos := v1.Group("/todos", svc.authSvc.RequiredAuth())
	todos.Get("/", todoHandler.ListTodos)
	todos.Post("/", todoHandler.CreateTodo)
	todos.Put("/:id", todoHandler.UpdateTodo)
	todos.Delete("/:id", todoHandler.DeleteTodo)

	v1.Get("/advice", svc.authSvc.RequiredAuth(), adviceHandler.GetDailyAdvice)
	v1.Post("/assistant", svc.authSvc.RequiredAuth(), svc.rateLimitSvc.RateLimit("assistant"), adviceHandler.Assistant)
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseJSON(c, http.StatusOK, "Success", "pong")
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.WithError(err).Error("Unhandled request error")
	return shared.ResponseInternalError(c)
}
