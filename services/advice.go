package services

import (
	gocontext "context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/purrday-app/purrday_api/dto"
	"github.com/purrday-app/purrday_api/model"
	"github.com/purrday-app/purrday_api/shared"
)

// AdviceService answers with persona-voiced messages. Daily summaries are
// the only generated-and-cached path: the cache key is (date, cat, user) and
// the collaborator is invoked at most once per triple. Task advice always
// regenerates; greetings and mood responses are never cached.
type AdviceService struct {
	context.DefaultService

	sqlSvc   *SqlService
	redisSvc *RedisService
	ai       TextGenerator
}

const ADVICE_SVC = "advice_svc"

// adviceCacheTTL bounds the redis hot layer; the DB row is authoritative.
const adviceCacheTTL = 48 * time.Hour

func (svc AdviceService) Id() string {
	return ADVICE_SVC
}

func (svc *AdviceService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AdviceService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	svc.ai = svc.Service(OPENAI_SVC).(*OpenAIService)
	if redisSvc, ok := svc.Service(REDIS_SVC).(*RedisService); ok {
		svc.redisSvc = redisSvc
	}
	return nil
}

// TaskAdvice regenerates on every call and denormalizes the result onto the
// todo row together with the cat that produced it.
func (svc *AdviceService) TaskAdvice(ctx gocontext.Context, userID, todoID, catName string) (*dto.AssistantResponse, error) {
	persona, ok := CatPersona(catName)
	if !ok {
		return nil, shared.NewBadRequestError(nil, "Invalid cat name")
	}

	todo, err := svc.sqlSvc.Todos().GetTodo(userID, todoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Todo not found")
		}
		return nil, svc.sqlSvc.HandleError(err)
	}

	prompt := fmt.Sprintf("Cheer the butler on and give a brief 1-2 line pointer on how to "+
		"approach the task. Don't awkwardly repeat your own character traits back. If the "+
		"task looks empty or meaningless, nudge them to get going instead.\n\nTask: %s", todo.Text)

	generationCallsTotal.Inc()
	message, err := svc.ai.Generate(ctx, persona.SystemPrompt, prompt)
	if err != nil {
		generationFailuresTotal.Inc()
		log.WithError(err).WithField("todo_id", todoID).Warn("Task advice generation failed")
		return &dto.AssistantResponse{Message: persona.FallbackMessage}, nil
	}

	if err := svc.sqlSvc.Todos().SetTaskAdvice(userID, todoID, message, catName); err != nil {
		log.WithError(err).WithField("todo_id", todoID).Warn("Failed to persist task advice")
	}

	return &dto.AssistantResponse{Message: message}, nil
}

// GetDailyAdvice reads the cache only; a miss is a 200 with no record so the
// client can decide to trigger generation.
func (svc *AdviceService) GetDailyAdvice(ctx gocontext.Context, userID, date, catName string) (*dto.DailyAdviceResponse, error) {
	if cached := svc.hotCacheGet(ctx, userID, date, catName); cached != "" {
		adviceCacheHitsTotal.Inc()
		return &dto.DailyAdviceResponse{Date: date, CatName: catName, Message: cached}, nil
	}

	advice, err := svc.sqlSvc.Advice().GetDailyAdvice(userID, date, catName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			adviceCacheMissesTotal.Inc()
			return nil, nil
		}
		return nil, svc.sqlSvc.HandleError(err)
	}

	adviceCacheHitsTotal.Inc()
	svc.hotCacheSet(ctx, userID, date, catName, advice.Message)
	return &dto.DailyAdviceResponse{Date: date, CatName: catName, Message: advice.Message}, nil
}

// DailyAdvice is the full cache-or-generate flow. Only the all-complete
// situation generates and caches; the empty and in-progress situations are
// answered from the persona's canned lines and re-evaluated on every call.
func (svc *AdviceService) DailyAdvice(ctx gocontext.Context, userID, date, catName string) (*dto.AssistantResponse, error) {
	persona, ok := CatPersona(catName)
	if !ok {
		return nil, shared.NewBadRequestError(nil, "Invalid cat name")
	}
	if date == "" {
		date = shared.Today()
	}

	if cached, err := svc.GetDailyAdvice(ctx, userID, date, catName); err != nil {
		return nil, err
	} else if cached != nil {
		return &dto.AssistantResponse{Message: cached.Message, Cached: true}, nil
	}

	todos, err := svc.sqlSvc.Todos().ListTodosByDate(userID, date)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	if len(todos) == 0 {
		return &dto.AssistantResponse{Message: persona.NoTasksMessage}, nil
	}
	for _, t := range todos {
		if !t.Completed {
			return &dto.AssistantResponse{Message: persona.IncompleteMessage}, nil
		}
	}

	return svc.generateDailySummary(ctx, userID, date, persona, todos)
}

func (svc *AdviceService) generateDailySummary(ctx gocontext.Context, userID, date string, persona Persona, todos []model.Todo) (*dto.AssistantResponse, error) {
	titles := make([]string, 0, len(todos))
	for _, t := range todos {
		titles = append(titles, "- "+t.Text)
	}

	prompt := fmt.Sprintf("The butler finished every task on today's list. Praise them "+
		"warmly in 1-2 lines and tell them to rest well. Don't awkwardly repeat your own "+
		"character traits back.\n\nCompleted tasks:\n%s", strings.Join(titles, "\n"))

	generationCallsTotal.Inc()
	message, err := svc.ai.Generate(ctx, persona.SystemPrompt, prompt)
	if err != nil {
		// Nothing is persisted on failure, so the next request retries
		// generation instead of caching the fallback.
		generationFailuresTotal.Inc()
		log.WithError(err).WithFields(log.Fields{
			"user_id": userID,
			"date":    date,
			"cat":     persona.Name,
		}).Warn("Daily summary generation failed")
		return &dto.AssistantResponse{Message: persona.FallbackMessage}, nil
	}

	advice, err := svc.sqlSvc.Advice().CreateDailyAdvice(userID, date, persona.Name, message)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	svc.hotCacheSet(ctx, userID, date, persona.Name, advice.Message)
	return &dto.AssistantResponse{Message: advice.Message}, nil
}

// AttendanceMessage voices the attendance modal: a greeting, or a response
// to the butler's mood check-in. Never cached.
func (svc *AdviceService) AttendanceMessage(ctx gocontext.Context, catName, action, mood string) (*dto.AssistantResponse, error) {
	persona, ok := CatPersona(catName)
	if !ok {
		return nil, shared.NewBadRequestError(nil, "Invalid cat name")
	}

	var prompt string
	switch action {
	case shared.ActionGreeting:
		prompt = "The butler has come to see you again today. Greet them warmly and ask " +
			"how they are feeling today. Keep it to 1-2 lines."
	case shared.ActionMoodResponse:
		prompt = fmt.Sprintf("The butler said today feels \"%s\". Respond warmly to that "+
			"and tell them you are giving them one jelly. Keep it to 1-2 lines.", moodText(mood))
	default:
		return nil, shared.NewBadRequestError(nil, "Invalid action")
	}

	generationCallsTotal.Inc()
	message, err := svc.ai.Generate(ctx, persona.SystemPrompt, prompt)
	if err != nil {
		generationFailuresTotal.Inc()
		log.WithError(err).WithField("cat", catName).Warn("Attendance message generation failed")
		return &dto.AssistantResponse{Message: persona.FallbackMessage}, nil
	}

	return &dto.AssistantResponse{Message: message}, nil
}

func moodText(mood string) string {
	switch mood {
	case shared.MoodBad:
		return "rough"
	case shared.MoodNeutral:
		return "just okay"
	default:
		return "good"
	}
}

func adviceCacheKey(userID, date, catName string) string {
	return fmt.Sprintf("advice:%s:%s:%s", userID, date, catName)
}

func (svc *AdviceService) hotCacheGet(ctx gocontext.Context, userID, date, catName string) string {
	if svc.redisSvc == nil {
		return ""
	}
	val, err := svc.redisSvc.Get(ctx, adviceCacheKey(userID, date, catName))
	if err != nil {
		log.WithError(err).Debug("Advice hot cache read failed")
		return ""
	}
	return val
}

func (svc *AdviceService) hotCacheSet(ctx gocontext.Context, userID, date, catName, message string) {
	if svc.redisSvc == nil {
		return
	}
	if err := svc.redisSvc.Set(ctx, adviceCacheKey(userID, date, catName), message, adviceCacheTTL); err != nil {
		log.WithError(err).Debug("Advice hot cache write failed")
	}
}
