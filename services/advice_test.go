package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purrday-app/purrday_api/shared"
)

type stubGenerator struct {
	calls int
	reply string
	err   error
}

func (s *stubGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newAdvice(sql *SqlService, gen TextGenerator) *AdviceService {
	return &AdviceService{sqlSvc: sql, ai: gen}
}

func TestDailyAdviceNoTasks(t *testing.T) {
	sql := newTestSql(t)
	gen := &stubGenerator{reply: "generated"}
	svc := newAdvice(sql, gen)
	userID := seedUser(t, sql, "idle")

	resp, err := svc.DailyAdvice(context.Background(), userID, shared.Today(), "dudu")
	require.NoError(t, err)

	persona, _ := CatPersona("dudu")
	assert.Equal(t, persona.NoTasksMessage, resp.Message)
	assert.False(t, resp.Cached)
	assert.Equal(t, 0, gen.calls, "an empty day never invokes the collaborator")
}

func TestDailyAdviceTasksRemaining(t *testing.T) {
	sql := newTestSql(t)
	gen := &stubGenerator{reply: "generated"}
	svc := newAdvice(sql, gen)
	userID := seedUser(t, sql, "busy")

	_, err := sql.Todos().CreateTodo(userID, "Write the report", shared.Today())
	require.NoError(t, err)

	resp, err := svc.DailyAdvice(context.Background(), userID, shared.Today(), "coco")
	require.NoError(t, err)

	persona, _ := CatPersona("coco")
	assert.Equal(t, persona.IncompleteMessage, resp.Message)
	assert.Equal(t, 0, gen.calls)
}

func TestDailyAdviceGeneratesOncePerTriple(t *testing.T) {
	sql := newTestSql(t)
	gen := &stubGenerator{reply: "Well done, butler, nya!"}
	svc := newAdvice(sql, gen)
	userID := seedUser(t, sql, "finisher")

	todo, err := sql.Todos().CreateTodo(userID, "Clean the litter box", shared.Today())
	require.NoError(t, err)
	todo.Completed = true
	require.NoError(t, sql.Todos().UpdateTodo(todo))

	first, err := svc.DailyAdvice(context.Background(), userID, shared.Today(), "dudu")
	require.NoError(t, err)
	assert.Equal(t, "Well done, butler, nya!", first.Message)
	assert.False(t, first.Cached)

	second, err := svc.DailyAdvice(context.Background(), userID, shared.Today(), "dudu")
	require.NoError(t, err)
	assert.Equal(t, first.Message, second.Message)
	assert.True(t, second.Cached)
	assert.Equal(t, 1, gen.calls, "the cache must absorb the repeat request")
}

func TestDailyAdviceCacheIsPerCatAndUser(t *testing.T) {
	sql := newTestSql(t)
	gen := &stubGenerator{reply: "praise"}
	svc := newAdvice(sql, gen)
	userA := seedUser(t, sql, "usera")
	userB := seedUser(t, sql, "userb")

	for _, uid := range []string{userA, userB} {
		todo, err := sql.Todos().CreateTodo(uid, "Stretch", shared.Today())
		require.NoError(t, err)
		todo.Completed = true
		require.NoError(t, sql.Todos().UpdateTodo(todo))
	}

	_, err := svc.DailyAdvice(context.Background(), userA, shared.Today(), "dudu")
	require.NoError(t, err)
	_, err = svc.DailyAdvice(context.Background(), userA, shared.Today(), "coco")
	require.NoError(t, err)
	_, err = svc.DailyAdvice(context.Background(), userB, shared.Today(), "dudu")
	require.NoError(t, err)

	assert.Equal(t, 3, gen.calls, "each (date, cat, user) triple generates independently")
}

func TestDailyAdviceFailureIsNotCached(t *testing.T) {
	sql := newTestSql(t)
	gen := &stubGenerator{err: errors.New("upstream down")}
	svc := newAdvice(sql, gen)
	userID := seedUser(t, sql, "unlucky")

	todo, err := sql.Todos().CreateTodo(userID, "Meditate", shared.Today())
	require.NoError(t, err)
	todo.Completed = true
	require.NoError(t, sql.Todos().UpdateTodo(todo))

	resp, err := svc.DailyAdvice(context.Background(), userID, shared.Today(), "dudu")
	require.NoError(t, err)

	persona, _ := CatPersona("dudu")
	assert.Equal(t, persona.FallbackMessage, resp.Message)

	// The fallback was not persisted, so a recovered collaborator is retried.
	gen.err = nil
	gen.reply = "recovered"
	resp, err = svc.DailyAdvice(context.Background(), userID, shared.Today(), "dudu")
	require.NoError(t, err)
	assert.Equal(t, "recovered", resp.Message)
	assert.Equal(t, 2, gen.calls)
}

func TestGetDailyAdviceMissIsNil(t *testing.T) {
	sql := newTestSql(t)
	svc := newAdvice(sql, &stubGenerator{})
	userID := seedUser(t, sql, "reader")

	resp, err := svc.GetDailyAdvice(context.Background(), userID, shared.Today(), "dudu")
	require.NoError(t, err)
	assert.Nil(t, resp, "a cache miss is an empty answer, not an error")
}

func TestTaskAdviceAlwaysRegenerates(t *testing.T) {
	sql := newTestSql(t)
	gen := &stubGenerator{reply: "You can do it, nya!"}
	svc := newAdvice(sql, gen)
	userID := seedUser(t, sql, "advised")

	todo, err := sql.Todos().CreateTodo(userID, "Book the dentist", shared.Today())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		resp, err := svc.TaskAdvice(context.Background(), userID, todo.ID, "kkamnyang")
		require.NoError(t, err)
		assert.Equal(t, "You can do it, nya!", resp.Message)
	}
	assert.Equal(t, 2, gen.calls, "task advice has no cache")

	stored, err := sql.Todos().GetTodo(userID, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "You can do it, nya!", stored.Advice)
	assert.Equal(t, "kkamnyang", stored.AdviceCat)
}

func TestTaskAdviceScopedToOwner(t *testing.T) {
	sql := newTestSql(t)
	svc := newAdvice(sql, &stubGenerator{reply: "hi"})
	owner := seedUser(t, sql, "owner")
	intruder := seedUser(t, sql, "intruder")

	todo, err := sql.Todos().CreateTodo(owner, "Private task", shared.Today())
	require.NoError(t, err)

	_, err = svc.TaskAdvice(context.Background(), intruder, todo.ID, "dudu")
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestAttendanceMessageActions(t *testing.T) {
	sql := newTestSql(t)
	gen := &stubGenerator{reply: "Welcome back, butler, nya~"}
	svc := newAdvice(sql, gen)

	resp, err := svc.AttendanceMessage(context.Background(), "dudu", shared.ActionGreeting, "")
	require.NoError(t, err)
	assert.Equal(t, "Welcome back, butler, nya~", resp.Message)

	resp, err = svc.AttendanceMessage(context.Background(), "dudu", shared.ActionMoodResponse, shared.MoodBad)
	require.NoError(t, err)
	assert.Equal(t, "Welcome back, butler, nya~", resp.Message)

	_, err = svc.AttendanceMessage(context.Background(), "dudu", shared.ActionSummarize, "")
	require.Error(t, err, "summaries do not go through the attendance path")
}

func TestCreateDailyAdviceLostRaceReturnsWinner(t *testing.T) {
	sql := newTestSql(t)
	userID := seedUser(t, sql, "loser")

	winner, err := sql.Advice().CreateDailyAdvice(userID, shared.Today(), "dudu", "first")
	require.NoError(t, err)

	loser, err := sql.Advice().CreateDailyAdvice(userID, shared.Today(), "dudu", "second")
	require.NoError(t, err)
	assert.Equal(t, winner.ID, loser.ID)
	assert.Equal(t, "first", loser.Message, "the losing insert must surface the winner's row")
}
