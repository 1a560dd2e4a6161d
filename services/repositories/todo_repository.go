package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/purrday-app/purrday_api/model"
)

// TodoRepository scopes every query by the owning user.
type TodoRepository struct {
	BaseRepository
}

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *TodoRepository) CreateTodo(userID, text, date string) (*model.Todo, error) {
	id, _ := uuid.NewV7()
	todo := &model.Todo{
		ID:        id.String(),
		UserID:    userID,
		Text:      text,
		Date:      date,
		Completed: false,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := ds.db.Create(todo).Error; err != nil {
		return nil, err
	}
	return todo, nil
}

func (ds *TodoRepository) GetTodo(userID, todoID string) (*model.Todo, error) {
	var todo model.Todo
	if err := ds.db.Where("id = ? AND user_id = ?", todoID, userID).First(&todo).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

func (ds *TodoRepository) ListTodos(userID string) ([]model.Todo, error) {
	var todos []model.Todo
	if err := ds.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

func (ds *TodoRepository) ListTodosByDate(userID, date string) ([]model.Todo, error) {
	var todos []model.Todo
	if err := ds.db.Where("user_id = ? AND date = ?", userID, date).Order("created_at ASC").Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

func (ds *TodoRepository) UpdateTodo(todo *model.Todo) error {
	todo.UpdatedAt = time.Now()
	return ds.db.Save(todo).Error
}

// SetTaskAdvice writes the denormalized per-task advice alongside the cat
// that produced it.
func (ds *TodoRepository) SetTaskAdvice(userID, todoID, advice, catName string) error {
	return ds.db.Model(&model.Todo{}).
		Where("id = ? AND user_id = ?", todoID, userID).
		Updates(map[string]interface{}{
			"advice":     advice,
			"advice_cat": catName,
			"updated_at": time.Now(),
		}).Error
}

func (ds *TodoRepository) DeleteTodo(userID, todoID string) error {
	res := ds.db.Where("id = ? AND user_id = ?", todoID, userID).Delete(&model.Todo{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
