package dto

type AssistantRequest struct {
	Action  string `json:"action" validate:"required,oneof=TASK_ADVICE SUMMARIZE GREETING MOOD_RESPONSE"`
	CatName string `json:"cat_name" validate:"required"`
	TodoID  string `json:"todo_id"`
	Date    string `json:"date" validate:"omitempty,date_key"`
	Mood    string `json:"mood" validate:"omitempty,oneof=good neutral bad"`
}

func (r AssistantRequest) Validate() error {
	return GetValidator().Struct(r)
}

type AssistantResponse struct {
	Message string `json:"message"`
	Cached  bool   `json:"cached"`
}

type DailyAdviceResponse struct {
	Date    string `json:"date"`
	CatName string `json:"cat_name"`
	Message string `json:"message"`
}
