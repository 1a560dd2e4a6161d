package dto

type CreateTodoRequest struct {
	Text string `json:"text" validate:"required,max=500"`
	Date string `json:"date" validate:"required,date_key"`
}

func (r CreateTodoRequest) Validate() error {
	return GetValidator().Struct(r)
}

// UpdateTodoRequest uses pointers so a PUT can change any subset of fields.
type UpdateTodoRequest struct {
	Text      *string `json:"text" validate:"omitempty,max=500"`
	Date      *string `json:"date" validate:"omitempty,date_key"`
	Completed *bool   `json:"completed"`
}

func (r UpdateTodoRequest) Validate() error {
	return GetValidator().Struct(r)
}
