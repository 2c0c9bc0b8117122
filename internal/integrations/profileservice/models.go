package profileservice

// Advisor модель советника из ProfileService
type Advisor struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	AvatarURL   *string `json:"avatar_url"`
	IsBookable  bool    `json:"is_bookable"`
	IsSuspended bool    `json:"is_suspended"`
}

// DisplayName возвращает имя советника для отображения
func (a *Advisor) DisplayName() string {
	if a.FirstName == "" && a.LastName == "" {
		return a.Email
	}
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// AcceptsBookings советник принимает бронирования
func (a *Advisor) AcceptsBookings() bool {
	return a.IsBookable && !a.IsSuspended
}

// Student модель студента из ProfileService
type Student struct {
	ID                     int64  `json:"id"`
	Email                  string `json:"email"`
	FirstName              string `json:"first_name"`
	LastName               string `json:"last_name"`
	QuestionnaireCompleted bool   `json:"questionnaire_completed"`
}

// ErrorResponse модель ошибки от ProfileService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
