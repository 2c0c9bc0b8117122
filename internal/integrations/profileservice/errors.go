package profileservice

import "errors"

var (
	// ErrAdvisorNotFound возвращается, когда советник не найден в ProfileService
	ErrAdvisorNotFound = errors.New("advisor not found")

	// ErrStudentNotFound возвращается, когда студент не найден в ProfileService
	ErrStudentNotFound = errors.New("student not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("profileservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("profileservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что ProfileService недоступен и ответ собирается без данных профилей
	ErrServiceDegraded = errors.New("profileservice unavailable: graceful degradation applied")
)
