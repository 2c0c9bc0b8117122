package profileservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Client клиент для работы с ProfileService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента ProfileService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetAdvisor получает профиль советника
func (c *Client) GetAdvisor(ctx context.Context, advisorID int64) (*Advisor, error) {
	url := fmt.Sprintf("%s/internal/advisors/%d", c.baseURL, advisorID)

	var advisor Advisor
	if err := c.doGet(ctx, url, &advisor, ErrAdvisorNotFound); err != nil {
		return nil, err
	}

	return &advisor, nil
}

// GetAdvisorsByIDs получает профили советников одним запросом
func (c *Client) GetAdvisorsByIDs(ctx context.Context, advisorIDs []int64) (map[int64]*Advisor, error) {
	if len(advisorIDs) == 0 {
		return map[int64]*Advisor{}, nil
	}

	ids := make([]string, 0, len(advisorIDs))
	for _, id := range advisorIDs {
		ids = append(ids, strconv.FormatInt(id, 10))
	}
	url := fmt.Sprintf("%s/internal/advisors?ids=%s", c.baseURL, strings.Join(ids, ","))

	var advisors []*Advisor
	if err := c.doGet(ctx, url, &advisors, ErrAdvisorNotFound); err != nil {
		return nil, err
	}

	result := make(map[int64]*Advisor, len(advisors))
	for _, a := range advisors {
		result[a.ID] = a
	}

	return result, nil
}

// GetStudent получает профиль студента
func (c *Client) GetStudent(ctx context.Context, studentID int64) (*Student, error) {
	url := fmt.Sprintf("%s/internal/students/%d", c.baseURL, studentID)

	var student Student
	if err := c.doGet(ctx, url, &student, ErrStudentNotFound); err != nil {
		return nil, err
	}

	return &student, nil
}

// GetAdvisorsByIDsWithGracefulDegradation получает профили советников с graceful degradation
// При недоступности ProfileService возвращает ErrServiceDegraded, что позволяет
// собрать ответ без имен и аватаров
func (c *Client) GetAdvisorsByIDsWithGracefulDegradation(ctx context.Context, advisorIDs []int64) (map[int64]*Advisor, error) {
	c.log.Info("Fetching %d advisor profiles", len(advisorIDs))

	advisors, err := c.GetAdvisorsByIDs(ctx, advisorIDs)
	if err != nil {
		// Для всех ошибок (недоступность сервиса, timeout, ошибки парсинга и т.д.)
		// применяем graceful degradation - возвращаем ErrServiceDegraded с контекстом
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("ProfileService unavailable, applying graceful degradation for advisor batch: %v", err)
		return nil, fmt.Errorf("%w: advisor_ids=%v, error=%v", ErrServiceDegraded, advisorIDs, err)
	}

	c.log.Info("Successfully fetched %d advisor profiles", len(advisors))
	return advisors, nil
}

// doGet выполняет GET запрос и декодирует ответ
func (c *Client) doGet(ctx context.Context, url string, out interface{}, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return fmt.Errorf("%w: invalid identifier format", ErrInvalidResponse)
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
