package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот с указанным ключом не материализован
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotAlreadyExists возвращается при попытке повторно материализовать слот
	ErrSlotAlreadyExists = errors.New("slot.repository: slot already exists")

	// ErrStateConflict возвращается, когда условное обновление не применилось:
	// текущее состояние слота не совпало с ожидаемым
	ErrStateConflict = errors.New("slot.repository: slot state conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
