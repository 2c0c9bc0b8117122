package export_bookings

import (
	"bytes"
	"context"

	"github.com/m04kA/LL-SlotBookingService/internal/service/export"
)

type ExportService interface {
	Export(ctx context.Context, req *export.Request) (*bytes.Buffer, string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
