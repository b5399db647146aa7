package midtrans_notification

import (
	"context"

	applyNotification "github.com/wahidman/serverr/internal/usecase/apply_notification"
)

type ApplyNotificationUseCase interface {
	Execute(ctx context.Context, req *applyNotification.Request) (*applyNotification.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
