package create_transaction

import (
	"context"

	createTransaction "github.com/wahidman/serverr/internal/usecase/create_transaction"
)

type CreateTransactionUseCase interface {
	Execute(ctx context.Context, req *createTransaction.Request) (*createTransaction.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
