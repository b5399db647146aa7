package create_order

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createOrder "github.com/wahidman/serverr/internal/usecase/create_order"
	"github.com/wahidman/serverr/pkg/logger"
)

type fakeUseCase struct {
	executeFn func(ctx context.Context, req *createOrder.Request) (*createOrder.Response, error)
	got       *createOrder.Request
}

func (f *fakeUseCase) Execute(ctx context.Context, req *createOrder.Request) (*createOrder.Response, error) {
	f.got = req
	return f.executeFn(ctx, req)
}

const validBody = `{"name":"Budi","whatsapp":"08123","location":"Bandung","date":"2025-06-01","time":"10:00","package":"Basic","dpAmount":"50000"}`

func TestHandler_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		executeErr error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "заказ создан",
			body:       validBody,
			wantStatus: http.StatusOK,
			wantBody:   `{"success":true,"order_id":"ORD-1717200000000","wa_link":"https://wa.me/62?text=x"}`,
		},
		{
			name:       "некорректный JSON",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"message":"Format permintaan tidak valid."}`,
		},
		{
			name:       "ошибка валидации",
			body:       validBody,
			executeErr: createOrder.ErrInvalidInput,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"message":"Data pesanan tidak lengkap atau tidak valid."}`,
		},
		{
			name:       "слот занят",
			body:       validBody,
			executeErr: createOrder.ErrSlotConflict,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"message":"Waktu tersebut sudah dipesan. Silakan pilih waktu lain."}`,
		},
		{
			name:       "внутренняя ошибка",
			body:       validBody,
			executeErr: errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"success":false,"message":"Terjadi kesalahan."}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := &fakeUseCase{executeFn: func(context.Context, *createOrder.Request) (*createOrder.Response, error) {
				if tt.executeErr != nil {
					return nil, tt.executeErr
				}
				return &createOrder.Response{OrderReference: "ORD-1717200000000", OperatorLink: "https://wa.me/62?text=x"}, nil
			}}
			h := NewHandler(uc, logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodPost, "/create-order", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestHandler_MapsRequestFields(t *testing.T) {
	t.Parallel()

	uc := &fakeUseCase{executeFn: func(context.Context, *createOrder.Request) (*createOrder.Response, error) {
		return &createOrder.Response{OrderReference: "ORD-1"}, nil
	}}
	h := NewHandler(uc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/create-order", strings.NewReader(validBody)))
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, "Budi", uc.got.CustomerName)
	assert.Equal(t, "08123", uc.got.ContactNumber)
	assert.Equal(t, "Bandung", uc.got.Location)
	assert.Equal(t, "2025-06-01", uc.got.Date)
	assert.Equal(t, "10:00", uc.got.Time)
	assert.Equal(t, "Basic", uc.got.PackageLabel)
	require.NotNil(t, uc.got.DepositAmount)
	assert.Equal(t, int64(50000), *uc.got.DepositAmount)

	var resp CreateOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestHandler_DepositAmountRequired(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "dpAmount не передан",
			body:       `{"name":"Budi","whatsapp":"08123","location":"Bandung","date":"2025-06-01","time":"10:00","package":"Basic"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"message":"Data pesanan tidak lengkap atau tidak valid."}`,
		},
		{
			name:       "dpAmount null",
			body:       `{"name":"Budi","whatsapp":"08123","location":"Bandung","date":"2025-06-01","time":"10:00","package":"Basic","dpAmount":null}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"message":"Data pesanan tidak lengkap atau tidak valid."}`,
		},
		{
			name:       "dpAmount пустая строка",
			body:       `{"name":"Budi","whatsapp":"08123","location":"Bandung","date":"2025-06-01","time":"10:00","package":"Basic","dpAmount":""}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"message":"Format permintaan tidak valid."}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// как и валидация use case: без депозита заказ не создаётся
			uc := &fakeUseCase{executeFn: func(_ context.Context, req *createOrder.Request) (*createOrder.Response, error) {
				if req.DepositAmount == nil {
					return nil, createOrder.ErrInvalidInput
				}
				return &createOrder.Response{OrderReference: "ORD-1"}, nil
			}}
			h := NewHandler(uc, logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodPost, "/create-order", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			if uc.got != nil {
				assert.Nil(t, uc.got.DepositAmount)
			}
		})
	}
}
