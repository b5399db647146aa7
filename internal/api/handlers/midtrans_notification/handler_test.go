package midtrans_notification

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wahidman/serverr/internal/config"
	applyNotification "github.com/wahidman/serverr/internal/usecase/apply_notification"
	"github.com/wahidman/serverr/pkg/logger"
)

type fakeUseCase struct {
	executeFn func(ctx context.Context, req *applyNotification.Request) (*applyNotification.Response, error)
}

func (f *fakeUseCase) Execute(ctx context.Context, req *applyNotification.Request) (*applyNotification.Response, error) {
	return f.executeFn(ctx, req)
}

const body = `{"order_id":"ORD-1","transaction_status":"settlement","status_code":"200","gross_amount":"50000.00","signature_key":"abc"}`

func TestHandler_AckPolicies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		body          string
		executeErr    error
		wantAlways    int
		wantOnSuccess int
	}{
		{name: "применено", body: body, wantAlways: http.StatusOK, wantOnSuccess: http.StatusOK},
		{name: "некорректный JSON", body: `{`, wantAlways: http.StatusOK, wantOnSuccess: http.StatusBadRequest},
		{name: "пустые поля", body: body, executeErr: applyNotification.ErrInvalidInput, wantAlways: http.StatusOK, wantOnSuccess: http.StatusBadRequest},
		{name: "заказ не найден", body: body, executeErr: applyNotification.ErrOrderNotFound, wantAlways: http.StatusOK, wantOnSuccess: http.StatusNotFound},
		{name: "неверная подпись", body: body, executeErr: applyNotification.ErrInvalidSignature, wantAlways: http.StatusOK, wantOnSuccess: http.StatusForbidden},
		{name: "переход запрещён", body: body, executeErr: applyNotification.ErrInvalidTransition, wantAlways: http.StatusOK, wantOnSuccess: http.StatusOK},
		{name: "ошибка хранилища", body: body, executeErr: errors.New("db down"), wantAlways: http.StatusOK, wantOnSuccess: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		for policy, want := range map[string]int{
			config.AckPolicyAlways:    tt.wantAlways,
			config.AckPolicyOnSuccess: tt.wantOnSuccess,
		} {
			policy := policy
			want := want
			t.Run(tt.name+"/"+policy, func(t *testing.T) {
				t.Parallel()

				uc := &fakeUseCase{executeFn: func(context.Context, *applyNotification.Request) (*applyNotification.Response, error) {
					if tt.executeErr != nil {
						return nil, tt.executeErr
					}
					return &applyNotification.Response{Outcome: applyNotification.OutcomeApplied, Status: "PAID"}, nil
				}}
				h := NewHandler(uc, policy, logger.NewNop())

				rec := httptest.NewRecorder()
				h.Handle(rec, httptest.NewRequest(http.MethodPost, "/midtrans-notification", strings.NewReader(tt.body)))

				assert.Equal(t, want, rec.Code)
				if want == http.StatusOK {
					assert.JSONEq(t, `{"success":true}`, rec.Body.String())
				} else {
					assert.Contains(t, rec.Body.String(), `"success":false`)
				}
			})
		}
	}
}

func TestHandler_MapsNotificationFields(t *testing.T) {
	t.Parallel()

	var got *applyNotification.Request
	uc := &fakeUseCase{executeFn: func(_ context.Context, req *applyNotification.Request) (*applyNotification.Response, error) {
		got = req
		return &applyNotification.Response{Outcome: applyNotification.OutcomeNoop}, nil
	}}
	h := NewHandler(uc, config.AckPolicyAlways, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/midtrans-notification",
		strings.NewReader(`{"order_id":"ORD-9","transaction_status":"expire","status_code":407,"gross_amount":"75000.00","signature_key":"sig"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "ORD-9", got.OrderReference)
	assert.Equal(t, "expire", got.TransactionStatus)
	assert.Equal(t, "407", got.StatusCode)
	assert.Equal(t, "75000.00", got.GrossAmount)
	assert.Equal(t, "sig", got.SignatureKey)
}
