package midtrans

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wahidman/serverr/pkg/logger"
	"github.com/wahidman/serverr/pkg/retrier"
)

func fastRetry() retrier.Config {
	return retrier.Config{
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		MaxElapsedTime:  time.Second,
		Multiplier:      2,
		MaxRetries:      2,
	}
}

func TestClient_CreateTransaction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantToken string
		wantErr   error
		wantCalls int32
	}{
		{
			name: "успешное создание транзакции",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(`{"token":"snap-token","redirect_url":"https://pay"}`))
			},
			wantToken: "snap-token",
			wantCalls: 1,
		},
		{
			name: "4xx не повторяется",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error_messages":["transaction_details.order_id has already been taken"]}`))
			},
			wantErr:   ErrPaymentSession,
			wantCalls: 1,
		},
		{
			name: "5xx повторяется",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantErr:   ErrPaymentSession,
			wantCalls: 3,
		},
		{
			name: "пустой токен",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"token":""}`))
			},
			wantErr:   ErrPaymentSession,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var localCalls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&localCalls, 1)
				tt.handler(w, r)
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "SB-server-key", time.Second, fastRetry(), logger.NewNop())

			resp, err := client.CreateTransaction(context.Background(), &TransactionRequest{
				TransactionDetails: TransactionDetails{OrderID: "ORD-1", GrossAmount: 50000},
			})

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, resp.Token)
			}
			assert.Equal(t, tt.wantCalls, atomic.LoadInt32(&localCalls))
		})
	}
}

func TestClient_SendsBasicAuthAndBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, snapTransactionsPath, r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "SB-server-key", user)
		assert.Empty(t, pass)

		var body TransactionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ORD-42", body.TransactionDetails.OrderID)
		assert.Equal(t, int64(75000), body.TransactionDetails.GrossAmount)
		if assert.NotNil(t, body.CustomerDetails) {
			assert.Equal(t, "Budi", body.CustomerDetails.FirstName)
			assert.Equal(t, "08123", body.CustomerDetails.Phone)
		}

		_, _ = w.Write([]byte(`{"token":"tok"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", "SB-server-key", time.Second, fastRetry(), logger.NewNop())
	resp, err := client.CreateTransaction(context.Background(), &TransactionRequest{
		TransactionDetails: TransactionDetails{OrderID: "ORD-42", GrossAmount: 75000},
		CustomerDetails:    &CustomerDetails{FirstName: "Budi", Phone: "08123"},
	})

	require.NoError(t, err)
	assert.Equal(t, "tok", resp.Token)
}

func TestClient_Timeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"token":"late"}`))
	}))
	defer srv.Close()

	cfg := fastRetry()
	cfg.MaxRetries = 1
	client := NewClient(srv.URL, "key", 20*time.Millisecond, cfg, logger.NewNop())

	_, err := client.CreateTransaction(context.Background(), &TransactionRequest{
		TransactionDetails: TransactionDetails{OrderID: "ORD-1", GrossAmount: 1},
	})
	require.ErrorIs(t, err, ErrPaymentSession)
}

func TestVerifySignature(t *testing.T) {
	t.Parallel()

	sig := Signature("ORD-1", "200", "50000.00", "server-key")
	assert.Len(t, sig, 128)

	assert.True(t, VerifySignature("ORD-1", "200", "50000.00", "server-key", sig))
	assert.False(t, VerifySignature("ORD-1", "200", "50000.00", "other-key", sig))
	assert.False(t, VerifySignature("ORD-1", "201", "50000.00", "server-key", sig))
	assert.False(t, VerifySignature("ORD-1", "200", "50000.00", "server-key", ""))
}
