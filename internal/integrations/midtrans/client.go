package midtrans

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wahidman/serverr/pkg/retrier"
)

const snapTransactionsPath = "/snap/v1/transactions"

// Client клиент Midtrans Snap API
type Client struct {
	baseURL    string
	serverKey  string
	httpClient *http.Client
	retrier    *retrier.Retrier
	log        Logger
}

// NewClient создает новый экземпляр клиента Snap
// timeout ограничивает каждую попытку, retryCfg задаёт повторы для сетевых ошибок и 5xx
func NewClient(baseURL, serverKey string, timeout time.Duration, retryCfg retrier.Config, log Logger) *Client {
	retryCfg.ShouldRetry = func(err error) bool {
		return errors.Is(err, errTemporary)
	}

	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		serverKey: serverKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		retrier: retrier.New(retryCfg),
		log:     log,
	}
}

// CreateTransaction получает токен Snap для заказа
func (c *Client) CreateTransaction(ctx context.Context, req *TransactionRequest) (*TransactionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrPaymentSession, err)
	}

	var result *TransactionResponse
	attempt := 0

	err = c.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		resp, err := c.doCreate(ctx, body)
		if err != nil {
			c.log.Warn("Midtrans: create transaction order_id=%s attempt=%d failed: %v",
				req.TransactionDetails.OrderID, attempt, err)
			return err
		}
		result = resp
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentSession, err)
	}

	return result, nil
}

func (c *Client) doCreate(ctx context.Context, body []byte) (*TransactionResponse, error) {
	url := c.baseURL + snapTransactionsPath

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.serverKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", errTemporary, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", errTemporary, err)
	}

	// Обработка статус-кодов
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// Продолжаем обработку
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", errTemporary, resp.StatusCode, string(respBody))
	default:
		var errResp ErrorResponse
		if json.Unmarshal(respBody, &errResp) == nil && len(errResp.ErrorMessages) > 0 {
			return nil, fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, strings.Join(errResp.ErrorMessages, "; "))
		}
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	// Парсим ответ
	var out TransactionResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if out.Token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidResponse)
	}

	return &out, nil
}
