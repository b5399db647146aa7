package apply_notification

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wahidman/serverr/internal/domain"
	orderRepo "github.com/wahidman/serverr/internal/infra/storage/order"
	"github.com/wahidman/serverr/internal/integrations/midtrans"
	"github.com/wahidman/serverr/pkg/logger"
)

// memoryRepo заказы в памяти с CAS-обновлением как в БД
type memoryRepo struct {
	mu      sync.Mutex
	orders  map[string]*domain.Order
	updates int

	updateErr error
	getErr    error
}

func newRepo(orders ...*domain.Order) *memoryRepo {
	r := &memoryRepo{orders: map[string]*domain.Order{}}
	for _, o := range orders {
		r.orders[o.OrderReference] = o
	}
	return r
}

func (r *memoryRepo) GetByReference(_ context.Context, reference string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.getErr != nil {
		return nil, r.getErr
	}
	o, ok := r.orders[reference]
	if !ok {
		return nil, orderRepo.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *memoryRepo) UpdateStatusIfPending(_ context.Context, reference string, status domain.OrderStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.updateErr != nil {
		return false, r.updateErr
	}
	o, ok := r.orders[reference]
	if !ok || o.Status != domain.StatusPending {
		return false, nil
	}
	o.Status = status
	r.updates++
	return true, nil
}

func (r *memoryRepo) status(reference string) domain.OrderStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.orders[reference].Status
}

type memoryDedup struct {
	mu   sync.Mutex
	keys map[string]struct{}
	err  error
}

func (d *memoryDedup) Seen(_ context.Context, reference, providerStatus string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return false, d.err
	}
	_, ok := d.keys[reference+":"+providerStatus]
	return ok, nil
}

func (d *memoryDedup) Mark(_ context.Context, reference, providerStatus string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	if d.keys == nil {
		d.keys = map[string]struct{}{}
	}
	d.keys[reference+":"+providerStatus] = struct{}{}
	return nil
}

type noDedup struct{}

func (noDedup) Seen(context.Context, string, string) (bool, error) { return false, nil }
func (noDedup) Mark(context.Context, string, string) error         { return nil }

type fakeMetrics struct {
	mu      sync.Mutex
	results []string
}

func (m *fakeMetrics) Notification(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, result)
}

func order(reference string, status domain.OrderStatus) *domain.Order {
	return &domain.Order{OrderReference: reference, Status: status}
}

func TestExecute_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      string
		wantStatus  domain.OrderStatus
		wantOutcome string
	}{
		{name: "capture - оплачен", status: "capture", wantStatus: domain.StatusPaid, wantOutcome: OutcomeApplied},
		{name: "settlement - оплачен", status: "settlement", wantStatus: domain.StatusPaid, wantOutcome: OutcomeApplied},
		{name: "cancel - неуспешен", status: "cancel", wantStatus: domain.StatusFailed, wantOutcome: OutcomeApplied},
		{name: "expire - неуспешен", status: "expire", wantStatus: domain.StatusFailed, wantOutcome: OutcomeApplied},
		{name: "pending - без изменений", status: "pending", wantStatus: domain.StatusPending, wantOutcome: OutcomeNoop},
		{name: "deny - без изменений", status: "deny", wantStatus: domain.StatusPending, wantOutcome: OutcomeNoop},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := newRepo(order("ORD-1", domain.StatusPending))
			uc := NewUseCase(repo, noDedup{}, &fakeMetrics{}, Options{}, logger.NewNop())

			resp, err := uc.Execute(context.Background(), &Request{OrderReference: "ORD-1", TransactionStatus: tt.status})
			require.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, resp.Outcome)
			assert.Equal(t, tt.wantStatus, repo.status("ORD-1"))
		})
	}
}

func TestExecute_ReapplyIsNoop(t *testing.T) {
	t.Parallel()

	repo := newRepo(order("ORD-1", domain.StatusPending))
	m := &fakeMetrics{}
	uc := NewUseCase(repo, noDedup{}, m, Options{}, logger.NewNop())

	req := func() *Request { return &Request{OrderReference: "ORD-1", TransactionStatus: "settlement"} }

	resp, err := uc.Execute(context.Background(), req())
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, resp.Outcome)

	resp, err = uc.Execute(context.Background(), req())
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoop, resp.Outcome)
	assert.Equal(t, "PAID", resp.Status)

	assert.Equal(t, 1, repo.updates)
	assert.Equal(t, []string{"applied", "noop"}, m.results)
}

func TestExecute_TerminalStatusIsWriteOnce(t *testing.T) {
	t.Parallel()

	repo := newRepo(order("ORD-1", domain.StatusPaid))
	m := &fakeMetrics{}
	uc := NewUseCase(repo, noDedup{}, m, Options{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{OrderReference: "ORD-1", TransactionStatus: "expire"})
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, domain.StatusPaid, repo.status("ORD-1"))
	assert.Equal(t, []string{"invalid_transition"}, m.results)

	// Промежуточный статус по финальному заказу - не ошибка
	resp, err := uc.Execute(context.Background(), &Request{OrderReference: "ORD-1", TransactionStatus: "pending"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoop, resp.Outcome)
	assert.Equal(t, "PAID", resp.Status)
}

func TestExecute_OrderNotFound(t *testing.T) {
	t.Parallel()

	for _, status := range []string{"settlement", "pending"} {
		repo := newRepo()
		uc := NewUseCase(repo, noDedup{}, &fakeMetrics{}, Options{}, logger.NewNop())

		_, err := uc.Execute(context.Background(), &Request{OrderReference: "ORD-404", TransactionStatus: status})
		require.ErrorIs(t, err, ErrOrderNotFound, status)
	}
}

func TestExecute_Validation(t *testing.T) {
	t.Parallel()

	uc := NewUseCase(newRepo(), noDedup{}, &fakeMetrics{}, Options{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{TransactionStatus: "settlement"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{OrderReference: "ORD-1"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_StoreErrors(t *testing.T) {
	t.Parallel()

	repo := newRepo(order("ORD-1", domain.StatusPending))
	repo.updateErr = errors.New("db down")
	uc := NewUseCase(repo, noDedup{}, &fakeMetrics{}, Options{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{OrderReference: "ORD-1", TransactionStatus: "settlement"})
	require.ErrorIs(t, err, ErrInternal)

	repo = newRepo(order("ORD-1", domain.StatusPaid))
	repo.getErr = errors.New("db down")
	uc = NewUseCase(repo, noDedup{}, &fakeMetrics{}, Options{}, logger.NewNop())

	_, err = uc.Execute(context.Background(), &Request{OrderReference: "ORD-1", TransactionStatus: "settlement"})
	require.ErrorIs(t, err, ErrInternal)
}

func TestExecute_Signature(t *testing.T) {
	t.Parallel()

	const serverKey = "SB-server-key"
	opts := Options{VerifySignature: true, ServerKey: serverKey}

	repo := newRepo(order("ORD-1", domain.StatusPending))
	m := &fakeMetrics{}
	uc := NewUseCase(repo, noDedup{}, m, opts, logger.NewNop())

	bad := &Request{
		OrderReference:    "ORD-1",
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "50000.00",
		SignatureKey:      "deadbeef",
	}
	_, err := uc.Execute(context.Background(), bad)
	require.ErrorIs(t, err, ErrInvalidSignature)
	assert.Equal(t, domain.StatusPending, repo.status("ORD-1"))

	good := *bad
	good.SignatureKey = midtrans.Signature("ORD-1", "200", "50000.00", serverKey)
	resp, err := uc.Execute(context.Background(), &good)
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, resp.Outcome)
	assert.Equal(t, domain.StatusPaid, repo.status("ORD-1"))
}

func TestExecute_DedupShortCircuits(t *testing.T) {
	t.Parallel()

	repo := newRepo(order("ORD-1", domain.StatusPending))
	dedup := &memoryDedup{}
	uc := NewUseCase(repo, dedup, &fakeMetrics{}, Options{}, logger.NewNop())

	req := func() *Request { return &Request{OrderReference: "ORD-1", TransactionStatus: "settlement"} }

	_, err := uc.Execute(context.Background(), req())
	require.NoError(t, err)

	resp, err := uc.Execute(context.Background(), req())
	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicate, resp.Outcome)
	assert.Equal(t, 1, repo.updates)
}

func TestExecute_TransactionStatusIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	repo := newRepo(order("ORD-1", domain.StatusPending))
	dedup := &memoryDedup{}
	uc := NewUseCase(repo, dedup, &fakeMetrics{}, Options{}, logger.NewNop())

	req := &Request{OrderReference: "ORD-1", TransactionStatus: "  SETTLEMENT "}
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, resp.Outcome)
	assert.Equal(t, domain.StatusPaid, repo.status("ORD-1"))
	assert.Equal(t, "settlement", req.TransactionStatus)

	// повтор в другом регистре попадает в тот же ключ дедупликации
	_, ok := dedup.keys["ORD-1:settlement"]
	assert.True(t, ok)

	resp, err = uc.Execute(context.Background(), &Request{OrderReference: "ORD-1", TransactionStatus: "Settlement"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicate, resp.Outcome)
	assert.Equal(t, 1, repo.updates)
}

func TestExecute_DedupFailureFallsBackToStore(t *testing.T) {
	t.Parallel()

	repo := newRepo(order("ORD-1", domain.StatusPending))
	dedup := &memoryDedup{err: errors.New("redis down")}
	uc := NewUseCase(repo, dedup, &fakeMetrics{}, Options{}, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{OrderReference: "ORD-1", TransactionStatus: "cancel"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, resp.Outcome)
	assert.Equal(t, domain.StatusFailed, repo.status("ORD-1"))
}

func TestExecute_ConcurrentConflictingNotifications(t *testing.T) {
	t.Parallel()

	repo := newRepo(order("ORD-1", domain.StatusPending))
	uc := NewUseCase(repo, noDedup{}, &fakeMetrics{}, Options{}, logger.NewNop())

	statuses := []string{"settlement", "expire", "capture", "cancel", "settlement", "expire"}

	var wg sync.WaitGroup
	var mu sync.Mutex
	applied := 0
	for _, s := range statuses {
		wg.Add(1)
		go func(s string) {
			defer wg.Done()
			resp, err := uc.Execute(context.Background(), &Request{OrderReference: "ORD-1", TransactionStatus: s})
			if err != nil {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if resp.Outcome == OutcomeApplied {
				applied++
			}
		}(s)
	}
	wg.Wait()

	assert.Equal(t, 1, applied)
	assert.Equal(t, 1, repo.updates)
	assert.True(t, repo.status("ORD-1").IsTerminal())
}
