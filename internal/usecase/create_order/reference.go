package create_order

import (
	"strconv"
	"sync"
	"time"

	"github.com/wahidman/serverr/internal/domain"
)

// MillisReferenceGenerator выдаёт ORD-<unix ms>, строго возрастающие в пределах процесса
type MillisReferenceGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewReferenceGenerator создает генератор на системных часах
func NewReferenceGenerator() *MillisReferenceGenerator {
	return &MillisReferenceGenerator{now: time.Now}
}

// Next возвращает следующий номер заказа
// Если часы не ушли вперёд с прошлого вызова, используется last+1
func (g *MillisReferenceGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms

	return domain.OrderReferencePrefix + strconv.FormatInt(ms, 10)
}
