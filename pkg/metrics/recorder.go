package metrics

// Recorder фиксирует бизнес-события в метриках
// Нулевой указатель безопасен: при выключенных метриках вызовы ничего не делают
type Recorder struct {
	m *Metrics
}

// NewRecorder создает Recorder поверх набора метрик (m может быть nil)
func NewRecorder(m *Metrics) *Recorder {
	return &Recorder{m: m}
}

// OrderCreated увеличивает счетчик созданных заказов
func (r *Recorder) OrderCreated() {
	if r == nil || r.m == nil {
		return
	}
	r.m.OrdersCreated.Inc()
}

// SlotConflict увеличивает счетчик конфликтов слотов
func (r *Recorder) SlotConflict() {
	if r == nil || r.m == nil {
		return
	}
	r.m.SlotConflicts.Inc()
}

// Notification фиксирует результат обработки уведомления о платеже
func (r *Recorder) Notification(result string) {
	if r == nil || r.m == nil {
		return
	}
	r.m.Notifications.WithLabelValues(result).Inc()
}

// PaymentSession фиксирует результат создания платежной сессии
func (r *Recorder) PaymentSession(result string) {
	if r == nil || r.m == nil {
		return
	}
	r.m.PaymentSessions.WithLabelValues(result).Inc()
}
