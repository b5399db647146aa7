package get_available_times

// Request модель запроса свободных слотов
type Request struct {
	Date string // YYYY-MM-DD
}

// Response модель ответа со списком свободных слотов в порядке каталога
type Response struct {
	Date           string
	AvailableTimes []string
}

// Options настройки расчёта доступности
type Options struct {
	// ReleaseFailed не считать FAILED заказы занятыми
	ReleaseFailed bool
}
