package get_available_times

// AvailableTimesResponse ответ со свободными слотами
type AvailableTimesResponse struct {
	Success        bool     `json:"success"`
	AvailableTimes []string `json:"availableTimes"`
}
