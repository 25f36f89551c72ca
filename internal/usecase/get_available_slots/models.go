package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	Date            string // Дата в часовом поясе бизнеса, YYYY-MM-DD
	DurationMinutes int    // 0 = длительность по умолчанию
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            string // Дата, на которую запрашивались слоты
	Timezone        string // Часовой пояс бизнеса
	DurationMinutes int
	Slots           []Slot
}

// Slot модель временного слота
type Slot struct {
	Start      time.Time // UTC
	End        time.Time // UTC
	StartLocal string    // HH:MM в часовом поясе бизнеса
}
