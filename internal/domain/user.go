package domain

import "time"

// User пользователь, от имени которого создаются бронирования.
// Управление пользователями вне зоны ответственности сервиса —
// здесь нужны только идентификатор и факт существования.
type User struct {
	ID    int64
	Name  string
	Email string

	CreatedAt time.Time
}
