package userservice

// Роли пользователей в системе зала
const (
	RoleMember       = "member"
	RoleCoach        = "coach"
	RoleReceptionist = "receptionist"
	RoleAdmin        = "admin"
)

// UserSummary модель пользователя из UserService
type UserSummary struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"` // member, coach, receptionist, admin
	IsActive bool   `json:"is_active"`
}

// IsMember возвращает true для обычного члена зала
// Для членов зала действует ограничение на самостоятельное бронирование
// тренажёров во время тренерской сессии
func (u *UserSummary) IsMember() bool {
	return u.Role == RoleMember
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
