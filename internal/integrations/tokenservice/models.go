package tokenservice

// Типы транзакций токен-леджера
const (
	TransactionDeduction = "deduction"
	TransactionRefund    = "refund"
)

// Transaction запись транзакции в токен-леджере
// Amount отрицательный для списания, положительный для возврата
type Transaction struct {
	Amount      int    `json:"amount"`
	Type        string `json:"type"`
	Description string `json:"description"`
}
