package dto

type RevertRequest struct {
	TransactionID string `json:"transaction_id"`
}

type PendingRevert struct {
	Index       int    `json:"index"`
	Username    string `json:"username"`
	Description string `json:"description"`
}

type Restock struct {
	Denomination int `json:"denomination"`
	Count        int `json:"count"`
}

type Stock struct {
	Fifties  int `json:"fifties"`
	Twenties int `json:"twenties"`
	Tens     int `json:"tens"`
	Fives    int `json:"fives"`
	Total    int `json:"total"`
}
