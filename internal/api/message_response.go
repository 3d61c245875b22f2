package api

// MessageResponse 成功或錯誤時的訊息回應
// swagger:model api.MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"Post created successfully"`
}

// ErrorResponse 全域錯誤響應模型
// swagger:model api.ErrorResponse
type ErrorResponse = MessageResponse
