package types

// Response is what services hand to the `send` closure.
type Response struct {
	Code    int
	Message string
	Data    interface{}
	Error   error
	ErrCode string
}

// ResponseAPI is the JSON envelope written to clients.
type ResponseAPI struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}
