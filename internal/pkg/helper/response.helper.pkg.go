package helper

import (
	types "delegasi-pay/internal/common/type"
	"delegasi-pay/internal/pkg/logger"
	"net/http"
)

// ParseResponse fills defaults on a service response before it is sent.
func ParseResponse(r *types.Response) *types.Response {
	if r.Code == 0 {
		r.Code = http.StatusOK
		if r.Error != nil {
			r.Code = http.StatusInternalServerError
		}
	}
	if r.Message == "" {
		r.Message = http.StatusText(r.Code)
	}
	if r.Error != nil && r.Code >= http.StatusInternalServerError {
		logger.Error.Printf("%d %s: %v", r.Code, r.Message, r.Error)
	}
	return r
}

// ToResponseAPI converts a service response into the wire envelope.
func ToResponseAPI(r *types.Response) types.ResponseAPI {
	res := types.ResponseAPI{
		Status:  r.Code,
		Message: r.Message,
		Data:    r.Data,
		Code:    r.ErrCode,
	}
	if r.Error != nil {
		res.Error = r.Error.Error()
	}
	return res
}
