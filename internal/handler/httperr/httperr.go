package httperr

import (
	"github.com/gin-gonic/gin"
)

// Codes shared by every handler. Usecase-specific codes live next to the
// usecase error table in the api package.
const (
	CodeInvalidRequest = "invalid_request"
	CodeUnauthorized   = "unauthorized"
	CodeInternal       = "internal"
)

// Response is the error envelope: {"error": {"code", "message"}}.
type Response struct {
	Status int  `json:"-"`
	Error  Body `json:"error"`
}

type Body struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewResponse(status int, code, msg string) Response {
	return Response{Status: status, Error: Body{Code: code, Message: msg}}
}

// Abort writes the public envelope and keeps err on the gin context for the
// logging middleware. err must be non-nil.
func Abort(c *gin.Context, status int, code string, err error, msg string) {
	if err == nil {
		panic("httperr.Abort: err cannot be nil")
	}

	resp := NewResponse(status, code, msg)
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
