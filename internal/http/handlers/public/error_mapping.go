package public

import (
	"context"
	"errors"

	"github.com/jewelbridge/internal/http/response"
	"github.com/jewelbridge/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var authErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, key: "error.invalid_credentials"},
	{target: service.ErrInvalidRole, code: response.CodeBadRequest, key: "error.invalid_role"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.email_invalid"},
	{target: service.ErrPasswordRequired, code: response.CodeBadRequest, key: "error.password_required"},
	{target: service.ErrEmailTaken, code: response.CodeConflict, key: "error.email_taken"},
	{target: service.ErrSessionNotFound, code: response.CodeUnauthorized, key: "error.session_not_found"},
	{target: context.Canceled, code: response.CodeBadRequest, key: "error.request_timeout"},
	{target: context.DeadlineExceeded, code: response.CodeBadRequest, key: "error.request_timeout"},
}

var visitRequestErrorRules = []mappedHandlerError{
	{target: service.ErrSessionNotFound, code: response.CodeUnauthorized, key: "error.session_not_found"},
	{target: service.ErrVisitRequestNotFound, code: response.CodeNotFound, key: "error.visit_request_not_found"},
	{target: service.ErrVisitRequestStatusInvalid, code: response.CodeBadRequest, key: "error.visit_request_status_invalid"},
}

func respondLoginError(c *gin.Context, err error) {
	respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "error.login_failed")
}

func respondRegisterError(c *gin.Context, err error) {
	respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "error.register_failed")
}

func respondVisitRequestCreateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, visitRequestErrorRules, response.CodeInternal, "error.visit_request_create_failed")
}
