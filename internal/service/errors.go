package service

import "errors"

var (
	ErrNotFound                  = errors.New("not found")
	ErrShopNotFound              = errors.New("shop not found")
	ErrProductNotFound           = errors.New("product not found")
	ErrVisitRequestNotFound      = errors.New("visit request not found")
	ErrVisitRequestStatusInvalid = errors.New("visit request status transition not allowed")
	ErrVisitRequestCreateFailed  = errors.New("visit request create failed")
	ErrCatalogNotLoaded          = errors.New("catalog not loaded")
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrInvalidRole               = errors.New("invalid role")
	ErrInvalidEmail              = errors.New("invalid email")
	ErrPasswordRequired          = errors.New("password required")
	ErrEmailTaken                = errors.New("email already registered")
	ErrSessionNotFound           = errors.New("session not found")
	ErrInvalidToken              = errors.New("invalid session token")
	ErrForbiddenShop             = errors.New("shop not accessible")
	ErrAuthRequired              = errors.New("authentication required")
)
