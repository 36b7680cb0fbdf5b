package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrCode int

const (
	BadRequestCode      ErrCode = 400
	UnauthenticatedCode ErrCode = 401
	ForbiddenCode       ErrCode = 403
	NotFoundCode        ErrCode = 404
	ConflictCode        ErrCode = 409
	TooManyRequestsCode ErrCode = 429
	InternalErrorCode   ErrCode = 500

	// 業務錯誤
	ValidationCode              ErrCode = 460
	UnavailableCode             ErrCode = 461
	CartEmptyCode               ErrCode = 462
	InvalidPromoCode            ErrCode = 463
	PromoExhaustedCode          ErrCode = 464
	InvalidStatusTransitionCode ErrCode = 465
	InvalidOrderStatusCode      ErrCode = 466
)

var ErrStrMap = map[ErrCode]string{
	BadRequestCode:              "BAD_REQUEST",
	UnauthenticatedCode:         "UNAUTHENTICATED",
	ForbiddenCode:               "FORBIDDEN",
	NotFoundCode:                "RESOURCE_NOT_FOUND",
	ConflictCode:                "CONFLICT",
	TooManyRequestsCode:         "TOO_MANY_REQUESTS",
	InternalErrorCode:           "INTERNAL_ERROR",
	ValidationCode:              "VALIDATION_ERROR",
	UnavailableCode:             "RESOURCE_UNAVAILABLE",
	CartEmptyCode:               "CART_EMPTY",
	InvalidPromoCode:            "INVALID_PROMO_CODE",
	PromoExhaustedCode:          "PROMO_CODE_EXHAUSTED",
	InvalidStatusTransitionCode: "INVALID_STATUS_TRANSITION",
	InvalidOrderStatusCode:      "INVALID_ORDER_STATUS",
}

func (c ErrCode) String() string {
	if s, ok := ErrStrMap[c]; ok {
		return s
	}
	return ErrStrMap[InternalErrorCode]
}

// HTTPStatus 業務錯誤碼對應的http狀態
func (c ErrCode) HTTPStatus() int {
	switch c {
	case ValidationCode, UnavailableCode, CartEmptyCode, InvalidPromoCode,
		PromoExhaustedCode, InvalidStatusTransitionCode, InvalidOrderStatusCode:
		return http.StatusBadRequest
	case BadRequestCode, UnauthenticatedCode, ForbiddenCode, NotFoundCode, ConflictCode, TooManyRequestsCode:
		return int(c)
	default:
		return http.StatusInternalServerError
	}
}

type AppError struct {
	Code ErrCode
	Msg  string
	Err  error
	// Details 會原樣回給client, ex: 欄位驗證錯誤
	Details any
}

// WithDetails 附加回應給client的細節
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrCode, msg string) *AppError {
	return &AppError{Code: code, Msg: msg}
}

func Newf(code ErrCode, format string, args ...any) *AppError {
	return &AppError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap 保留底層錯誤, 回應給client只會看到msg
func Wrap(code ErrCode, msg string, err error) *AppError {
	return &AppError{Code: code, Msg: msg, Err: err}
}

func Internal(err error) *AppError {
	return Wrap(InternalErrorCode, "internal server error", err)
}

// CodeOf 取出錯誤碼, 非AppError一律視為500
func CodeOf(err error) ErrCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return InternalErrorCode
}

func Is(err error, code ErrCode) bool {
	return err != nil && CodeOf(err) == code
}
