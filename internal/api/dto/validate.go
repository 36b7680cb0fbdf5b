package dto

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/RoyceAzure/lab/kitchen/internal/pkg/apperr"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError 單一欄位驗證錯誤, 放在錯誤回應的details
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// 錯誤訊息使用json欄位名稱
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Decode 解析json body並驗證
//
// 錯誤:
//   - BadRequestCode 400: body 不是合法json
//   - ValidationCode 460: 欄位驗證失敗, details 為 []FieldError
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.New(apperr.BadRequestCode, "request body is required")
		}
		return apperr.Wrap(apperr.BadRequestCode, "invalid request body", err)
	}
	return Validate(dst)
}

// Validate 只做struct tag驗證, 給query參數組出的dto使用
func Validate(dst any) error {
	err := getValidator().Struct(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Wrap(apperr.BadRequestCode, "invalid request", err)
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fieldPath(fe), Message: fieldMessage(fe)})
	}
	return apperr.New(apperr.ValidationCode, "validation failed").WithDetails(fields)
}

// fieldPath 只保留json名稱, 去掉struct名稱與嵌入欄位, ex: AdminRegisterRequest.RegisterRequest.email => email
func fieldPath(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	kept := parts[:0]
	for _, p := range parts {
		if p != "" && unicode.IsUpper(rune(p[0])) {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return fe.Field()
	}
	return strings.Join(kept, ".")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "len":
		return "must be exactly " + fe.Param() + " characters"
	case "numeric":
		return "must contain digits only"
	case "uuid":
		return "must be a valid uuid"
	case "e164", "phone":
		return "must be a valid phone number"
	case "gtfield":
		return "must be after " + fe.Param()
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}
