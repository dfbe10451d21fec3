package errors

import (
	"net/http"

	"veluna/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// Is matches errors by business code so that WithDetails copies still
// satisfy errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Catalog errors
	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"Mahsulot topilmadi",
		"",
	)

	ErrOutOfStock = NewBaseError(
		http.StatusConflict,
		"OUT_OF_STOCK",
		"Mahsulot omborda qolmagan",
		"",
	)

	// Cart and checkout errors
	ErrCartItemNotFound = NewBaseError(
		http.StatusNotFound,
		"CART_ITEM_NOT_FOUND",
		"Savatchada bunday mahsulot yo'q",
		"",
	)

	ErrCartEmpty = NewBaseError(
		http.StatusBadRequest,
		"CART_EMPTY",
		"Savatcha bo'sh",
		"",
	)

	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"Buyurtma topilmadi",
		"",
	)

	ErrInvalidOrderStatus = NewBaseError(
		http.StatusBadRequest,
		"INVALID_ORDER_STATUS",
		"Buyurtma holati noto'g'ri",
		"",
	)

	// Marketing errors
	ErrPromoCodeNotFound = NewBaseError(
		http.StatusNotFound,
		"PROMO_CODE_NOT_FOUND",
		"Promokod topilmadi",
		"",
	)

	ErrPromoCodeInactive = NewBaseError(
		http.StatusBadRequest,
		"PROMO_CODE_INACTIVE",
		"Promokod faol emas",
		"",
	)

	ErrPromoCodeExists = NewBaseError(
		http.StatusConflict,
		"PROMO_CODE_EXISTS",
		"Bunday promokod allaqachon mavjud",
		"",
	)

	// Customer errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"Foydalanuvchi topilmadi",
		"",
	)

	ErrNotificationNotFound = NewBaseError(
		http.StatusNotFound,
		"NOTIFICATION_NOT_FOUND",
		"Bildirishnoma topilmadi",
		"",
	)

	// Authentication-related errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Email yoki parol noto'g'ri",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Avtorizatsiya talab qilinadi",
		"",
	)

	ErrAdminExists = NewBaseError(
		http.StatusConflict,
		"ADMIN_EXISTS",
		"Bu email bilan administrator mavjud",
		"",
	)

	ErrAdminInactive = NewBaseError(
		http.StatusForbidden,
		"ADMIN_INACTIVE",
		"Administrator hisobi o'chirilgan",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Parolni qayta ishlashda xatolik",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Kiritilgan ma'lumotlar noto'g'ri",
		"",
	)

	ErrImportFailed = NewBaseError(
		http.StatusBadRequest,
		"IMPORT_FAILED",
		"Faylni import qilib bo'lmadi",
		"",
	)

	// Storage errors
	ErrStorageWriteFailed = NewBaseError(
		http.StatusInternalServerError,
		"STORAGE_WRITE_FAILED",
		"Ma'lumotlarni saqlab bo'lmadi",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Tizimda ichki xatolik",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Ruxsat berilmagan",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Ma'lumot topilmadi",
		"",
	)
)

// StorageWriteError wraps a backend write failure, implementing the AppError interface.
// Callers always return it.
type StorageWriteError struct {
	err error
	key string
}

// NewStorageWriteError creates a storage write error for key
func NewStorageWriteError(err error, key string) AppError {
	return &StorageWriteError{
		err: err,
		key: key,
	}
}

// Error implements the error interface
func (e *StorageWriteError) Error() string {
	return errors.Wrapf(e.err, "storage write failed for %s", e.key).Error()
}

// Unwrap exposes the backend error
func (e *StorageWriteError) Unwrap() error {
	return e.err
}

// Is lets errors.Is(err, ErrStorageWriteFailed) match
func (e *StorageWriteError) Is(target error) bool {
	return target == ErrStorageWriteFailed
}

// HTTPCode returns the HTTP status code
func (e *StorageWriteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *StorageWriteError) ErrorCode() string {
	return ErrStorageWriteFailed.ErrorCode()
}

// Message returns the user-friendly error message
func (e *StorageWriteError) Message() string {
	return ErrStorageWriteFailed.Message()
}

// Details returns detailed error information
func (e *StorageWriteError) Details() string {
	return e.key
}

// Key returns the storage key that failed to persist
func (e *StorageWriteError) Key() string {
	return e.key
}
