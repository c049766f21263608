package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrInvalidRequest
	ErrNoToken
	ErrInvalidToken
	ErrSellerOnly
	ErrNotOwner
	ErrProductNotFound
	ErrUserNotFound
	ErrEmailExists
	ErrInvalidCredentials
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:            "success",
	ErrInternal:           "internal server error",
	ErrInvalidRequest:     "invalid request",
	ErrNoToken:            "no token, authorization denied",
	ErrInvalidToken:       "token is not valid",
	ErrSellerOnly:         "access denied, sellers only",
	ErrNotOwner:           "not authorized to modify this product",
	ErrProductNotFound:    "product not found",
	ErrUserNotFound:       "user not found",
	ErrEmailExists:        "email already registered",
	ErrInvalidCredentials: "invalid email or password",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:            http.StatusOK,
	ErrInternal:           http.StatusInternalServerError,
	ErrInvalidRequest:     http.StatusBadRequest,
	ErrNoToken:            http.StatusUnauthorized,
	ErrInvalidToken:       http.StatusUnauthorized,
	ErrSellerOnly:         http.StatusForbidden,
	ErrNotOwner:           http.StatusForbidden,
	ErrProductNotFound:    http.StatusNotFound,
	ErrUserNotFound:       http.StatusNotFound,
	ErrEmailExists:        http.StatusConflict,
	ErrInvalidCredentials: http.StatusUnauthorized,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:            "0000",
	ErrInternal:           "0001",
	ErrInvalidRequest:     "0002",
	ErrNoToken:            "0003",
	ErrInvalidToken:       "0004",
	ErrSellerOnly:         "0005",
	ErrNotOwner:           "0006",
	ErrProductNotFound:    "0007",
	ErrUserNotFound:       "0008",
	ErrEmailExists:        "0009",
	ErrInvalidCredentials: "0010",
}
