package error

import "net/http"

type ErrorCode string

const (
	UnknownError        ErrorCode = "unknown_error"
	InternalServerError ErrorCode = "internal_server_error"
	BadRequest          ErrorCode = "bad_request"
	ValidationFailed    ErrorCode = "validation_failed"
	InvalidCredentials  ErrorCode = "invalid_credentials"
	NotAuthenticated    ErrorCode = "not_authenticated"
	InvalidAccessToken  ErrorCode = "invalid_access_token"
	ExpiredAccessToken  ErrorCode = "expired_access_token"
	WeakPassword        ErrorCode = "weak_password"
	EmailConflict       ErrorCode = "email_conflict"
	UsernameConflict    ErrorCode = "username_conflict"
	RecipeNotFound      ErrorCode = "recipe_not_found"
	RecipeNotOwned      ErrorCode = "recipe_not_owned"
	IngredientNotFound  ErrorCode = "ingredient_not_found"
	TagNotFound         ErrorCode = "tag_not_found"
	UserNotFound        ErrorCode = "user_not_found"
	AlreadyFavorited    ErrorCode = "already_favorited"
	AlreadyInCart       ErrorCode = "already_in_shopping_cart"
	AlreadySubscribed   ErrorCode = "already_subscribed"
	SelfSubscription    ErrorCode = "self_subscription"
	NotFavorited        ErrorCode = "not_favorited"
	NotInCart           ErrorCode = "not_in_shopping_cart"
	NotSubscribed       ErrorCode = "not_subscribed"
)

var errorCodeToStatusCode = map[ErrorCode]int{
	UnknownError:        0, // No error code - unknown
	InternalServerError: http.StatusInternalServerError,
	BadRequest:          http.StatusBadRequest,
	ValidationFailed:    http.StatusBadRequest,
	InvalidCredentials:  http.StatusBadRequest,
	NotAuthenticated:    http.StatusUnauthorized,
	InvalidAccessToken:  http.StatusUnauthorized,
	ExpiredAccessToken:  http.StatusUnauthorized,
	WeakPassword:        http.StatusBadRequest,
	EmailConflict:       http.StatusBadRequest,
	UsernameConflict:    http.StatusBadRequest,
	RecipeNotFound:      http.StatusNotFound,
	RecipeNotOwned:      http.StatusForbidden,
	IngredientNotFound:  http.StatusNotFound,
	TagNotFound:         http.StatusNotFound,
	UserNotFound:        http.StatusNotFound,
	AlreadyFavorited:    http.StatusBadRequest,
	AlreadyInCart:       http.StatusBadRequest,
	AlreadySubscribed:   http.StatusBadRequest,
	SelfSubscription:    http.StatusBadRequest,
	NotFavorited:        http.StatusNotFound,
	NotInCart:           http.StatusNotFound,
	NotSubscribed:       http.StatusNotFound,
}

func (ec ErrorCode) StatusCode() int {
	return errorCodeToStatusCode[ec]
}

func (ec ErrorCode) String() string {
	return string(ec)
}
