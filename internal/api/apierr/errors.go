package apierr

import (
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/mcoot/wordtiles/internal/model"
	"github.com/mcoot/wordtiles/internal/services/rules"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Rule    string `json:"rule,omitempty"` // The failing rule for rule rejections
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeNotPermitted        = "NOT_PERMITTED"
	CodeRuleViolation       = "RULE_VIOLATION"
	CodeGameNotFound        = "GAME_NOT_FOUND"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeGameFull            = "GAME_FULL"
	CodeAlreadyInGame       = "ALREADY_IN_GAME"
	CodeGameNotPending      = "GAME_NOT_PENDING"
	CodeInsufficientPlayers = "INSUFFICIENT_PLAYERS"
	CodeConcurrentUpdate    = "CONCURRENT_UPDATE"
	CodeTurnNotExpired      = "TURN_NOT_EXPIRED"
	CodeUnsupportedLanguage = "UNSUPPORTED_LANGUAGE"
	CodeInvalidTemplate     = "INVALID_TEMPLATE"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Rule rejections carry their own message and class
	if re, ok := rules.AsRejection(err); ok {
		if re.IsAuthorization() {
			return &httpError{http.StatusForbidden, APIError{CodeNotPermitted, re.Result.Message, re.Result.Rule}}
		}
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeRuleViolation, re.Result.Message, re.Result.Rule}}
	}

	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodeGameNotFound, Message: "Game not found"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodePlayerNotFound, Message: "Player not found"}}
	case errors.Is(err, model.ErrGameFull):
		return &httpError{http.StatusConflict, APIError{Code: CodeGameFull, Message: "Game already has two players"}}
	case errors.Is(err, model.ErrAlreadyInGame):
		return &httpError{http.StatusConflict, APIError{Code: CodeAlreadyInGame, Message: "Already in this game"}}
	case errors.Is(err, model.ErrGameNotPending):
		return &httpError{http.StatusConflict, APIError{Code: CodeGameNotPending, Message: "Game is not waiting for players"}}
	case errors.Is(err, model.ErrInsufficientPlayers):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeInsufficientPlayers, Message: "A game needs two distinct players"}}
	case errors.Is(err, model.ErrConcurrentUpdate):
		return &httpError{http.StatusConflict, APIError{Code: CodeConcurrentUpdate, Message: "Game was modified concurrently, retry"}}
	case errors.Is(err, model.ErrTurnNotExpired):
		return &httpError{http.StatusConflict, APIError{Code: CodeTurnNotExpired, Message: "Turn has not expired"}}
	case errors.Is(err, model.ErrUnsupportedLanguage):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeUnsupportedLanguage, Message: "Language is not supported"}}
	case errors.Is(err, model.ErrInvalidTemplate):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidTemplate, Message: "Board template is invalid"}}
	case errors.Is(err, model.ErrDictionaryNotLoaded):
		return &httpError{http.StatusServiceUnavailable, APIError{Code: CodeInternalError, Message: "Dictionary is not available"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthorized, Message: "Missing caller identity"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
}
