package httpx

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without internal err",
			err:  NewAppError(http.StatusBadRequest, CodeParamMissing, "param missing", nil),
			want: "code=2001, message=param missing",
		},
		{
			name: "error with internal err",
			err:  NewAppError(http.StatusInternalServerError, CodeDatabaseError, "lookup failed", errors.New("db connection failed")),
			want: "code=5002, message=lookup failed, err=db connection failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	internalErr := errors.New("database connection failed")
	err := ErrDatabaseError("", internalErr)

	if !errors.Is(err, internalErr) {
		t.Error("Expected internal error to be reachable through errors.Is")
	}
	if err.Message != "database error" {
		t.Errorf("Expected default message 'database error', got '%s'", err.Message)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     *AppError
		status  int
		code    int
		message string
	}{
		{"unauthorized", ErrUnauthorized(""), http.StatusUnauthorized, CodeUnauthorized, "unauthorized"},
		{"invalid token", ErrInvalidToken(""), http.StatusUnauthorized, CodeInvalidToken, "invalid token"},
		{"token expired", ErrTokenExpired(""), http.StatusUnauthorized, CodeTokenExpired, "token expired"},
		{"param missing", ErrParamMissing("field 'source' is required"), http.StatusBadRequest, CodeParamMissing, "field 'source' is required"},
		{"param invalid", ErrParamInvalid(""), http.StatusBadRequest, CodeParamInvalid, "parameter format error"},
		{"not found", ErrNotFound(""), http.StatusNotFound, CodeNotFound, "resource not found"},
		{"already exists", ErrAlreadyExists("source exists"), http.StatusConflict, CodeAlreadyExists, "source exists"},
		{"redirect loop", ErrRedirectLoop(""), http.StatusConflict, CodeRedirectLoop, "redirect would create a loop"},
		{"internal", ErrInternalError("", nil), http.StatusInternalServerError, CodeInternalError, "internal error"},
		{"external", ErrExternalError("", nil), http.StatusBadGateway, CodeExternalError, "external dependency failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.HTTPStatus != tt.status {
				t.Errorf("Expected HTTP status %d, got %d", tt.status, tt.err.HTTPStatus)
			}
			if tt.err.Code != tt.code {
				t.Errorf("Expected code %d, got %d", tt.code, tt.err.Code)
			}
			if tt.err.Message != tt.message {
				t.Errorf("Expected message '%s', got '%s'", tt.message, tt.err.Message)
			}
		})
	}
}

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		code int
		min  int
		max  int
	}{
		{"CodeSuccess", CodeSuccess, 0, 0},
		{"CodeUnauthorized", CodeUnauthorized, 1000, 1099},
		{"CodeInvalidToken", CodeInvalidToken, 1000, 1099},
		{"CodeTokenExpired", CodeTokenExpired, 1000, 1099},
		{"CodeParamMissing", CodeParamMissing, 2000, 2099},
		{"CodeParamInvalid", CodeParamInvalid, 2000, 2099},
		{"CodeNotFound", CodeNotFound, 3000, 3999},
		{"CodeAlreadyExists", CodeAlreadyExists, 3000, 3999},
		{"CodeRedirectLoop", CodeRedirectLoop, 3000, 3999},
		{"CodeInternalError", CodeInternalError, 5000, 5999},
		{"CodeDatabaseError", CodeDatabaseError, 5000, 5999},
		{"CodeExternalError", CodeExternalError, 5000, 5999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code < tt.min || tt.code > tt.max {
				t.Errorf("%s = %d, expected to be in range [%d, %d]", tt.name, tt.code, tt.min, tt.max)
			}
		})
	}
}
