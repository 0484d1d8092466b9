package errors

import (
	"errors"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeNotFound,
				Message: "resource not found",
			},
			want: "resource not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeInternal,
				Message: "failed to process",
				Cause:   errors.New("underlying error"),
			},
			want: "failed to process: underlying error",
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
	cause := errors.New("underlying error")
	err := &AppError{
		Code:    ErrCodeInternal,
		Message: "wrapped error",
		Cause:   cause,
	}

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("AppError.Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantCode ErrorCode
		wantMsg  string
	}{
		{"NotFound", NotFound("job not found"), ErrCodeNotFound, "job not found"},
		{"NotFoundf", NotFoundf("job %s not found", "abc"), ErrCodeNotFound, "job abc not found"},
		{"Conflict", Conflict("user already exists"), ErrCodeConflict, "user already exists"},
		{"Validation", Validation("invalid input"), ErrCodeValidation, "invalid input"},
		{"Validationf", Validationf("bad %s", "name"), ErrCodeValidation, "bad name"},
		{"Unauthorized", Unauthorized("invalid token"), ErrCodeUnauthorized, "invalid token"},
		{"UpstreamUnavailable", UpstreamUnavailable("auth down"), ErrCodeUpstreamUnavailable, "auth down"},
		{"Internal", Internal("boom"), ErrCodeInternal, "boom"},
		{"Internalf", Internalf("boom %d", 2), ErrCodeInternal, "boom 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %v, want %v", tt.err.Code, tt.wantCode)
			}
			if tt.err.Message != tt.wantMsg {
				t.Errorf("Message = %v, want %v", tt.err.Message, tt.wantMsg)
			}
		})
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("email", "invalid email format")
	if err.Code != ErrCodeValidation {
		t.Errorf("ValidationField().Code = %v, want %v", err.Code, ErrCodeValidation)
	}
	if err.Field != "email" {
		t.Errorf("ValidationField().Field = %v, want %v", err.Field, "email")
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(cause, ErrCodeUpstreamUnavailable, "auth service unreachable")

	if err.Code != ErrCodeUpstreamUnavailable {
		t.Errorf("Wrap().Code = %v, want %v", err.Code, ErrCodeUpstreamUnavailable)
	}
	if !errors.Is(err, cause) {
		t.Errorf("Wrap() should unwrap to its cause")
	}
}

func TestWrap_NilError(t *testing.T) {
	if err := Wrap(nil, ErrCodeInternal, "wrapped error"); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		pred func(error) bool
		err  error
		want bool
	}{
		{"IsNotFound match", IsNotFound, NotFound("x"), true},
		{"IsNotFound mismatch", IsNotFound, Conflict("x"), false},
		{"IsConflict match", IsConflict, Conflict("x"), true},
		{"IsValidation match", IsValidation, ValidationField("f", "x"), true},
		{"IsUnauthorized match", IsUnauthorized, Unauthorized("x"), true},
		{"IsUnauthorized wrapped", IsUnauthorized, Wrap(Unauthorized("x"), ErrCodeInternal, "y"), false},
		{"IsUpstreamUnavailable match", IsUpstreamUnavailable, UpstreamUnavailable("x"), true},
		{"IsInternal match", IsInternal, Internal("x"), true},
		{"standard error", IsNotFound, errors.New("plain"), false},
		{"nil error", IsNotFound, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pred(tt.err); got != tt.want {
				t.Errorf("predicate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if code := GetCode(NotFound("x")); code != ErrCodeNotFound {
		t.Errorf("GetCode() = %v, want %v", code, ErrCodeNotFound)
	}
	if code := GetCode(errors.New("plain")); code != "" {
		t.Errorf("GetCode(plain) = %v, want empty", code)
	}
	if code := GetCode(nil); code != "" {
		t.Errorf("GetCode(nil) = %v, want empty", code)
	}
}

func TestGetField(t *testing.T) {
	if field := GetField(ValidationField("email", "x")); field != "email" {
		t.Errorf("GetField() = %v, want email", field)
	}
	if field := GetField(errors.New("plain")); field != "" {
		t.Errorf("GetField(plain) = %v, want empty", field)
	}
}
