package adaptor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"flight-booking/internal/dto/request"
	"flight-booking/internal/dto/response"
	"flight-booking/internal/usecase"
	"flight-booking/pkg/middleware"
	"flight-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &MockAuthService{}
	token := uuid.NewString()
	svc.On("Login", mock.Anything, &request.LoginRequest{Email: "admin@example.com", Password: "secret123"}).
		Return(&response.AuthResponse{Token: token, ExpiresAt: time.Now().Add(time.Hour)}, nil)
	h := NewAuthHandler(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"email":"admin@example.com","password":"secret123"}`))
	h.Login(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Equal(t, token, cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestAuthHandler_Login_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"bad json", `{`, nil, http.StatusBadRequest},
		{"invalid fields", `{"email":"nope","password":"1"}`, nil, http.StatusBadRequest},
		{"wrong password", `{"email":"a@example.com","password":"secret123"}`, usecase.ErrInvalidCredentials, http.StatusUnauthorized},
		{"disabled", `{"email":"a@example.com","password":"secret123"}`, usecase.ErrAccountDisabled, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockAuthService{}
			if tt.err != nil {
				svc.On("Login", mock.Anything, mock.Anything).Return(nil, tt.err)
			}
			h := NewAuthHandler(svc, zap.NewNop())

			rec := httptest.NewRecorder()
			h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(tt.body)))

			assert.Equal(t, tt.want, rec.Code)
			assert.Nil(t, sessionCookie(rec))
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := &MockAuthService{}
	svc.On("Logout", mock.Anything, "tok").Return(nil)
	h := NewAuthHandler(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req = req.WithContext(utils.SetTokenContext(context.Background(), "tok"))
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	svc.AssertExpectations(t)
}

func TestAuthHandler_LoginForm(t *testing.T) {
	svc := &MockAuthService{}
	svc.On("Login", mock.Anything, &request.LoginRequest{Email: "admin@example.com", Password: "secret123"}).
		Return(&response.AuthResponse{Token: "tok", ExpiresAt: time.Now().Add(time.Hour)}, nil)
	svc.On("Login", mock.Anything, &request.LoginRequest{Email: "admin@example.com", Password: "badpassword"}).
		Return(nil, usecase.ErrInvalidCredentials)
	h := NewAuthHandler(svc, zap.NewNop())

	post := func(password string) *httptest.ResponseRecorder {
		form := url.Values{"email": {"admin@example.com"}, "password": {password}}
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		h.LoginForm(rec, req)
		return rec
	}

	rec := post("secret123")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/card-validations", rec.Header().Get("Location"))
	assert.NotNil(t, sessionCookie(rec))

	rec = post("badpassword")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
	assert.Contains(t, rec.Body.String(), `value="admin@example.com"`)
}

func TestAuthHandler_LoginPage(t *testing.T) {
	h := NewAuthHandler(&MockAuthService{}, zap.NewNop())

	rec := httptest.NewRecorder()
	h.LoginPage(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `action="/login"`)
}

func TestAuthHandler_LogoutForm(t *testing.T) {
	svc := &MockAuthService{}
	svc.On("Logout", mock.Anything, "tok").Return(nil)
	h := NewAuthHandler(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req = req.WithContext(utils.SetTokenContext(context.Background(), "tok"))
	rec := httptest.NewRecorder()
	h.LogoutForm(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	svc.AssertExpectations(t)
}
