package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"authgate/internal/delivery/http/validator"
	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"
	mockUsecase "authgate/internal/mocks/usecase"
	"authgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestAuthHandler_Signup(t *testing.T) {
	uc := mockUsecase.NewMockAuthUsecase(t)
	user := entity.PublicUser{ID: uuid.New(), Name: "Ann", Email: "ann@x.com"}
	uc.EXPECT().
		Register(mock.Anything, &usecase.RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "pw123"}).
		Return(&usecase.RegisterOutput{User: user}, nil)

	c, rec := newJSONContext(http.MethodPost, "/signup", `{"name":"Ann","email":"ann@x.com","password":"pw123"}`)

	require.NoError(t, NewAuthHandler(uc).Signup(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, "User registered successfully", body.Message)
	assert.NotContains(t, rec.Body.String(), "pw123")
}

func TestAuthHandler_Signup_InvalidInput(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "missing password", body: `{"name":"Ann","email":"ann@x.com"}`},
		{name: "bad email", body: `{"name":"Ann","email":"ann","password":"pw123"}`},
		{name: "password over bcrypt limit", body: `{"name":"Ann","email":"ann@x.com","password":"` + strings.Repeat("p", 73) + `"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc := mockUsecase.NewMockAuthUsecase(t)
			c, _ := newJSONContext(http.MethodPost, "/signup", tc.body)

			err := NewAuthHandler(uc).Signup(c)

			assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
			uc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
		})
	}
}

func TestAuthHandler_Signup_MalformedBody(t *testing.T) {
	uc := mockUsecase.NewMockAuthUsecase(t)
	c, rec := newJSONContext(http.MethodPost, "/signup", `{"name":`)

	require.NoError(t, NewAuthHandler(uc).Signup(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
}

func TestAuthHandler_Signup_PropagatesWorkflowError(t *testing.T) {
	uc := mockUsecase.NewMockAuthUsecase(t)
	uc.EXPECT().Register(mock.Anything, mock.Anything).Return(nil, domainerrors.ErrAccountAlreadyExists)

	c, _ := newJSONContext(http.MethodPost, "/signup", `{"name":"Ann","email":"ann@x.com","password":"pw123"}`)

	err := NewAuthHandler(uc).Signup(c)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountAlreadyExists))
}

func TestAuthHandler_Login(t *testing.T) {
	uc := mockUsecase.NewMockAuthUsecase(t)
	user := entity.PublicUser{ID: uuid.New(), Name: "Ann", Email: "ann@x.com"}
	uc.EXPECT().
		Authenticate(mock.Anything, &usecase.AuthenticateInput{Email: "ann@x.com", Password: "pw123"}).
		Return(&usecase.AuthenticateOutput{Token: "signed.token", User: user}, nil)

	c, rec := newJSONContext(http.MethodPost, "/login", `{"email":"ann@x.com","password":"pw123"}`)

	require.NoError(t, NewAuthHandler(uc).Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "Login successful", body.Message)

	var data loginResponse
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.Equal(t, "signed.token", data.Token)
	assert.Equal(t, user, data.User)
}

func TestAuthHandler_Profile_RequiresPrincipal(t *testing.T) {
	uc := mockUsecase.NewMockAuthUsecase(t)
	c, _ := newJSONContext(http.MethodGet, "/profile", "")

	err := NewAuthHandler(uc).Profile(c)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))

	err = NewAuthHandler(uc).Account(c)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}

func TestHealthCheck(t *testing.T) {
	c, rec := newJSONContext(http.MethodGet, "/health", "")

	require.NoError(t, HealthCheck(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
