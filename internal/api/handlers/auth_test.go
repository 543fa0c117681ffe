package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/iris/movie-favorites-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

func TestAuthHandler_Register(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		request        map[string]string
		setup          func()
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "successful registration",
			request: map[string]string{
				"username": "alice",
				"email":    "alice@x.com",
				"password": "pw123",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result userResponse
				testutil.AssertJSONResponse(t, resp, &result)
				assert.Equal(t, "alice", result.Username)
				assert.Equal(t, "alice@x.com", result.Email)
				assert.NotEmpty(t, result.ID)
			},
		},
		{
			name: "response never contains password material",
			request: map[string]string{
				"username": "hashcheck",
				"email":    "hashcheck@example.com",
				"password": "supersecret",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *http.Response) {
				body := testutil.ReadBody(t, resp)
				assert.NotContains(t, body, "supersecret")
				assert.NotContains(t, body, "password")
			},
		},
		{
			name: "username too short",
			request: map[string]string{
				"username": "ab",
				"email":    "ab@example.com",
				"password": "pw123",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "username too long",
			request: map[string]string{
				"username": strings.Repeat("a", 51),
				"email":    "long@example.com",
				"password": "pw123",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "invalid email",
			request: map[string]string{
				"username": "validname",
				"email":    "not-an-email",
				"password": "pw123",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing password",
			request: map[string]string{
				"username": "validname",
				"email":    "valid@example.com",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate username",
			request: map[string]string{
				"username": "existinguser",
				"email":    "unused@example.com",
				"password": "pw123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithUsername("existinguser").
					Build(t, ts.DB.DB)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "duplicate email",
			request: map[string]string{
				"username": "unusedname",
				"email":    "taken@example.com",
				"password": "pw123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("taken@example.com").
					Build(t, ts.DB.DB)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.DB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			body, _ := json.Marshal(tt.request)
			resp, err := http.Post(ts.APIURL("/users/register"), "application/json", bytes.NewBuffer(body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestAuthHandler_Token(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, rawPassword := testutil.NewUserBuilder().
		WithUsername("loginuser").
		WithPassword("correctpassword").
		Build(t, ts.DB.DB)

	tests := []struct {
		name           string
		form           url.Values
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "successful login",
			form: url.Values{
				"username": {user.Username},
				"password": {rawPassword},
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result testutil.TokenResponse
				testutil.AssertJSONResponse(t, resp, &result)
				assert.Equal(t, "bearer", result.TokenType)
				assert.NotEmpty(t, result.AccessToken)
			},
		},
		{
			name: "wrong password",
			form: url.Values{
				"username": {user.Username},
				"password": {"wrongpassword"},
			},
			expectedStatus: http.StatusUnauthorized,
			checkResponse: func(t *testing.T, resp *http.Response) {
				assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
			},
		},
		{
			name: "unknown user",
			form: url.Values{
				"username": {"ghost"},
				"password": {"anything"},
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing fields",
			form:           url.Values{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.APIURL("/users/token"), "application/x-www-form-urlencoded", strings.NewReader(tt.form.Encode()))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestAuthHandler_Token_UniformUnauthorizedBody(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, _ := testutil.NewUserBuilder().
		WithUsername("uniformuser").
		WithPassword("rightpassword").
		Build(t, ts.DB.DB)

	login := func(username, password string) string {
		form := url.Values{"username": {username}, "password": {password}}
		resp, err := http.Post(ts.APIURL("/users/token"), "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		return testutil.ReadBody(t, resp)
	}

	// Unknown user and wrong password must be indistinguishable
	wrongPassword := login(user.Username, "wrongpassword")
	unknownUser := login("nobody-here", "whatever")
	assert.Equal(t, wrongPassword, unknownUser)
}

func TestAuthHandler_Me(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, token := testutil.NewUserBuilder().
		WithUsername("me_user").
		BuildAndAuthenticate(t, ts)

	resp := testutil.DoRequest(t, http.MethodGet, ts.APIURL("/users/me"), token, nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result userResponse
	testutil.AssertJSONResponse(t, resp, &result)
	assert.Equal(t, user.Username, result.Username)
	assert.Equal(t, user.Email, result.Email)
}

func TestAuthMiddleware_UniformUnauthorized(t *testing.T) {
	ts := testutil.NewTestServer(t)

	testutil.NewUserBuilder().
		WithUsername("middleware_user").
		Build(t, ts.DB.DB)

	secret := []byte(ts.Config.SecretKey)

	sign := func(claims jwt.MapClaims, key interface{}, method jwt.SigningMethod) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}

	expired := sign(jwt.MapClaims{
		"sub": "middleware_user",
		"exp": time.Now().Add(-time.Minute).Unix(),
	}, secret, jwt.SigningMethodHS256)

	tampered := sign(jwt.MapClaims{
		"sub": "middleware_user",
		"exp": time.Now().Add(time.Minute).Unix(),
	}, []byte("attacker-secret"), jwt.SigningMethodHS256)

	deletedUser := sign(jwt.MapClaims{
		"sub": "ghost_user",
		"exp": time.Now().Add(time.Minute).Unix(),
	}, secret, jwt.SigningMethodHS256)

	tests := []struct {
		name  string
		token string
	}{
		{name: "no token", token: ""},
		{name: "garbage token", token: "garbage"},
		{name: "expired token", token: expired},
		{name: "tampered token", token: tampered},
		{name: "token for deleted user", token: deletedUser},
	}

	var bodies []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := testutil.DoRequest(t, http.MethodGet, ts.APIURL("/users/me"), tt.token, nil)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
			bodies = append(bodies, testutil.ReadBody(t, resp))
		})
	}

	// All failure modes produce the identical response body
	for i := 1; i < len(bodies); i++ {
		assert.Equal(t, bodies[0], bodies[i])
	}
}
