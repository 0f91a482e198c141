package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"timeless-server/internal/ai"
	"timeless-server/internal/auth"
	"timeless-server/internal/config"
	"timeless-server/internal/handler"
	"timeless-server/internal/mocks"
	"timeless-server/internal/models"
)

const validToken = "valid-token"

// mockAdminAuthService живет здесь: пакет mocks не может импортировать auth.
type mockAdminAuthService struct {
	mock.Mock
}

var _ auth.AdminAuthService = (*mockAdminAuthService)(nil)

func (m *mockAdminAuthService) Login(ctx context.Context, username, password string) (*auth.Session, error) {
	ret := m.Called(ctx, username, password)
	var s *auth.Session
	if ret.Get(0) != nil {
		s = ret.Get(0).(*auth.Session)
	}
	return s, ret.Error(1)
}

func (m *mockAdminAuthService) VerifySession(ctx context.Context, token string) (*models.Claims, error) {
	ret := m.Called(ctx, token)
	var c *models.Claims
	if ret.Get(0) != nil {
		c = ret.Get(0).(*models.Claims)
	}
	return c, ret.Error(1)
}

func (m *mockAdminAuthService) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type fixture struct {
	router    *gin.Engine
	text      *mocks.MockTextService
	prompts   *mocks.MockSystemPromptService
	examples  *mocks.MockExampleService
	proposals *mocks.MockProposedExampleService
	assembler *mocks.MockPromptAssembler
	auth      *mockAdminAuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return newFixtureWithRouter(t, gin.New(), nil)
}

func newFixtureWithRouter(t *testing.T, router *gin.Engine, loginRateLimit gin.HandlerFunc) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		text:      new(mocks.MockTextService),
		prompts:   new(mocks.MockSystemPromptService),
		examples:  new(mocks.MockExampleService),
		proposals: new(mocks.MockProposedExampleService),
		assembler: new(mocks.MockPromptAssembler),
		auth:      new(mockAdminAuthService),
	}
	cfg := config.AdminConfig{JWTSecret: "flash-secret", SessionTTL: time.Hour}
	h := handler.NewHandler(cfg, zap.NewNop(), f.text, f.prompts, f.examples, f.proposals, f.assembler, f.auth)

	f.router = router
	require.NoError(t, h.RegisterRoutes(f.router, loginRateLimit))

	f.auth.On("VerifySession", mock.Anything, validToken).Return(&models.Claims{
		Role:             models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "admin", ID: "session-1"},
	}, nil).Maybe()
	f.auth.On("VerifySession", mock.Anything, mock.Anything).Return(nil, models.ErrTokenInvalid).Maybe()

	t.Cleanup(func() {
		f.text.AssertExpectations(t)
		f.prompts.AssertExpectations(t)
		f.examples.AssertExpectations(t)
		f.proposals.AssertExpectations(t)
		f.assembler.AssertExpectations(t)
		f.auth.AssertExpectations(t)
	})
	return f
}

func (f *fixture) do(method, path, body string, authenticated bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authenticated {
		req.AddCookie(&http.Cookie{Name: "admin_session", Value: validToken})
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodGet, "/health", "", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
}

func TestProcessInput(t *testing.T) {
	generationErr := fmt.Errorf("failed to process input: %w", ai.ErrGenerationFailed)

	tests := []struct {
		name       string
		body       string
		result     string
		err        error
		callsSvc   bool
		wantStatus int
		wantKey    string
		wantValue  string
	}{
		{"success", `{"input":"hello"}`, "HELLO", nil, true, http.StatusOK, "processedText", "HELLO"},
		{"validation", `{"input":"  "}`, "", models.NewValidationError("Input is required."), true, http.StatusBadRequest, "error", "Input is required."},
		{"no system prompt", `{"input":"hi"}`, "", models.ErrSystemPromptNotConfigured, true, http.StatusInternalServerError, "error", "System prompt not configured."},
		{"provider failure", `{"input":"hi"}`, "", generationErr, true, http.StatusBadGateway, "error", "An error occurred while generating completions."},
		{"unexpected", `{"input":"hi"}`, "", errors.New("boom"), true, http.StatusInternalServerError, "error", "Internal server error."},
		{"malformed json", `{"input":`, "", nil, false, http.StatusBadRequest, "error", "Invalid request body."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.callsSvc {
				var input struct{ Input string }
				require.NoError(t, json.Unmarshal([]byte(tt.body), &input))
				f.text.On("ProcessInput", mock.Anything, input.Input).Return(tt.result, tt.err).Once()
			}

			w := f.do(http.MethodPost, "/api/processInput", tt.body, false)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantValue, decode(t, w)[tt.wantKey])
		})
	}
}

func TestAdminAPI_RequiresSession(t *testing.T) {
	f := newFixture(t)

	for _, path := range []string{"/api/systemPrompts", "/api/examples", "/api/proposedExamples"} {
		w := f.do(http.MethodGet, path, "", false)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, "Unauthorized", decode(t, w)["error"])
	}

	req := httptest.NewRequest(http.MethodGet, "/api/examples", nil)
	req.AddCookie(&http.Cookie{Name: "admin_session", Value: "forged"})
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSystemPromptEndpoints(t *testing.T) {
	f := newFixture(t)
	now := time.Now()
	prompts := []*models.SystemPrompt{{ID: 2, Content: "new", CreatedAt: now}, {ID: 1, Content: "old", CreatedAt: now.Add(-time.Hour)}}

	f.prompts.On("ListPrompts", mock.Anything).Return(prompts, nil).Once()
	w := f.do(http.MethodGet, "/api/systemPrompts", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode(t, w)["prompts"].([]any)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].(map[string]any)["content"])

	f.prompts.On("CreatePrompt", mock.Anything, "be terse").Return(&models.SystemPrompt{ID: 3, Content: "be terse"}, nil).Once()
	w = f.do(http.MethodPost, "/api/systemPrompts", `{"content":"be terse"}`, true)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "be terse", decode(t, w)["prompt"].(map[string]any)["content"])

	f.prompts.On("GetActivePrompt", mock.Anything).Return(nil, models.ErrNotFound).Once()
	w = f.do(http.MethodGet, "/api/systemPrompts/active", "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "System prompt not found.", decode(t, w)["error"])

	f.prompts.On("DeletePrompt", mock.Anything, int64(99)).Return(models.ErrNotFound).Once()
	w = f.do(http.MethodDelete, "/api/systemPrompts/99", "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)

	f.assembler.On("Preview", mock.Anything).Return(&models.PromptPreview{Prompt: "p", ExampleCount: 1, TokenCount: 4}, nil).Once()
	w = f.do(http.MethodGet, "/api/systemPrompts/preview", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 4, decode(t, w)["tokenCount"])
}

func TestExampleEndpoints(t *testing.T) {
	f := newFixture(t)

	f.examples.On("ListExamples", mock.Anything).Return(nil, nil).Once()
	w := f.do(http.MethodGet, "/api/examples", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"examples":[]}`, w.Body.String())

	f.examples.On("CreateExample", mock.Anything, "in", "").
		Return(nil, models.NewValidationError("Both input and output are required.")).Once()
	w = f.do(http.MethodPost, "/api/examples", `{"input":"in"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Both input and output are required.", decode(t, w)["error"])

	output := "edited"
	f.examples.On("UpdateExample", mock.Anything, int64(5), models.ExampleUpdate{Output: &output}).
		Return(&models.Example{ID: 5, Input: "in", Output: output}, nil).Once()
	w = f.do(http.MethodPut, "/api/examples/5", `{"output":"edited"}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "edited", decode(t, w)["example"].(map[string]any)["output"])

	w = f.do(http.MethodGet, "/api/examples/abc", "", true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid id.", decode(t, w)["error"])

	f.examples.On("DeleteExample", mock.Anything, int64(7)).Return(models.ErrNotFound).Once()
	w = f.do(http.MethodDelete, "/api/examples/7", "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Example not found.", decode(t, w)["error"])

	f.proposals.On("RegenerateExample", mock.Anything, int64(5)).
		Return(&models.ProposedExample{ID: 11, Input: "in", Completions: []string{"a", "b", "c"}}, nil).Once()
	w = f.do(http.MethodPost, "/api/examples/5/regenerate", "", true)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 11, decode(t, w)["proposedExample"].(map[string]any)["id"])
}

func TestProposedExampleEndpoints(t *testing.T) {
	f := newFixture(t)

	f.proposals.On("Generate", mock.Anything, "hello").
		Return(&models.ProposedExample{ID: 1, Input: "hello", Completions: []string{"a", "b", "c"}}, nil).Once()
	w := f.do(http.MethodPost, "/api/proposedExamples", `{"input":"hello"}`, true)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, decode(t, w)["proposedExample"].(map[string]any)["completions"], 3)

	f.proposals.On("Promote", mock.Anything, int64(1), "b").
		Return(&models.Example{ID: 9, Input: "hello", Output: "b"}, nil).Once()
	w = f.do(http.MethodPost, "/api/proposedExamples/1/promote", `{"completion":"b"}`, true)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "b", decode(t, w)["example"].(map[string]any)["output"])

	f.proposals.On("Regenerate", mock.Anything, int64(2)).
		Return(nil, fmt.Errorf("failed to generate completions: %w", ai.ErrGenerationFailed)).Once()
	w = f.do(http.MethodPost, "/api/proposedExamples/2/regenerate", "", true)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	f.proposals.On("Discard", mock.Anything, int64(3)).Return(models.ErrNotFound).Once()
	w = f.do(http.MethodDelete, "/api/proposedExamples/3", "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Proposed example not found.", decode(t, w)["error"])

	f.proposals.On("GetProposedExample", mock.Anything, int64(4)).Return(&models.ProposedExample{ID: 4}, nil).Once()
	w = f.do(http.MethodGet, "/api/proposedExamples/4", "", true)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBatchProposedExamples(t *testing.T) {
	ok := func(input string) models.BatchItemResult {
		return models.BatchItemResult{Input: input, ProposedExample: &models.ProposedExample{ID: 1, Input: input}}
	}
	failed := func(input string) models.BatchItemResult {
		return models.BatchItemResult{Input: input, Error: "An error occurred while generating completions."}
	}

	tests := []struct {
		name       string
		body       string
		inputs     []string
		results    []models.BatchItemResult
		err        error
		wantStatus int
	}{
		{"all succeed", `{"inputs":["a","b"]}`, []string{"a", "b"}, []models.BatchItemResult{ok("a"), ok("b")}, nil, http.StatusOK},
		{"partial failure", `{"text":"a\nb"}`, []string{"a", "b"}, []models.BatchItemResult{ok("a"), failed("b")}, nil, http.StatusMultiStatus},
		{"all fail", `{"inputs":["a"],"text":"b"}`, []string{"a", "b"}, []models.BatchItemResult{failed("a"), failed("b")}, nil, http.StatusBadGateway},
		{"no system prompt", `{"inputs":["a"]}`, []string{"a"}, nil, models.ErrSystemPromptNotConfigured, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.proposals.On("GenerateBatch", mock.Anything, tt.inputs).Return(tt.results, tt.err).Once()

			w := f.do(http.MethodPost, "/api/proposedExamples/batch", tt.body, true)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.err == nil {
				assert.Len(t, decode(t, w)["results"], len(tt.results))
			}
		})
	}
}

func TestAdminPages(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/admin/examples", "", false)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = f.do(http.MethodGet, "/admin", "", true)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/system-prompt", w.Header().Get("Location"))

	f.examples.On("ListExamples", mock.Anything).Return([]*models.Example{{ID: 1, Input: "ping", Output: "pong"}}, nil).Once()
	w = f.do(http.MethodGet, "/admin/examples", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
	assert.Contains(t, w.Body.String(), `data-autosave="/api/examples/1"`)

	f.prompts.On("ListPrompts", mock.Anything).Return(nil, nil).Once()
	f.assembler.On("Preview", mock.Anything).Return(nil, models.ErrSystemPromptNotConfigured).Once()
	w = f.do(http.MethodGet, "/admin/system-prompt", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No system prompt configured yet.")

	f.proposals.On("ListProposedExamples", mock.Anything).
		Return([]*models.ProposedExample{{ID: 3, Input: "hi", Completions: []string{"one", "two"}}}, nil).Once()
	w = f.do(http.MethodGet, "/admin/proposed-examples", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/proposedExamples/3/promote")

	w = f.do(http.MethodGet, "/", "", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/static/index.js")
}

func TestLogin_JSON(t *testing.T) {
	f := newFixture(t)
	expires := time.Now().Add(time.Hour)
	f.auth.On("Login", mock.Anything, "admin", "secret").
		Return(&auth.Session{Token: "jwt", SessionID: "s1", Username: "admin", ExpiresAt: expires}, nil).Once()
	f.auth.On("Login", mock.Anything, "admin", "wrong").Return(nil, models.ErrInvalidCredentials).Once()

	w := f.do(http.MethodPost, "/login", `{"username":"admin","password":"secret"}`, false)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "admin_session", cookies[0].Name)
	assert.Equal(t, "jwt", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	w = f.do(http.MethodPost, "/login", `{"username":"admin","password":"wrong"}`, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid username or password.", decode(t, w)["error"])
}

func TestLogin_RateLimitedBySocketAddress(t *testing.T) {
	newLimitedFixture := func(t *testing.T, trustedProxies []string) *fixture {
		router, err := handler.NewRouter(trustedProxies)
		require.NoError(t, err)
		store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{Rate: time.Minute, Limit: 2})
		return newFixtureWithRouter(t, router, handler.NewLoginRateLimiter(store, zap.NewNop()))
	}
	attempt := func(f *fixture, remoteAddr, forwardedFor string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"admin","password":"wrong"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", forwardedFor)
		req.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)
		return w
	}

	t.Run("forwarded header from untrusted peer is ignored", func(t *testing.T) {
		f := newLimitedFixture(t, nil)
		f.auth.On("Login", mock.Anything, "admin", "wrong").Return(nil, models.ErrInvalidCredentials).Twice()

		throttled := 0
		for i := 0; i < 10; i++ {
			w := attempt(f, "198.51.100.7:4000", fmt.Sprintf("203.0.113.%d", i+1))
			if w.Code == http.StatusTooManyRequests {
				throttled++
				assert.Contains(t, decode(t, w)["error"], "Too many login attempts")
				continue
			}
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		}
		assert.Equal(t, 8, throttled)
	})

	t.Run("trusted proxy forwards the real client address", func(t *testing.T) {
		f := newLimitedFixture(t, []string{"10.0.0.1"})
		f.auth.On("Login", mock.Anything, "admin", "wrong").Return(nil, models.ErrInvalidCredentials).Times(4)

		for i := 0; i < 3; i++ {
			w := attempt(f, "10.0.0.1:4000", fmt.Sprintf("203.0.113.%d", i+1))
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		}
		w := attempt(f, "10.0.0.1:4000", "203.0.113.1")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		w = attempt(f, "10.0.0.1:4000", "203.0.113.1")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})
}

func TestNewRouter_RejectsInvalidProxy(t *testing.T) {
	_, err := handler.NewRouter([]string{"not-an-ip"})
	assert.Error(t, err)
}

func TestLogin_FormRendersErrorAndRedirects(t *testing.T) {
	f := newFixture(t)
	f.auth.On("Login", mock.Anything, "admin", "wrong").Return(nil, models.ErrInvalidCredentials).Once()
	f.auth.On("Login", mock.Anything, "admin", "secret").
		Return(&auth.Session{Token: "jwt", Username: "admin", ExpiresAt: time.Now().Add(time.Hour)}, nil).Once()

	post := func(password string) *httptest.ResponseRecorder {
		form := url.Values{"username": {"admin"}, "password": {password}}
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)
		return w
	}

	w := post("wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password.")
	assert.Contains(t, w.Body.String(), `value="admin"`)

	w = post("secret")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))
}

func TestLoginPage_RedirectsWhenSignedIn(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/login", "", true)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = f.do(http.MethodGet, "/login", "", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/login"`)
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	f.auth.On("Logout", mock.Anything, validToken).Return(nil).Once()

	w := f.do(http.MethodGet, "/admin/logout", "", true)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "admin_session" {
			cleared = c.MaxAge < 0
		}
	}
	assert.True(t, cleared, "session cookie must be expired")
}
