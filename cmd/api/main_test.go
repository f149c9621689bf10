package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"smartspend/internal/app"
	"smartspend/internal/assistant"
	"smartspend/internal/config"
	"smartspend/internal/events"
	"smartspend/internal/llm"
	"smartspend/internal/logger"
)

func newTestDeps(l llm.Client, localFallback bool) app.Deps {
	log := logger.Discard()
	return app.Deps{
		LLM:    l,
		Events: events.Noop{},
		Config: config.Config{
			LLMTimeout:    time.Second,
			LocalFallback: localFallback,
			CORSOrigins:   []string{"*"},
		},
		Log:       log,
		Assistant: assistant.NewService(l, log, assistant.Options{LocalFallback: localFallback}),
	}
}

func TestCategorizeHandler(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    string
		localFallback  bool
		setup          func(*llm.MockClient)
		wantStatusCode int
		wantBody       string
	}{
		{
			name:        "model reply is normalized",
			requestBody: `{"description":"Dinner at restaurant"}`,
			setup: func(l *llm.MockClient) {
				l.On("Complete", mock.Anything, mock.MatchedBy(func(p llm.Prompt) bool {
					return strings.Contains(p.User, "Dinner at restaurant")
				})).Return("Food", nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `{"category":"food","message":"This looks like a food expense."}`,
		},
		{
			name:        "ambiguous reply resolves by category order",
			requestBody: `{"description":"Flight snacks"}`,
			setup: func(l *llm.MockClient) {
				l.On("Complete", mock.Anything, mock.Anything).Return("travel / food", nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `{"category":"food","message":"This looks like a food expense."}`,
		},
		{
			name:        "unrecognized reply becomes other",
			requestBody: `{"description":"Gift for a friend"}`,
			setup: func(l *llm.MockClient) {
				l.On("Complete", mock.Anything, mock.Anything).Return("gifts", nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `{"category":"other","message":"This doesn't fit our standard categories."}`,
		},
		{
			name:        "remote failure degrades to other",
			requestBody: `{"description":"Dinner at restaurant"}`,
			setup: func(l *llm.MockClient) {
				l.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("status 500")).Once()
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `{"category":"other","message":"This doesn't fit our standard categories."}`,
		},
		{
			name:          "remote failure with local fallback uses keywords",
			requestBody:   `{"description":"Dinner at restaurant"}`,
			localFallback: true,
			setup: func(l *llm.MockClient) {
				l.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("timeout")).Once()
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `{"category":"food","message":"This looks like a food expense."}`,
		},
		{
			name:           "empty description is rejected",
			requestBody:    `{"description":""}`,
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `{"error":"Description cannot be empty"}`,
		},
		{
			name:           "whitespace description is rejected",
			requestBody:    `{"description":"   "}`,
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `{"error":"Description cannot be empty"}`,
		},
		{
			name:           "missing description is rejected",
			requestBody:    `{}`,
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `{"error":"Description cannot be empty"}`,
		},
		{
			name:           "empty body is rejected",
			requestBody:    ``,
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `{"error":"Description cannot be empty"}`,
		},
		{
			name:           "invalid JSON payload returns 400",
			requestBody:    `{invalid json}`,
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `{"error":"Invalid JSON payload"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLLM := new(llm.MockClient)
			if tt.setup != nil {
				tt.setup(mockLLM)
			}
			router := newRouter(newTestDeps(mockLLM, tt.localFallback))

			req := httptest.NewRequest(http.MethodPost, "/categorize", bytes.NewBufferString(tt.requestBody))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			resp := w.Result()
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.wantStatusCode, resp.StatusCode, "body: %s", body)
			assert.JSONEq(t, tt.wantBody, string(body))

			mockLLM.AssertExpectations(t)
			if tt.setup == nil {
				mockLLM.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestQueryHandler(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    string
		setup          func(*llm.MockClient)
		wantStatusCode int
		wantBody       string
	}{
		{
			name:        "reply is passed through",
			requestBody: `{"query":"How do I budget for travel?"}`,
			setup: func(l *llm.MockClient) {
				l.On("Complete", mock.Anything, mock.MatchedBy(func(p llm.Prompt) bool {
					return p.User == "How do I budget for travel?"
				})).Return("Track your spending weekly.", nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `{"response":"Track your spending weekly."}`,
		},
		{
			name:        "remote failure returns apology with 503",
			requestBody: `{"query":"How do I budget for travel?"}`,
			setup: func(l *llm.MockClient) {
				l.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("connection refused")).Once()
			},
			wantStatusCode: http.StatusServiceUnavailable,
			wantBody:       `{"response":"I'm having trouble connecting to my knowledge base. Please try again later."}`,
		},
		{
			name:           "empty query is rejected",
			requestBody:    `{"query":" "}`,
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `{"error":"Query cannot be empty"}`,
		},
		{
			name:           "invalid JSON payload returns 400",
			requestBody:    `[1,2`,
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `{"error":"Invalid JSON payload"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLLM := new(llm.MockClient)
			if tt.setup != nil {
				tt.setup(mockLLM)
			}
			router := newRouter(newTestDeps(mockLLM, false))

			req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewBufferString(tt.requestBody))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatusCode, w.Code, "body: %s", w.Body.String())
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			mockLLM.AssertExpectations(t)
		})
	}
}

func TestStatusRoutesDoNotCallRemote(t *testing.T) {
	mockLLM := new(llm.MockClient)
	router := newRouter(newTestDeps(mockLLM, false))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	mockLLM.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestCategorizeAgainstFakeEndpoint(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"Food"}}]}`))
	}))
	defer upstream.Close()

	client, err := llm.NewOpenAIClient(llm.Options{APIKey: "k", BaseURL: upstream.URL, Timeout: time.Second})
	require.NoError(t, err)
	router := newRouter(newTestDeps(client, false))

	req := httptest.NewRequest(http.MethodPost, "/categorize", strings.NewReader(`{"description":"Dinner at restaurant"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"category":"food","message":"This looks like a food expense."}`, w.Body.String())
}
