package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"minniemissions/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func beyhive() models.Fandom {
	return models.Fandom{Name: "BeyHive", Fanbase: "BeyHive", Artist: "Beyoncé"}
}

func newAIService(t *testing.T, handler http.HandlerFunc) *FandomAIService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &FandomAIService{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Client:  srv.Client(),
	}
}

func TestAskReturnsAnswer(t *testing.T) {
	svc := newAIService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"The BeyHive formed around 2011."}}]}`))
	})

	answer, err := svc.Ask(context.Background(), beyhive(), "When did the fandom start?")
	require.NoError(t, err)
	assert.Contains(t, answer, "BeyHive")
}

func TestAskQuotaExceeded(t *testing.T) {
	svc := newAIService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"You exceeded your current quota","code":"insufficient_quota"}}`))
	})

	_, err := svc.Ask(context.Background(), beyhive(), "Anything?")
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestAskUpstreamError(t *testing.T) {
	svc := newAIService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"server exploded","code":"boom"}}`))
	})

	_, err := svc.Ask(context.Background(), beyhive(), "Anything?")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrQuotaExceeded)
	assert.Contains(t, err.Error(), "server exploded")
}

func TestAskRejectsEmptyQuestion(t *testing.T) {
	svc := newAIService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("upstream must not be called")
	})

	_, err := svc.Ask(context.Background(), beyhive(), "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAskRequiresAPIKey(t *testing.T) {
	svc := NewFandomAIService("")
	_, err := svc.Ask(context.Background(), beyhive(), "Anything?")
	assert.Error(t, err)
}
