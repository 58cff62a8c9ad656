package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testParams = SearchParams{
	Country:        "gb",
	What:           "data",
	Category:       "it-jobs",
	ResultsPerPage: 50,
	MaxDaysOld:     60,
}

func TestSearchPage_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gb/search/2", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "id-123", q.Get("app_id"))
		assert.Equal(t, "key-456", q.Get("app_key"))
		assert.Equal(t, "data", q.Get("what"))
		assert.Equal(t, "it-jobs", q.Get("category"))
		assert.Equal(t, "50", q.Get("results_per_page"))
		assert.Equal(t, "60", q.Get("max_days_old"))
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"count": 2,
			"results": [
				{"id": "101", "title": "Data Analyst", "salary_min": 40000, "salary_max": 60000,
				 "latitude": 51.5, "longitude": -0.12,
				 "location": {"area": ["UK", "London"], "display_name": "London"},
				 "company": {"display_name": "Acme"}, "category": {"tag": "it-jobs", "label": "IT Jobs"}},
				{"id": 102, "title": "Nurse"}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient("id-123", "key-456", WithBaseURL(server.URL), WithRateLimit(0))
	resp, err := client.SearchPage(context.Background(), testParams, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, FlexString("101"), resp.Results[0].ID)
	assert.Equal(t, FlexString("102"), resp.Results[1].ID)
	require.NotNil(t, resp.Results[0].SalaryMin)
	assert.Equal(t, 40000.0, *resp.Results[0].SalaryMin)
	assert.Nil(t, resp.Results[1].SalaryMin)
}

func TestSearchPage_MissingCredentials(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	for _, creds := range [][2]string{{"", "key"}, {"id", ""}, {"", ""}} {
		client := NewClient(creds[0], creds[1], WithBaseURL(server.URL))
		_, err := client.SearchPage(context.Background(), testParams, 1)
		assert.ErrorIs(t, err, ErrMissingCredentials)
	}
	assert.False(t, called, "no request may be made without credentials")
}

func TestSearchPage_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorised", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient("my-id", "super-secret-key", WithBaseURL(server.URL))
	_, err := client.SearchPage(context.Background(), testParams, 1)
	require.Error(t, err)

	var fetchErr *Error
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusUnauthorized, fetchErr.StatusCode)
	assert.Contains(t, err.Error(), "HTTP status 401")
	assert.NotContains(t, err.Error(), "super-secret-key")
	assert.NotContains(t, err.Error(), "my-id")
}

func TestSearchPage_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count": "many"`))
	}))
	defer server.Close()

	client := NewClient("id", "key", WithBaseURL(server.URL))
	_, err := client.SearchPage(context.Background(), testParams, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestSearchPage_TransportErrorIsRedacted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient("my-id", "super-secret-key", WithBaseURL(server.URL), WithTimeout(20*time.Millisecond))
	_, err := client.SearchPage(context.Background(), testParams, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP request failed")
	assert.NotContains(t, err.Error(), "super-secret-key")
}

func TestSearchPage_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count": 0, "results": []}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient("id", "key", WithBaseURL(server.URL))
	_, err := client.SearchPage(ctx, testParams, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithRateLimit(t *testing.T) {
	client := NewClient("id", "key", WithRateLimit(2))
	require.NotNil(t, client.limiter)

	client = NewClient("id", "key", WithRateLimit(0))
	assert.Nil(t, client.limiter)
}

func TestWithUserAgent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "jobmarket-test/1.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"count": 0, "results": []}`))
	}))
	defer server.Close()

	client := NewClient("id", "key", WithBaseURL(server.URL), WithUserAgent("jobmarket-test/1.0"))
	_, err := client.SearchPage(context.Background(), testParams, 1)
	require.NoError(t, err)

	assert.Equal(t, DefaultUserAgent, NewClient("id", "key", WithUserAgent("")).userAgent)
}
