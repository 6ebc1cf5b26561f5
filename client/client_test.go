package client

import (
	"cafein/model"
	"context"
	"encoding/json"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSubmitPostsRecord(t *testing.T) {
	var gotBody map[string]any
	var gotAuth, gotType, gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"1"}}`))
	}))
	defer srv.Close()

	c := New(Options{Endpoint: srv.URL + "/cafes/", Token: "tok"})
	record := model.NewCafeRecord()
	record.Name = "Bean There"
	record.Facility = []model.Facility{{Name: "hasParking", Checked: true}}

	resp, err := c.Submit(context.Background(), record)

	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":{"id":"1"}}`, string(resp))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/cafes", gotPath)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, "Bean There", gotBody["name"])
	assert.Equal(t, []any{map[string]any{"name": "hasParking", "checked": true}}, gotBody["facility"])
}

func TestSubmitWithoutTokenSendsNoAuthorization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	resp, err := New(Options{Endpoint: srv.URL}).Submit(context.Background(), model.NewCafeRecord())

	require.NoError(t, err)
	assert.Equal(t, "null", string(resp))
}

func TestSubmitStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "owner token required", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := New(Options{Endpoint: srv.URL}).Submit(context.Background(), model.NewCafeRecord())

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.Code)
	assert.Equal(t, "owner token required", se.Body)
}

func TestSubmitTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	_, err := New(Options{Endpoint: srv.URL, Timeout: 20 * time.Millisecond}).Submit(context.Background(), model.NewCafeRecord())

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSubmitUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(Options{Endpoint: url}).Submit(context.Background(), model.NewCafeRecord())

	assert.Error(t, err)
}

func TestListAndGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cafes":
			_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"1","name":"a"},{"id":"2","name":"b"}]}`))
		case "/cafes/2":
			_, _ = w.Write([]byte(`{"success":true,"data":{"id":"2","name":"b"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"error":"Cafe not found"}`))
		}
	}))
	defer srv.Close()
	c := New(Options{Endpoint: srv.URL + "/cafes"})

	cafes, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, cafes, 2)
	assert.Equal(t, "a", cafes[0].Name)

	cafe, err := c.Get(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "b", cafe.Name)

	_, err = c.Get(context.Background(), "3")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)

	_, err = c.Get(context.Background(), " ")
	assert.Error(t, err)
}

func TestListReportsEnvelopeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"maintenance"}`))
	}))
	defer srv.Close()

	_, err := New(Options{Endpoint: srv.URL}).List(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "maintenance")
}

func TestDefaults(t *testing.T) {
	c := New(Options{})

	assert.Equal(t, DefaultEndpoint, c.Endpoint())
	assert.Equal(t, 5*time.Second, c.timeout)
}

func TestSubmitLogsInAgainAfterUnauthorized(t *testing.T) {
	var logins, posts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/owners/login":
			logins++
			var creds map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			assert.Equal(t, "owner", creds["login"])
			assert.Equal(t, "secret1", creds["password"])
			w.Write([]byte(`{"access_token":"fresh","refresh_token":"r"}`))
		case "/cafes":
			posts++
			if r.Header.Get("Authorization") != "Bearer fresh" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"success":false,"error":"token is expired"}`))
				return
			}
			body, _ := io.ReadAll(r.Body)
			assert.Contains(t, string(body), `"name":"Bean"`)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"success":true}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(Options{Endpoint: srv.URL + "/cafes", Token: "expired", Login: "owner", Password: "secret1"})
	resp, err := c.Submit(context.Background(), model.CafeRecord{Name: "Bean"})

	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true}`, string(resp))
	assert.Equal(t, 1, logins)
	assert.Equal(t, 2, posts)

	_, err = c.Submit(context.Background(), model.CafeRecord{Name: "Bean"})
	require.NoError(t, err)
	assert.Equal(t, 1, logins, "the fresh token is reused")
}

func TestSubmitWithoutCredentialsKeepsUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := New(Options{Endpoint: srv.URL + "/cafes", Token: "expired"}).Submit(context.Background(), model.CafeRecord{})

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.Code)
}

func TestAuthenticateFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"error":"Invalid login credentials"}`))
	}))
	defer srv.Close()

	c := New(Options{Endpoint: srv.URL + "/cafes", Login: "owner", Password: "nope"})
	_, err := c.Submit(context.Background(), model.CafeRecord{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "login")
	assert.Equal(t, srv.URL+"/owners/login", c.loginURL)
}
