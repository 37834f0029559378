package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	var gotForm map[string]string

	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write(loginPageTest)
	})
	mux.HandleFunc("/session", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"authenticity_token": r.PostForm.Get("authenticity_token"),
			"login":              r.PostForm.Get("login"),
			"password":           r.PostForm.Get("password"),
		}
		http.SetCookie(w, &http.Cookie{Name: "user_session", Value: "s3ss10n"})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := NewClient(context.Background(), ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	err = client.Login(context.Background(), "octocat", "correct horse")
	require.NoError(t, err)

	require.Equal(t, map[string]string{
		"authenticity_token": "mUjBhWvA4lLNdjLzSe+1sqEx8iJzOGpGTPYzcHxW0g==",
		"login":              "octocat",
		"password":           "correct horse",
	}, gotForm)
}

func TestLoginTokenMissing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><form action="/session"></form></body></html>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := NewClient(context.Background(), ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	err = client.Login(context.Background(), "octocat", "pw")
	require.ErrorIs(t, err, ErrAuthTokenMissing)
}
