package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.UserAgent())
		w.Write([]byte("<p>hello</p>"))
	}))
	defer srv.Close()

	f, err := New(Options{UserAgent: "test-agent"})
	require.NoError(t, err)

	res, err := f.Fetch(context.Background(), srv.URL+"/page")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "<p>hello</p>", res.HTML)
	assert.Equal(t, srv.URL+"/page", res.FinalURL)
}

func TestFetch_NonSuccessIsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	f, err := New(Options{})
	require.NoError(t, err)

	_, err = f.Fetch(context.Background(), srv.URL)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusForbidden, se.StatusCode)
	assert.Contains(t, se.Result.HTML, "nope")
}

func TestPostForm_KeepsCookiesAndFollowsRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "alice", r.PostForm.Get("username"))
		http.SetCookie(w, &http.Cookie{Name: "MoodleSession", Value: "abc", Path: "/"})
		http.Redirect(w, r, "/my/", http.StatusSeeOther)
	})
	mux.HandleFunc("/my/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("dashboard"))
	})
	mux.HandleFunc("/private", func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("MoodleSession")
		if err != nil || c.Value != "abc" {
			http.Error(w, "no session", http.StatusUnauthorized)
			return
		}
		w.Write([]byte("secret"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f, err := New(Options{})
	require.NoError(t, err)

	res, err := f.PostForm(context.Background(), srv.URL+"/login", url.Values{"username": {"alice"}})
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/my/", res.FinalURL)
	assert.Equal(t, "dashboard", res.HTML)

	res, err = f.Fetch(context.Background(), srv.URL+"/private")
	require.NoError(t, err)
	assert.Equal(t, "secret", res.HTML)
}

func TestFetch_CanceledContext(t *testing.T) {
	f, err := New(Options{RequestsPerSecond: 0.001})
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	// The first request takes the only token; the second must wait and
	// gives up when the context ends.
	_, err = f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = f.Fetch(ctx, srv.URL)
	assert.Error(t, err)
}
