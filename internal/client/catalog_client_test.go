package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogClient_CoverageSendsCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/coverage", r.URL.Path)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "agent@example.com", r.PostForm.Get("email"))
		assert.Equal(t, "secret", r.PostForm.Get("password"))

		w.Write([]byte(`[{"country":"Spain","iso2":"ES","region":"No"}]`))
	}))
	defer srv.Close()

	c := NewCatalogClient(srv.URL+"/coverage", srv.URL+"/packages", "agent@example.com", "secret")

	body, status, err := c.Coverage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[{"country":"Spain","iso2":"ES","region":"No"}]`, string(body))
}

func TestCatalogClient_PackagesSendsCountry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "ES", r.PostForm.Get("country"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewCatalogClient(srv.URL+"/coverage", srv.URL+"/packages", "agent@example.com", "secret")

	_, _, err := c.Packages(context.Background(), "ES")
	require.NoError(t, err)
}

func TestCatalogClient_FallbackOnNonSuccess(t *testing.T) {
	var primaryHits, fallbackHits atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/coverage":
			primaryHits.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		case "/coverage.php":
			fallbackHits.Add(1)
			w.Write([]byte(`[{"country":"Spain","iso2":"ES","region":"No"}]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewCatalogClient(srv.URL+"/coverage", srv.URL+"/packages", "a@b.c", "pw")

	body, status, err := c.Coverage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[{"country":"Spain","iso2":"ES","region":"No"}]`, string(body))
	assert.Equal(t, int32(1), primaryHits.Load())
	assert.Equal(t, int32(1), fallbackHits.Load())
}

func TestCatalogClient_NoFallbackOnSuccess(t *testing.T) {
	var fallbackHits atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/coverage.php" {
			fallbackHits.Add(1)
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewCatalogClient(srv.URL+"/coverage", srv.URL+"/packages", "a@b.c", "pw")

	_, _, err := c.Coverage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(0), fallbackHits.Load())
}

func TestCatalogClient_BothAttemptsNonSuccessReturnsLastBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"bad credentials"}`))
	}))
	defer srv.Close()

	c := NewCatalogClient(srv.URL+"/coverage", srv.URL+"/packages", "a@b.c", "wrong")

	// The service layer classifies the body; the client hands back what the
	// provider said, status included.
	body, status, err := c.Coverage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.JSONEq(t, `{"error":"bad credentials"}`, string(body))
}

func TestCatalogClient_TransportFailureBothAttempts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewCatalogClient(srv.URL+"/coverage", srv.URL+"/packages", "a@b.c", "pw")

	_, _, err := c.Coverage(context.Background())
	require.Error(t, err)
}

func TestFallbackURL(t *testing.T) {
	assert.Equal(t, "https://x.test/api/coverage.php", fallbackURL("https://x.test/api/coverage"))
}
