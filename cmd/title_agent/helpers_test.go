package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

const articlePage = `<html><body>
<h1>Learn Go Programming</h1>
<article><p>Go is an open source programming language.</p><p>Learn Go with goroutines and channels.</p></article>
</body></html>`

// newPageServer serves one article at /go and 404 everywhere else, counting requests.
func newPageServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	hits := &atomic.Int32{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/go" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(articlePage))
	}))
	t.Cleanup(server.Close)
	return server, hits
}

// writeCatalog writes a two-entry catalog: a working page and a missing one.
func writeCatalog(t *testing.T, baseURL string) string {
	t.Helper()
	content := fmt.Sprintf("Address,Title\n%s/go,Learn Go\n%s/missing,Missing Page\n", baseURL, baseURL)
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// useFlags sets the root flags for one test and restores them afterwards.
func useFlags(t *testing.T, catalog, provider string) {
	t.Helper()
	catalogSource = catalog
	providerFlag = provider
	t.Cleanup(func() {
		configPath = ""
		catalogSource = ""
		providerFlag = ""
		strategyFlag = ""
		useBrowserFlag = false
		verboseFlag = false
		interactiveWarm = false
	})
}
