package report

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
)

// bucketServer is a minimal in-memory S3 endpoint serving one bucket.
type bucketServer struct {
	mu      sync.Mutex
	bucket  string
	objects map[string]string
	deleted []string
}

func (b *bucketServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, "/"+b.bucket), "/")
	switch {
	case r.Method == http.MethodHead && key == "":
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodGet && key == "":
		b.list(w, r.URL.Query().Get("prefix"))
	case r.Method == http.MethodPut:
		b.objects[key] = "stored"
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodGet:
		body, ok := b.objects[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	case r.Method == http.MethodDelete:
		delete(b.objects, key)
		b.deleted = append(b.deleted, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (b *bucketServer) list(w http.ResponseWriter, prefix string) {
	var keys []string
	for k := range b.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?><ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">`)
	fmt.Fprintf(&sb, "<Name>%s</Name><IsTruncated>false</IsTruncated>", b.bucket)
	for _, k := range keys {
		fmt.Fprintf(&sb, "<Contents><Key>%s</Key><Size>6</Size></Contents>", k)
	}
	sb.WriteString("</ListBucketResult>")
	w.Header().Set("Content-Type", "application/xml")
	_, _ = w.Write([]byte(sb.String()))
}

func newTestStore(t *testing.T, objects map[string]string) (*Store, *bucketServer) {
	t.Helper()
	if objects == nil {
		objects = map[string]string{}
	}
	srv := &bucketServer{bucket: "reports", objects: objects}
	server := httptest.NewServer(srv)
	t.Cleanup(server.Close)

	store, err := NewStore(context.Background(), &config.S3Config{
		Endpoint:  server.URL,
		Region:    "us-east-1",
		Bucket:    "reports",
		AccessKey: "key",
		SecretKey: "secret",
	})
	require.NoError(t, err)
	return store, srv
}

func TestNewStore_Errors(t *testing.T) {
	t.Parallel()

	_, err := NewStore(context.Background(), nil)
	assert.Error(t, err)

	_, err = NewStore(context.Background(), &config.S3Config{Bucket: "reports"})
	assert.ErrorIs(t, err, config.ErrS3CredentialsMissing)
}

func TestStore_Upload(t *testing.T) {
	t.Parallel()
	store, srv := newTestStore(t, nil)

	key, err := store.Upload(context.Background(), &Report{InstallID: "abc", Prefix: "TEST_"})
	require.NoError(t, err)

	assert.Equal(t, "test/install-abc.yaml", key)
	assert.Equal(t, "reports", store.Bucket())
	srv.mu.Lock()
	defer srv.mu.Unlock()
	assert.Contains(t, srv.objects, key)
}

func TestStore_Fetch(t *testing.T) {
	t.Parallel()
	store, _ := newTestStore(t, map[string]string{
		"test/install-abc.yaml": "installId: abc\nprefix: TEST_\nstatus: succeeded\n",
	})

	r, err := store.Fetch(context.Background(), "test/install-abc.yaml")
	require.NoError(t, err)
	assert.Equal(t, "abc", r.InstallID)
	assert.Equal(t, StatusSucceeded, r.Status)

	_, err = store.Fetch(context.Background(), "test/missing.yaml")
	assert.Error(t, err)
}

func TestStore_DeleteAll(t *testing.T) {
	t.Parallel()
	store, srv := newTestStore(t, map[string]string{
		"test/install-1.yaml":  "a",
		"test/install-2.yaml":  "b",
		"other/install-3.yaml": "c",
	})

	keys, err := store.List(context.Background(), "TEST_")
	require.NoError(t, err)
	assert.Len(t, keys, 2)

	deleted, err := store.DeleteAll(context.Background(), "TEST_")
	require.NoError(t, err)
	assert.Equal(t, []string{"test/install-1.yaml", "test/install-2.yaml"}, deleted)

	srv.mu.Lock()
	defer srv.mu.Unlock()
	assert.Equal(t, map[string]string{"other/install-3.yaml": "c"}, srv.objects)
}
