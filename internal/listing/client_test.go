package listing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/view_file", r.URL.Path)
		assert.Equal(t, "/a", r.URL.Query().Get("file_path"))
		assert.Equal(t, "2", r.URL.Query().Get("depth"))
		assert.Equal(t, "md+py", r.URL.Query().Get("extensions"))
		w.Write([]byte(`[
			{"name":"b","path":"/a/b","relative_path":"b","is_dir":true,"depth":1,"children_count":2},
			{"name":"c.txt","path":"/a/c.txt","relative_path":"c.txt","is_dir":false,"depth":1,"size":12}
		]`))
	}))
	defer srv.Close()

	items, err := NewClient(srv.URL+"/", nil).List(context.Background(), "/a", 2, "md+py")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].IsDir)
	assert.Equal(t, 2, items[0].Children())
	assert.Equal(t, "/a/c.txt", items[1].Path)
	require.NotNil(t, items[1].Size)
	assert.Equal(t, int64(12), *items[1].Size)
}

func TestClientListBackendDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"path not found"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil).List(context.Background(), "/missing", 1, "")
	require.Error(t, err)

	var be *BackendError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, http.StatusNotFound, be.Status)
	assert.Equal(t, "path not found", Message(err))
}

func TestClientMove(t *testing.T) {
	var got moveRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/move-item", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, nil).Move(context.Background(), "/a/c.txt", "/x/y")
	require.NoError(t, err)
	assert.Equal(t, moveRequest{SourcePath: "/a/c.txt", DestinationPath: "/x/y"}, got)
}

func TestClientMoveFailureWithoutDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, nil).Move(context.Background(), "/a", "/b")
	require.Error(t, err)
	assert.Equal(t, "move: Internal Server Error", Message(err))
}

func TestItemNames(t *testing.T) {
	assert.Equal(t, "foo.txt", Item{Name: "foo.txt"}.DisplayName())
	assert.Equal(t, "c.txt", Item{RelativePath: "b/c.txt"}.DisplayName())
	assert.Equal(t, "d", Item{Path: `C:\x\d`}.DisplayName())
	assert.Equal(t, "b/c.txt", Item{Name: "c.txt", RelativePath: "b/c.txt"}.Label())
	assert.Equal(t, 0, Item{}.Children())
}

func TestSeparate(t *testing.T) {
	dirs, files := Separate([]Item{
		{Path: "/a/x", IsDir: true},
		{Path: "/a/y.txt"},
		{Path: "/a/z", IsDir: true},
	})
	require.Len(t, dirs, 2)
	require.Len(t, files, 1)
	assert.Equal(t, "/a/z", dirs[1].Path)
}
