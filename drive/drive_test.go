package drive

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/ggapi/ggsheets/upstream"
)

type request struct {
	method string
	path   string
	query  string
	body   string
}

type fake struct {
	sync.Mutex
	requests []request
	handler  func(w http.ResponseWriter, rq request)
}

func (f *fake) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	rq := request{
		method: r.Method,
		path:   r.URL.Path,
		query:  r.URL.Query().Get("q"),
		body:   string(b),
	}

	f.Lock()
	f.requests = append(f.requests, rq)
	f.Unlock()

	f.handler(w, rq)
}

func mock(t *testing.T, handler func(w http.ResponseWriter, rq request)) (*Drive, *fake) {
	t.Helper()

	f := fake{handler: handler}
	srv := httptest.NewServer(&f)
	t.Cleanup(srv.Close)

	service, err := gdrive.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	return NewDrive(service), &f
}

func reply(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func failure(w http.ResponseWriter, status int, message string) {
	reply(w, status, map[string]any{
		"error": map[string]any{"code": status, "message": message},
	})
}

func TestCreateFolder(t *testing.T) {
	d, f := mock(t, func(w http.ResponseWriter, rq request) {
		reply(w, http.StatusOK, map[string]any{"id": "folder-1"})
	})

	id, err := d.CreateFolder(context.Background(), "Season 2")
	require.NoError(t, err)

	assert.Equal(t, "folder-1", id)
	require.Len(t, f.requests, 1)
	assert.Equal(t, http.MethodPost, f.requests[0].method)
	assert.Contains(t, f.requests[0].body, `"mimeType":"application/vnd.google-apps.folder"`)
	assert.Contains(t, f.requests[0].body, `"name":"Season 2"`)
}

func TestListFolder(t *testing.T) {
	d, f := mock(t, func(w http.ResponseWriter, rq request) {
		reply(w, http.StatusOK, map[string]any{
			"files": []any{
				map[string]any{"id": "f1", "name": "Ideas", "createdTime": "2024-03-01T10:00:00.000Z"},
				map[string]any{"id": "f2", "name": "Archive", "createdTime": "2024-03-02T10:00:00.000Z"},
			},
		})
	})

	files, err := d.ListFolder(context.Background(), "folder-1")
	require.NoError(t, err)

	expected := []File{
		{ID: "f1", Name: "Ideas", CreatedTime: "2024-03-01T10:00:00.000Z"},
		{ID: "f2", Name: "Archive", CreatedTime: "2024-03-02T10:00:00.000Z"},
	}

	assert.Equal(t, expected, files)
	assert.Equal(t, "'folder-1' in parents", f.requests[0].query)
}

func TestFindInFolder(t *testing.T) {
	d, _ := mock(t, func(w http.ResponseWriter, rq request) {
		reply(w, http.StatusOK, map[string]any{
			"files": []any{
				map[string]any{"id": "f1", "name": "Ideas"},
				map[string]any{"id": "f2", "name": "Archive"},
			},
		})
	})

	id, ok, err := d.FindInFolder(context.Background(), "folder-1", "Archive")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "f2", id)

	_, ok, err = d.FindInFolder(context.Background(), "folder-1", "Scripts")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFindInFolderWithMissingFolder(t *testing.T) {
	d, _ := mock(t, func(w http.ResponseWriter, rq request) {
		failure(w, http.StatusNotFound, "File not found: folder-9.")
	})

	_, _, err := d.FindInFolder(context.Background(), "folder-9", "Ideas")

	assert.ErrorIs(t, err, upstream.ErrRejected)
	assert.Equal(t, http.StatusNotFound, upstream.StatusCode(err))
}

func TestCreateFile(t *testing.T) {
	d, f := mock(t, func(w http.ResponseWriter, rq request) {
		reply(w, http.StatusOK, map[string]any{"id": "file-1"})
	})

	id, err := d.CreateFile(context.Background(), "folder-1", "script.txt", "INT. STUDIO - DAY")
	require.NoError(t, err)

	assert.Equal(t, "file-1", id)
	require.Len(t, f.requests, 1)
	assert.Equal(t, http.MethodPost, f.requests[0].method)
	assert.Contains(t, f.requests[0].body, "INT. STUDIO - DAY")
	assert.Contains(t, f.requests[0].body, `"parents":["folder-1"]`)
}

func TestCopySpreadsheet(t *testing.T) {
	d, f := mock(t, func(w http.ResponseWriter, rq request) {
		switch {
		case strings.HasSuffix(rq.path, "/files/template-1/copy"):
			reply(w, http.StatusOK, map[string]any{"id": "copy-1"})
		case strings.HasSuffix(rq.path, "/files/copy-1/permissions"):
			reply(w, http.StatusOK, map[string]any{"id": "perm-1"})
		default:
			failure(w, http.StatusNotFound, "unexpected path "+rq.path)
		}
	})

	url, err := d.CopySpreadsheet(context.Background(), "template-1", "March plan", "folder-1", "editor@example.com")
	require.NoError(t, err)

	assert.Equal(t, "https://docs.google.com/spreadsheets/d/copy-1", url)
	require.Len(t, f.requests, 2)
	assert.Contains(t, f.requests[0].body, `"name":"March plan"`)
	assert.Contains(t, f.requests[0].body, `"parents":["folder-1"]`)
	assert.Contains(t, f.requests[1].body, `"role":"writer"`)
	assert.Contains(t, f.requests[1].body, `"type":"user"`)
	assert.Contains(t, f.requests[1].body, `"emailAddress":"editor@example.com"`)
}

func TestCopySpreadsheetWithPermissionFailure(t *testing.T) {
	d, _ := mock(t, func(w http.ResponseWriter, rq request) {
		if strings.HasSuffix(rq.path, "/copy") {
			reply(w, http.StatusOK, map[string]any{"id": "copy-1"})
		} else {
			failure(w, http.StatusBadRequest, "Invalid email address")
		}
	})

	_, err := d.CopySpreadsheet(context.Background(), "template-1", "March plan", "folder-1", "nobody")

	assert.ErrorIs(t, err, upstream.ErrRejected)
	assert.Contains(t, err.Error(), "permissions.create")
}

func TestListAll(t *testing.T) {
	d, _ := mock(t, func(w http.ResponseWriter, rq request) {
		reply(w, http.StatusOK, map[string]any{
			"files": []any{
				map[string]any{
					"id":          "f1",
					"name":        "Ideas",
					"mimeType":    "application/vnd.google-apps.spreadsheet",
					"createdTime": "2024-03-01T10:00:00.000Z",
					"webViewLink": "https://docs.google.com/spreadsheets/d/f1/edit",
				},
			},
		})
	})

	files, err := d.ListAll(context.Background())
	require.NoError(t, err)

	expected := []File{{
		ID:          "f1",
		Name:        "Ideas",
		MimeType:    "application/vnd.google-apps.spreadsheet",
		CreatedTime: "2024-03-01T10:00:00.000Z",
		URL:         "https://docs.google.com/spreadsheets/d/f1/edit",
	}}

	assert.Equal(t, expected, files)
}

func TestListAllWithNoFiles(t *testing.T) {
	d, _ := mock(t, func(w http.ResponseWriter, rq request) {
		reply(w, http.StatusOK, map[string]any{})
	})

	files, err := d.ListAll(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, files)
	assert.Empty(t, files)
}

func TestSearchEscapesKeyword(t *testing.T) {
	d, f := mock(t, func(w http.ResponseWriter, rq request) {
		reply(w, http.StatusOK, map[string]any{"files": []any{}})
	})

	_, err := d.Search(context.Background(), `Bob's \plan`)
	require.NoError(t, err)

	assert.Equal(t, `name contains 'Bob\'s \\plan'`, f.requests[0].query)
}

func TestSearchWithUnavailableService(t *testing.T) {
	d, _ := mock(t, func(w http.ResponseWriter, rq request) {
		failure(w, http.StatusInternalServerError, "Internal Error")
	})

	_, err := d.Search(context.Background(), "plan")

	assert.ErrorIs(t, err, upstream.ErrUnavailable)
}
