package httpd

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/ggapi/ggsheets/appender"
	"github.com/ggapi/ggsheets/drive"
)

type Drive interface {
	CreateFolder(ctx context.Context, name string) (string, error)
	ListFolder(ctx context.Context, folderID string) ([]drive.File, error)
	FindInFolder(ctx context.Context, folderID string, name string) (string, bool, error)
	CreateFile(ctx context.Context, folderID string, name string, content string) (string, error)
	CopySpreadsheet(ctx context.Context, sourceID string, title string, folderID string, email string) (string, error)
	ListAll(ctx context.Context) ([]drive.File, error)
	Search(ctx context.Context, keyword string) ([]drive.File, error)
}

type Sheets interface {
	SheetNames(ctx context.Context, spreadsheet string) ([]string, error)
	Values(ctx context.Context, spreadsheet string, sheet string) ([][]string, error)
}

type Appender interface {
	Append(ctx context.Context, spreadsheet string, r appender.Range, fields []string) (appender.Placement, error)
}

// Server holds the remote services behind the HTTP endpoints. Spreadsheet and
// Observation are the defaults for /append_record/ requests that don't name a
// spreadsheet or sheet.
type Server struct {
	Drive       Drive
	Sheets      Sheets
	Appender    Appender
	Spreadsheet string
	Observation appender.Range
}

// NewRouter initialises a new http router and applies all routes
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(logger)
	r.Use(middleware.Recoverer)

	return s.applyRoutes(r)
}

func (s *Server) applyRoutes(r chi.Router) chi.Router {
	r.Get("/healthz", s.healthz)

	r.Post("/create_google_sheet/", s.createGoogleSheet)
	r.Post("/create_folder/", s.createFolder)
	r.Get("/list_files/{folder_id}", s.listFiles)
	r.Post("/find_file_in_folder/", s.findFileInFolder)
	r.Post("/create_file/", s.createFile)
	r.Get("/list_drive_files", s.listDriveFiles)
	r.Get("/find_files", s.findFiles)
	r.Get("/get_sheet_names", s.getSheetNames)
	r.Get("/read_worksheet_data", s.readWorksheetData)
	r.Post("/append_record/", s.appendRecord)

	return r
}

const RequestIDHeader = "X-Request-ID"

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		entry := log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start),
			"request":  ww.Header().Get(RequestIDHeader),
		})

		if ww.Status() >= 500 {
			entry.Warn("request failed")
		} else {
			entry.Info("request")
		}
	})
}
