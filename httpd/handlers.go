package httpd

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/ggapi/ggsheets/appender"
	"github.com/ggapi/ggsheets/records"
	"github.com/ggapi/ggsheets/upstream"
)

type createGoogleSheetRequest struct {
	Title    string `json:"new_spreadsheet_title"`
	Email    string `json:"permissions_email"`
	SourceID string `json:"source_spreadsheet_id"`
	FolderID string `json:"folder_id"`
}

type createFolderRequest struct {
	FolderName string `json:"folder_name"`
}

type findFileRequest struct {
	FolderID string `json:"folder_id"`
	FileName string `json:"file_name"`
}

type createFileRequest struct {
	FolderID    string `json:"folder_id"`
	FileName    string `json:"file_name"`
	FileContent string `json:"file_content"`
}

type appendRecordRequest struct {
	SpreadsheetID string `json:"spreadsheet_id"`
	SheetName     string `json:"sheet_name"`
	records.Record
}

type appendRecordResponse struct {
	Row       int    `json:"row"`
	Placement string `json:"placement"`
	Range     string `json:"range"`
}

type message struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
	URL     string `json:"url,omitempty"`
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	reply(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) createGoogleSheet(w http.ResponseWriter, r *http.Request) {
	var rq createGoogleSheetRequest
	if !decode(w, r, &rq) {
		return
	}

	if !required(w, map[string]string{
		"new_spreadsheet_title": rq.Title,
		"permissions_email":     rq.Email,
		"source_spreadsheet_id": rq.SourceID,
		"folder_id":             rq.FolderID,
	}) {
		return
	}

	url, err := s.Drive.CopySpreadsheet(r.Context(), rq.SourceID, rq.Title, rq.FolderID, rq.Email)
	if err != nil {
		failed(w, r, err)
		return
	}

	reply(w, http.StatusOK, message{
		Message: fmt.Sprintf("Success! New Google Sheet created: %v", url),
		URL:     url,
	})
}

func (s *Server) createFolder(w http.ResponseWriter, r *http.Request) {
	var rq createFolderRequest
	if !decode(w, r, &rq) {
		return
	}

	if !required(w, map[string]string{"folder_name": rq.FolderName}) {
		return
	}

	id, err := s.Drive.CreateFolder(r.Context(), rq.FolderName)
	if err != nil {
		failed(w, r, err)
		return
	}

	reply(w, http.StatusOK, message{
		Message: fmt.Sprintf("Folder '%v' created with ID: %v", rq.FolderName, id),
		ID:      id,
	})
}

func (s *Server) listFiles(w http.ResponseWriter, r *http.Request) {
	folderID := chi.URLParam(r, "folder_id")

	files, err := s.Drive.ListFolder(r.Context(), folderID)
	if err != nil {
		failed(w, r, err)
		return
	}

	if len(files) == 0 {
		problem(w, http.StatusNotFound, "Folder not found or empty")
		return
	}

	reply(w, http.StatusOK, files)
}

func (s *Server) findFileInFolder(w http.ResponseWriter, r *http.Request) {
	var rq findFileRequest
	if !decode(w, r, &rq) {
		return
	}

	if !required(w, map[string]string{"folder_id": rq.FolderID, "file_name": rq.FileName}) {
		return
	}

	id, ok, err := s.Drive.FindInFolder(r.Context(), rq.FolderID, rq.FileName)
	if err != nil {
		failed(w, r, err)
		return
	} else if !ok {
		problem(w, http.StatusNotFound, fmt.Sprintf("File '%v' not found in the folder", rq.FileName))
		return
	}

	reply(w, http.StatusOK, message{
		Message: fmt.Sprintf("File '%v' found with ID: %v", rq.FileName, id),
		ID:      id,
	})
}

func (s *Server) createFile(w http.ResponseWriter, r *http.Request) {
	var rq createFileRequest
	if !decode(w, r, &rq) {
		return
	}

	if !required(w, map[string]string{"folder_id": rq.FolderID, "file_name": rq.FileName}) {
		return
	}

	id, err := s.Drive.CreateFile(r.Context(), rq.FolderID, rq.FileName, rq.FileContent)
	if err != nil {
		failed(w, r, err)
		return
	}

	reply(w, http.StatusOK, message{
		Message: fmt.Sprintf("File '%v' created with ID: %v", rq.FileName, id),
		ID:      id,
	})
}

func (s *Server) listDriveFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.Drive.ListAll(r.Context())
	if err != nil {
		failed(w, r, err)
		return
	}

	reply(w, http.StatusOK, files)
}

func (s *Server) findFiles(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	if !required(w, map[string]string{"keyword": keyword}) {
		return
	}

	files, err := s.Drive.Search(r.Context(), keyword)
	if err != nil {
		failed(w, r, err)
		return
	}

	if len(files) == 0 {
		problem(w, http.StatusNotFound, fmt.Sprintf("No files found in Google Drive matching the keyword '%v'", keyword))
		return
	}

	reply(w, http.StatusOK, files)
}

func (s *Server) getSheetNames(w http.ResponseWriter, r *http.Request) {
	spreadsheet := r.URL.Query().Get("spreadsheet_id")
	if !required(w, map[string]string{"spreadsheet_id": spreadsheet}) {
		return
	}

	names, err := s.Sheets.SheetNames(r.Context(), spreadsheet)
	if err != nil {
		failed(w, r, err)
		return
	}

	reply(w, http.StatusOK, names)
}

func (s *Server) readWorksheetData(w http.ResponseWriter, r *http.Request) {
	spreadsheet := r.URL.Query().Get("spreadsheet_id")
	sheet := r.URL.Query().Get("sheet_name")

	if !required(w, map[string]string{"spreadsheet_id": spreadsheet, "sheet_name": sheet}) {
		return
	}

	rows, err := s.Sheets.Values(r.Context(), spreadsheet, sheet)
	if err != nil {
		failed(w, r, err)
		return
	}

	if len(rows) == 0 {
		reply(w, http.StatusOK, message{Message: fmt.Sprintf("No data found in '%v'.", sheet)})
		return
	}

	reply(w, http.StatusOK, map[string]any{"data": rows})
}

func (s *Server) appendRecord(w http.ResponseWriter, r *http.Request) {
	var rq appendRecordRequest
	if !decode(w, r, &rq) {
		return
	}

	spreadsheet := strings.TrimSpace(rq.SpreadsheetID)
	if spreadsheet == "" {
		spreadsheet = s.Spreadsheet
	}

	if !required(w, map[string]string{"spreadsheet_id": spreadsheet}) {
		return
	}

	if rq.Record.IsBlank() {
		problem(w, http.StatusBadRequest, "record has no values")
		return
	}

	area := s.Observation
	if sheet := strings.TrimSpace(rq.SheetName); sheet != "" {
		area = area.WithSheet(sheet)
	}

	placement, err := s.Appender.Append(r.Context(), spreadsheet, area, rq.Record.Fields())
	if err != nil {
		failed(w, r, err)
		return
	}

	reply(w, http.StatusOK, appendRecordResponse{
		Row:       placement.Row,
		Placement: placement.Kind.String(),
		Range:     area.Row(placement.Row),
	})
}

func decode(w http.ResponseWriter, r *http.Request, rq any) bool {
	if err := json.NewDecoder(r.Body).Decode(rq); err != nil {
		problem(w, http.StatusBadRequest, fmt.Sprintf("invalid request (%v)", err))
		return false
	}

	return true
}

// required replies with 400 Bad Request and returns false if any field is blank.
func required(w http.ResponseWriter, fields map[string]string) bool {
	missing := []string{}
	for k, v := range fields {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, k)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		problem(w, http.StatusBadRequest, fmt.Sprintf("missing required field(s): %v", strings.Join(missing, ", ")))
		return false
	}

	return true
}

func failed(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, upstream.ErrUnavailable), errors.Is(err, upstream.ErrRejected):
		status = upstream.StatusCode(err)

	case errors.Is(err, appender.ErrWidth):
		status = http.StatusBadRequest
	}

	log.WithField("path", r.URL.Path).Warnf("%v", err)

	problem(w, status, err.Error())
}

func problem(w http.ResponseWriter, status int, msg string) {
	reply(w, status, map[string]string{"error": msg})
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("error encoding response (%v)", err)
	}
}
