package drive

import (
	"context"
	"fmt"
	"strings"

	gdrive "google.golang.org/api/drive/v3"

	"github.com/ggapi/ggsheets/upstream"
)

const FolderMimeType = "application/vnd.google-apps.folder"

// File is the subset of Drive file metadata returned to callers.
type File struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MimeType    string `json:"type,omitempty"`
	CreatedTime string `json:"created,omitempty"`
	URL         string `json:"url,omitempty"`
}

type Drive struct {
	service *gdrive.Service
}

func NewDrive(service *gdrive.Service) *Drive {
	return &Drive{
		service: service,
	}
}

func (d *Drive) CreateFolder(ctx context.Context, name string) (string, error) {
	folder := gdrive.File{
		Name:     name,
		MimeType: FolderMimeType,
	}

	created, err := d.service.Files.Create(&folder).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", upstream.Classify("files.create", err)
	}

	return created.Id, nil
}

// ListFolder returns the first page of files whose parent is folderID.
func (d *Drive) ListFolder(ctx context.Context, folderID string) ([]File, error) {
	q := fmt.Sprintf("'%s' in parents", escape(folderID))

	return d.list(ctx, d.service.Files.List().Q(q).Fields("files(id, name, createdTime)"))
}

// FindInFolder returns the ID of the first file in folderID named name.
func (d *Drive) FindInFolder(ctx context.Context, folderID string, name string) (string, bool, error) {
	files, err := d.ListFolder(ctx, folderID)
	if err != nil {
		return "", false, err
	}

	for _, f := range files {
		if f.Name == name {
			return f.ID, true, nil
		}
	}

	return "", false, nil
}

// CreateFile uploads content as a new file in folderID.
func (d *Drive) CreateFile(ctx context.Context, folderID string, name string, content string) (string, error) {
	file := gdrive.File{
		Name:    name,
		Parents: []string{folderID},
	}

	created, err := d.service.Files.Create(&file).
		Media(strings.NewReader(content)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", upstream.Classify("files.create", err)
	}

	return created.Id, nil
}

// CopySpreadsheet copies a spreadsheet into a folder under a new title, makes
// email a writer and returns the URL of the copy.
func (d *Drive) CopySpreadsheet(ctx context.Context, sourceID string, title string, folderID string, email string) (string, error) {
	copied := gdrive.File{
		Name:    title,
		Parents: []string{folderID},
	}

	spreadsheet, err := d.service.Files.Copy(sourceID, &copied).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", upstream.Classify("files.copy", err)
	}

	permission := gdrive.Permission{
		Type:         "user",
		Role:         "writer",
		EmailAddress: email,
	}

	if _, err := d.service.Permissions.Create(spreadsheet.Id, &permission).Context(ctx).Do(); err != nil {
		return "", upstream.Classify("permissions.create", err)
	}

	return SpreadsheetURL(spreadsheet.Id), nil
}

// ListAll returns the first page (up to 1000) of files visible to the account.
func (d *Drive) ListAll(ctx context.Context) ([]File, error) {
	call := d.service.Files.List().
		PageSize(1000).
		Fields("files(id, name, mimeType, createdTime, webViewLink)")

	return d.list(ctx, call)
}

// Search returns the files with names containing keyword.
func (d *Drive) Search(ctx context.Context, keyword string) ([]File, error) {
	q := fmt.Sprintf("name contains '%s'", escape(keyword))

	return d.list(ctx, d.service.Files.List().Q(q).Fields("files(id, name, createdTime, webViewLink)"))
}

func (d *Drive) list(ctx context.Context, call *gdrive.FilesListCall) ([]File, error) {
	response, err := call.Context(ctx).Do()
	if err != nil {
		return nil, upstream.Classify("files.list", err)
	}

	files := []File{}
	for _, f := range response.Files {
		if f == nil {
			continue
		}

		files = append(files, File{
			ID:          f.Id,
			Name:        f.Name,
			MimeType:    f.MimeType,
			CreatedTime: f.CreatedTime,
			URL:         f.WebViewLink,
		})
	}

	return files, nil
}

func SpreadsheetURL(id string) string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s", id)
}

// escape quotes a value for use inside a single quoted Drive query string.
func escape(v string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v)
}
