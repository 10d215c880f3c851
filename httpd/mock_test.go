package httpd

import (
	"context"

	"github.com/ggapi/ggsheets/appender"
	"github.com/ggapi/ggsheets/drive"
)

type mockDrive struct {
	CreateFolderFunc    func(name string) (string, error)
	ListFolderFunc      func(folderID string) ([]drive.File, error)
	FindInFolderFunc    func(folderID, name string) (string, bool, error)
	CreateFileFunc      func(folderID, name, content string) (string, error)
	CopySpreadsheetFunc func(sourceID, title, folderID, email string) (string, error)
	ListAllFunc         func() ([]drive.File, error)
	SearchFunc          func(keyword string) ([]drive.File, error)
}

func (m *mockDrive) CreateFolder(ctx context.Context, name string) (string, error) {
	return m.CreateFolderFunc(name)
}

func (m *mockDrive) ListFolder(ctx context.Context, folderID string) ([]drive.File, error) {
	return m.ListFolderFunc(folderID)
}

func (m *mockDrive) FindInFolder(ctx context.Context, folderID string, name string) (string, bool, error) {
	return m.FindInFolderFunc(folderID, name)
}

func (m *mockDrive) CreateFile(ctx context.Context, folderID string, name string, content string) (string, error) {
	return m.CreateFileFunc(folderID, name, content)
}

func (m *mockDrive) CopySpreadsheet(ctx context.Context, sourceID string, title string, folderID string, email string) (string, error) {
	return m.CopySpreadsheetFunc(sourceID, title, folderID, email)
}

func (m *mockDrive) ListAll(ctx context.Context) ([]drive.File, error) {
	return m.ListAllFunc()
}

func (m *mockDrive) Search(ctx context.Context, keyword string) ([]drive.File, error) {
	return m.SearchFunc(keyword)
}

type mockSheets struct {
	SheetNamesFunc func(spreadsheet string) ([]string, error)
	ValuesFunc     func(spreadsheet, sheet string) ([][]string, error)
}

func (m *mockSheets) SheetNames(ctx context.Context, spreadsheet string) ([]string, error) {
	return m.SheetNamesFunc(spreadsheet)
}

func (m *mockSheets) Values(ctx context.Context, spreadsheet string, sheet string) ([][]string, error) {
	return m.ValuesFunc(spreadsheet, sheet)
}

type appendCall struct {
	Spreadsheet string
	Range       appender.Range
	Fields      []string
}

type mockAppender struct {
	Calls     []appendCall
	Placement appender.Placement
	Err       error
}

func (m *mockAppender) Append(ctx context.Context, spreadsheet string, r appender.Range, fields []string) (appender.Placement, error) {
	m.Calls = append(m.Calls, appendCall{Spreadsheet: spreadsheet, Range: r, Fields: fields})

	return m.Placement, m.Err
}
