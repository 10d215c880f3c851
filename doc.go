/*
Package ggsheets is an HTTP API for managing content plans stored as Google Sheets in Google Drive.

ggsheets is intended to be run as a long running service (the 'run' command) behind an automation
workflow that creates per-project spreadsheets from a template and appends new video ideas to
them. Records are appended to the first empty row of the worksheet so that rows cleared by hand
are reused before the sheet grows.

ggsheets supports the following commands:

  - run, to serve the HTTP API
  - append, to append a record to a Google Sheets worksheet
  - get, to download a Google Sheets worksheet as a TSV or XLSX file
  - put, to store a TSV file to a Google Sheets worksheet
  - sheets, to list the worksheets in a spreadsheet
  - version, to display the current version
*/
package ggsheets
