// Package sheets appends rows to a worksheet of a Google spreadsheet.
//
// A Client authenticates with a service-account JSON key. Open loads the
// spreadsheet's tab list once, Worksheet picks a tab by exact title, and
// AppendRows adds rows after the last non-empty row in a single
// values.append call, so either every row lands or none do.
package sheets
