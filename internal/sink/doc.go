// Package sink delivers extracted records to their destination.
//
// Records from either pipeline are first flattened into a Table whose column
// order is fixed. A Printer renders the whole table in one write; a Sheet
// appends its rows to a spreadsheet worksheet in one call.
package sink
