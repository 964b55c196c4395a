// Package table holds the record types shared by the parser and the scorer
// and loads them from comma-delimited files.
//
// Tables are plain ordered slices of records. Row order is the file order and
// is preserved by every later stage.
//
// # Missing values
//
// Submission prediction cells follow the conventions of common dataframe
// readers: an empty cell or one of the NA markers listed in NAValues is a
// null. Nulls are kept as empty predictions with Missing set.
//
// # Schema
//
// Columns are located by header name, extra columns are ignored and a
// missing required column fails the whole load with ErrMissingColumn.
package table
