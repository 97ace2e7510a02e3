// Package standings scrapes championship win probabilities from a standings page.
//
// The page is expected to carry a table with id "standings-table" whose body
// rows hold the team in a data-team attribute and the championship forecast
// in a cell marked data-col="win_finals". Structural lookups are strict: a
// missing table, body, team attribute or forecast cell fails the whole parse.
// Only the percentage-to-probability conversion is best effort, and a cell
// that does not hold a number produces a missing value instead of an error.
package standings
