// Package cli implements the command-line interface for title-odds.
//
// The cli package provides the Cobra-based CLI with two commands. "standings"
// scrapes championship win probabilities and prints them or appends them to a
// worksheet. "odds" downloads a bookmaker's championship outright prices and
// appends them to a worksheet, or prints them with --print. Each run is a
// single fetch, extract and sink pass with no state kept between runs.
package cli
