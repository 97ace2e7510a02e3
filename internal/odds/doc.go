// Package odds fetches championship outright prices from The Odds API.
//
// The API returns a list of events, each with a list of bookmakers, each with
// a list of markets. For a championship winner sport there is a single event
// and the outrights market lists one outcome per team with a decimal price.
// Outrights picks the first bookmaker and market whose keys match exactly and
// fails when either is absent; Records turns the outcomes into rows carrying
// the implied probability 1/price.
package odds
