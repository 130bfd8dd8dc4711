// Package core holds the domain model for a cricket franchise-manager career:
// players, teams, auctions, seasons, fixtures, and the stat lines derived
// from them. It owns no persistence and no simulation randomness; those live
// in internal/repository and internal/engine/* respectively.
package core

// UserID identifies the account that owns one or more careers.
type UserID string

// CareerID identifies a single playthrough.
type CareerID string

// PlayerID identifies a generated player, stable for the life of a career.
type PlayerID string

// TeamID identifies one of the 8 franchises within a career.
type TeamID string

// SeasonID identifies a season within a career.
type SeasonID string

// FixtureID identifies a scheduled match within a season.
type FixtureID string

// AuctionID identifies the single auction belonging to a season.
type AuctionID string
