package core

import "strings"

// Role is a player's primary playing role.
// @Description Player role: Batsman, Bowler, AllRounder, WicketKeeper
type Role string

const (
	RoleBatsman     Role = "Batsman"
	RoleBowler      Role = "Bowler"
	RoleAllRounder  Role = "AllRounder"
	RoleWicketKeep  Role = "WicketKeeper"
)

// BattingStyle is a batter's handedness.
type BattingStyle string

const (
	BattingRightHanded BattingStyle = "RightHanded"
	BattingLeftHanded  BattingStyle = "LeftHanded"
)

// BowlingType is the coarse category of a bowler's deliveries.
type BowlingType string

const (
	BowlingPace      BowlingType = "Pace"
	BowlingMedium    BowlingType = "Medium"
	BowlingOffSpin   BowlingType = "OffSpin"
	BowlingLegSpin   BowlingType = "LegSpin"
	BowlingLeftArm   BowlingType = "LeftArmSpin"
	BowlingNone      BowlingType = "None"
)

// IsSpin reports whether the type bowls via the spinner delivery catalogue.
func (b BowlingType) IsSpin() bool {
	switch b {
	case BowlingOffSpin, BowlingLegSpin, BowlingLeftArm:
		return true
	default:
		return false
	}
}

// IsPace reports whether the type bowls via the pacer delivery catalogue.
func (b BowlingType) IsPace() bool {
	return b == BowlingPace || b == BowlingMedium
}

// Trait is a behavioural modifier drawn for a subset of generated players.
type Trait string

const (
	TraitClutch             Trait = "Clutch"
	TraitChoker              Trait = "Choker"
	TraitBucketHands         Trait = "BucketHands"
	TraitPartnershipBreaker  Trait = "PartnershipBreaker"
	TraitFinisher            Trait = "Finisher"
)

// BattingIntent is a batter's default shot-selection profile.
type BattingIntent string

const (
	IntentAnchor      BattingIntent = "Anchor"
	IntentAccumulator BattingIntent = "Accumulator"
	IntentAggressive  BattingIntent = "Aggressive"
	IntentPowerHitter BattingIntent = "PowerHitter"
)

// Tier is the auction-pool generation bracket a player was drawn from.
type Tier string

const (
	TierElite Tier = "Elite"
	TierStar  Tier = "Star"
	TierGood  Tier = "Good"
	TierSolid Tier = "Solid"
)

// CareerStatus is the lifecycle phase of an entire playthrough.
type CareerStatus string

const (
	CareerSetup      CareerStatus = "Setup"
	CareerPreAuction CareerStatus = "PreAuction"
	CareerAuction    CareerStatus = "Auction"
	CareerPreSeason  CareerStatus = "PreSeason"
	CareerInSeason   CareerStatus = "InSeason"
	CareerPlayoffs   CareerStatus = "Playoffs"
	CareerPostSeason CareerStatus = "PostSeason"
	CareerCompleted  CareerStatus = "Completed"
)

// SeasonPhase is the lifecycle phase of one season within a career.
type SeasonPhase string

const (
	SeasonNotStarted  SeasonPhase = "NotStarted"
	SeasonAuction     SeasonPhase = "Auction"
	SeasonLeagueStage SeasonPhase = "LeagueStage"
	SeasonPlayoffs    SeasonPhase = "Playoffs"
	SeasonCompleted   SeasonPhase = "Completed"
)

// FixtureType distinguishes league matches from the four playoff slots.
type FixtureType string

const (
	FixtureLeague      FixtureType = "League"
	FixtureQualifier1  FixtureType = "Qualifier1"
	FixtureEliminator  FixtureType = "Eliminator"
	FixtureQualifier2  FixtureType = "Qualifier2"
	FixtureFinal       FixtureType = "Final"
)

// FixtureStatus is the lifecycle state of a scheduled match.
type FixtureStatus string

const (
	FixtureScheduled  FixtureStatus = "Scheduled"
	FixtureInProgress FixtureStatus = "InProgress"
	FixtureCompleted  FixtureStatus = "Completed"
	FixtureAbandoned  FixtureStatus = "Abandoned"
)

// AuctionStatus is the lifecycle state of a season's single auction.
type AuctionStatus string

const (
	AuctionNotStarted AuctionStatus = "NotStarted"
	AuctionInProgress AuctionStatus = "InProgress"
	AuctionPaused     AuctionStatus = "Paused"
	AuctionCompleted  AuctionStatus = "Completed"
)

// AuctionCategory groups the auction queue into contiguous blocks.
type AuctionCategory string

const (
	CategoryMarquee      AuctionCategory = "Marquee"
	CategoryBatsmen      AuctionCategory = "Batsmen"
	CategoryBowlers      AuctionCategory = "Bowlers"
	CategoryAllRounders  AuctionCategory = "AllRounders"
	CategoryWicketKeeper AuctionCategory = "WicketKeepers"
)

// categoryOrder is the fixed auction-sequence rank of each category.
var categoryOrder = map[AuctionCategory]int{
	CategoryMarquee:      0,
	CategoryBatsmen:      1,
	CategoryBowlers:      2,
	CategoryAllRounders:  3,
	CategoryWicketKeeper: 4,
}

// Order returns the category's position in the fixed auction sequence.
func (c AuctionCategory) Order() int {
	return categoryOrder[c]
}

// ParseAuctionCategory resolves a free-form category name (as accepted by
// skip_category's API, e.g. "batsmen", "all-rounders") to its canonical
// AuctionCategory, case- and separator-insensitively.
func ParseAuctionCategory(s string) (AuctionCategory, bool) {
	switch strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)) {
	case "marquee":
		return CategoryMarquee, true
	case "batsmen", "batsman", "batters":
		return CategoryBatsmen, true
	case "bowlers", "bowler":
		return CategoryBowlers, true
	case "allrounders", "allrounder":
		return CategoryAllRounders, true
	case "wicketkeepers", "wicketkeeper":
		return CategoryWicketKeeper, true
	default:
		return "", false
	}
}

// AuctionEntryStatus is the lifecycle state of one player's auction slot.
type AuctionEntryStatus string

const (
	EntryAvailable AuctionEntryStatus = "Available"
	EntryInBidding AuctionEntryStatus = "InBidding"
	EntrySold      AuctionEntryStatus = "Sold"
	EntryUnsold    AuctionEntryStatus = "Unsold"
)
