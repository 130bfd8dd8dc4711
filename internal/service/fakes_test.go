package service

import (
	"context"
	"sync"

	"cricketmgr.dev/core/internal/core"
)

// The fakes in this file are minimal in-memory stand-ins for the
// internal/core repository interfaces, used to exercise the service layer
// without a database. They hold everything in maps guarded by a mutex and
// apply no validation beyond what a real implementation would enforce
// through schema constraints.

type fakeCareerRepo struct {
	mu       sync.Mutex
	byID     map[core.CareerID]core.Career
	byUser   map[core.UserID][]core.CareerID
}

func newFakeCareerRepo() *fakeCareerRepo {
	return &fakeCareerRepo{byID: map[core.CareerID]core.Career{}, byUser: map[core.UserID][]core.CareerID{}}
}

func (f *fakeCareerRepo) Create(ctx context.Context, c *core.Career) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[c.ID] = *c
	f.byUser[c.UserID] = append(f.byUser[c.UserID], c.ID)
	return nil
}

func (f *fakeCareerRepo) GetByID(ctx context.Context, id core.CareerID) (*core.Career, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[id]
	if !ok {
		return nil, core.NewNotFoundError("career", string(id))
	}
	return &c, nil
}

func (f *fakeCareerRepo) ListByUser(ctx context.Context, userID core.UserID) ([]core.Career, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Career
	for _, id := range f.byUser[userID] {
		out = append(out, f.byID[id])
	}
	return out, nil
}

func (f *fakeCareerRepo) CountByUser(ctx context.Context, userID core.UserID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byUser[userID]), nil
}

func (f *fakeCareerRepo) Update(ctx context.Context, c *core.Career) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[c.ID] = *c
	return nil
}

func (f *fakeCareerRepo) Delete(ctx context.Context, id core.CareerID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	return nil
}

type fakePlayerRepo struct {
	mu      sync.Mutex
	players map[core.CareerID]map[core.PlayerID]core.Player
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: map[core.CareerID]map[core.PlayerID]core.Player{}}
}

func (f *fakePlayerRepo) CreateBatch(ctx context.Context, careerID core.CareerID, players []core.Player) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.players[careerID]
	if !ok {
		m = map[core.PlayerID]core.Player{}
		f.players[careerID] = m
	}
	for _, p := range players {
		m[p.ID] = p
	}
	return nil
}

func (f *fakePlayerRepo) GetByID(ctx context.Context, careerID core.CareerID, id core.PlayerID) (*core.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.players[careerID][id]
	if !ok {
		return nil, core.NewNotFoundError("player", string(id))
	}
	return &p, nil
}

func (f *fakePlayerRepo) List(ctx context.Context, careerID core.CareerID, filter core.PlayerFilter) ([]core.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Player
	for _, p := range f.players[careerID] {
		if filter.OnlyUnsold && p.TeamID != nil {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePlayerRepo) Count(ctx context.Context, careerID core.CareerID, filter core.PlayerFilter) (int, error) {
	out, err := f.List(ctx, careerID, filter)
	return len(out), err
}

func (f *fakePlayerRepo) SetOwnership(ctx context.Context, careerID core.CareerID, id core.PlayerID, teamID *core.TeamID, soldPrice int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.players[careerID][id]
	if !ok {
		return core.NewNotFoundError("player", string(id))
	}
	p.TeamID = teamID
	p.SoldPrice = soldPrice
	f.players[careerID][id] = p
	return nil
}

type fakeTeamRepo struct {
	mu    sync.Mutex
	teams map[core.CareerID]map[core.TeamID]core.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: map[core.CareerID]map[core.TeamID]core.Team{}}
}

func (f *fakeTeamRepo) CreateBatch(ctx context.Context, careerID core.CareerID, teams []core.Team) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.teams[careerID]
	if !ok {
		m = map[core.TeamID]core.Team{}
		f.teams[careerID] = m
	}
	for _, t := range teams {
		m[t.ID] = t
	}
	return nil
}

func (f *fakeTeamRepo) GetByID(ctx context.Context, careerID core.CareerID, id core.TeamID) (*core.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.teams[careerID][id]
	if !ok {
		return nil, core.NewNotFoundError("team", string(id))
	}
	return &t, nil
}

func (f *fakeTeamRepo) List(ctx context.Context, careerID core.CareerID) ([]core.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Team
	for _, t := range f.teams[careerID] {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTeamRepo) UpdateBudget(ctx context.Context, careerID core.CareerID, id core.TeamID, remaining int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.teams[careerID][id]
	if !ok {
		return core.NewNotFoundError("team", string(id))
	}
	t.RemainingBudget = remaining
	f.teams[careerID][id] = t
	return nil
}

type fakeSeasonRepo struct {
	mu      sync.Mutex
	seasons map[core.SeasonID]core.Season
	byCareer map[core.CareerID]core.SeasonID
}

func newFakeSeasonRepo() *fakeSeasonRepo {
	return &fakeSeasonRepo{seasons: map[core.SeasonID]core.Season{}, byCareer: map[core.CareerID]core.SeasonID{}}
}

func (f *fakeSeasonRepo) Create(ctx context.Context, s *core.Season) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seasons[s.ID] = *s
	f.byCareer[s.CareerID] = s.ID
	return nil
}

func (f *fakeSeasonRepo) GetByID(ctx context.Context, id core.SeasonID) (*core.Season, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.seasons[id]
	if !ok {
		return nil, core.NewNotFoundError("season", string(id))
	}
	return &s, nil
}

func (f *fakeSeasonRepo) GetCurrent(ctx context.Context, careerID core.CareerID) (*core.Season, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.byCareer[careerID]
	if !ok {
		return nil, core.NewNotFoundError("season", string(careerID))
	}
	s := f.seasons[id]
	return &s, nil
}

func (f *fakeSeasonRepo) Update(ctx context.Context, s *core.Season) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seasons[s.ID] = *s
	return nil
}

type fakeFixtureRepo struct {
	mu       sync.Mutex
	fixtures map[core.FixtureID]core.Fixture
}

func newFakeFixtureRepo() *fakeFixtureRepo {
	return &fakeFixtureRepo{fixtures: map[core.FixtureID]core.Fixture{}}
}

func (f *fakeFixtureRepo) CreateBatch(ctx context.Context, fixtures []core.Fixture) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fx := range fixtures {
		f.fixtures[fx.ID] = fx
	}
	return nil
}

func (f *fakeFixtureRepo) GetByID(ctx context.Context, id core.FixtureID) (*core.Fixture, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fx, ok := f.fixtures[id]
	if !ok {
		return nil, core.NewNotFoundError("fixture", string(id))
	}
	return &fx, nil
}

func (f *fakeFixtureRepo) List(ctx context.Context, filter core.FixtureFilter) ([]core.Fixture, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Fixture
	for _, fx := range f.fixtures {
		if filter.SeasonID != nil && fx.SeasonID != *filter.SeasonID {
			continue
		}
		if filter.TeamID != nil && fx.Team1ID != *filter.TeamID && fx.Team2ID != *filter.TeamID {
			continue
		}
		if filter.Type != nil && fx.Type != *filter.Type {
			continue
		}
		if filter.Status != nil && fx.Status != *filter.Status {
			continue
		}
		out = append(out, fx)
	}
	return out, nil
}

func (f *fakeFixtureRepo) Update(ctx context.Context, fx *core.Fixture) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fixtures[fx.ID] = *fx
	return nil
}

type standingsKey struct {
	season core.SeasonID
	team   core.TeamID
}

type fakeStandingsRepo struct {
	mu   sync.Mutex
	rows map[standingsKey]core.TeamSeasonStats
}

func newFakeStandingsRepo() *fakeStandingsRepo {
	return &fakeStandingsRepo{rows: map[standingsKey]core.TeamSeasonStats{}}
}

func (f *fakeStandingsRepo) Get(ctx context.Context, seasonID core.SeasonID, teamID core.TeamID) (*core.TeamSeasonStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[standingsKey{seasonID, teamID}]
	if !ok {
		return nil, core.NewNotFoundError("standings", string(teamID))
	}
	return &row, nil
}

func (f *fakeStandingsRepo) List(ctx context.Context, seasonID core.SeasonID) ([]core.TeamSeasonStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.TeamSeasonStats
	for k, row := range f.rows {
		if k.season == seasonID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeStandingsRepo) Upsert(ctx context.Context, s *core.TeamSeasonStats) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[standingsKey{s.SeasonID, s.TeamID}] = *s
	return nil
}

type fakePlayerStatsRepo struct {
	mu   sync.Mutex
	rows map[core.SeasonID]map[core.PlayerID]core.PlayerSeasonStats
}

func newFakePlayerStatsRepo() *fakePlayerStatsRepo {
	return &fakePlayerStatsRepo{rows: map[core.SeasonID]map[core.PlayerID]core.PlayerSeasonStats{}}
}

func (f *fakePlayerStatsRepo) Get(ctx context.Context, seasonID core.SeasonID, playerID core.PlayerID) (*core.PlayerSeasonStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[seasonID][playerID]
	if !ok {
		return nil, core.NewNotFoundError("player_stats", string(playerID))
	}
	return &row, nil
}

func (f *fakePlayerStatsRepo) ListBySeason(ctx context.Context, seasonID core.SeasonID) ([]core.PlayerSeasonStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.PlayerSeasonStats
	for _, row := range f.rows[seasonID] {
		out = append(out, row)
	}
	return out, nil
}

func (f *fakePlayerStatsRepo) Upsert(ctx context.Context, s *core.PlayerSeasonStats) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.rows[s.SeasonID]
	if !ok {
		m = map[core.PlayerID]core.PlayerSeasonStats{}
		f.rows[s.SeasonID] = m
	}
	m[s.PlayerID] = *s
	return nil
}

type fakeAuctionRepo struct {
	mu         sync.Mutex
	auctions   map[core.AuctionID]core.Auction
	bySeason   map[core.SeasonID]core.AuctionID
	entries    map[core.AuctionID]map[core.PlayerID]core.AuctionPlayerEntry
	bids       map[core.AuctionID]map[core.PlayerID][]core.AuctionBid
	teamStates map[core.AuctionID]map[core.TeamID]core.TeamAuctionState
}

func newFakeAuctionRepo() *fakeAuctionRepo {
	return &fakeAuctionRepo{
		auctions:   map[core.AuctionID]core.Auction{},
		bySeason:   map[core.SeasonID]core.AuctionID{},
		entries:    map[core.AuctionID]map[core.PlayerID]core.AuctionPlayerEntry{},
		bids:       map[core.AuctionID]map[core.PlayerID][]core.AuctionBid{},
		teamStates: map[core.AuctionID]map[core.TeamID]core.TeamAuctionState{},
	}
}

func (f *fakeAuctionRepo) Create(ctx context.Context, a *core.Auction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.auctions[a.ID] = *a
	f.bySeason[a.SeasonID] = a.ID
	return nil
}

func (f *fakeAuctionRepo) Get(ctx context.Context, id core.AuctionID) (*core.Auction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.auctions[id]
	if !ok {
		return nil, core.NewNotFoundError("auction", string(id))
	}
	return &a, nil
}

func (f *fakeAuctionRepo) GetBySeason(ctx context.Context, seasonID core.SeasonID) (*core.Auction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.bySeason[seasonID]
	if !ok {
		return nil, core.NewNotFoundError("auction", string(seasonID))
	}
	a := f.auctions[id]
	return &a, nil
}

func (f *fakeAuctionRepo) Update(ctx context.Context, a *core.Auction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.auctions[a.ID] = *a
	return nil
}

func (f *fakeAuctionRepo) CreateEntries(ctx context.Context, entries []core.AuctionPlayerEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range entries {
		m, ok := f.entries[e.AuctionID]
		if !ok {
			m = map[core.PlayerID]core.AuctionPlayerEntry{}
			f.entries[e.AuctionID] = m
		}
		m[e.PlayerID] = e
	}
	return nil
}

func (f *fakeAuctionRepo) ListEntries(ctx context.Context, auctionID core.AuctionID) ([]core.AuctionPlayerEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries := make([]core.AuctionPlayerEntry, 0, len(f.entries[auctionID]))
	for _, e := range f.entries[auctionID] {
		entries = append(entries, e)
	}
	sortEntriesByOrder(entries)
	return entries, nil
}

func (f *fakeAuctionRepo) UpdateEntry(ctx context.Context, e *core.AuctionPlayerEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.entries[e.AuctionID]
	if !ok {
		m = map[core.PlayerID]core.AuctionPlayerEntry{}
		f.entries[e.AuctionID] = m
	}
	m[e.PlayerID] = *e
	return nil
}

func (f *fakeAuctionRepo) RecordBid(ctx context.Context, b *core.AuctionBid) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.bids[b.AuctionID]
	if !ok {
		m = map[core.PlayerID][]core.AuctionBid{}
		f.bids[b.AuctionID] = m
	}
	m[b.PlayerID] = append(m[b.PlayerID], *b)
	return nil
}

func (f *fakeAuctionRepo) ListBids(ctx context.Context, auctionID core.AuctionID, playerID core.PlayerID) ([]core.AuctionBid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bids[auctionID][playerID], nil
}

func (f *fakeAuctionRepo) GetTeamState(ctx context.Context, auctionID core.AuctionID, teamID core.TeamID) (*core.TeamAuctionState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, ok := f.teamStates[auctionID][teamID]
	if !ok {
		return nil, core.NewNotFoundError("team_auction_state", string(teamID))
	}
	return &st, nil
}

func (f *fakeAuctionRepo) ListTeamStates(ctx context.Context, auctionID core.AuctionID) ([]core.TeamAuctionState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.TeamAuctionState
	for _, st := range f.teamStates[auctionID] {
		out = append(out, st)
	}
	return out, nil
}

func (f *fakeAuctionRepo) UpsertTeamState(ctx context.Context, s *core.TeamAuctionState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.teamStates[s.AuctionID]
	if !ok {
		m = map[core.TeamID]core.TeamAuctionState{}
		f.teamStates[s.AuctionID] = m
	}
	m[s.TeamID] = *s
	return nil
}

func sortEntriesByOrder(entries []core.AuctionPlayerEntry) {
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].Order < entries[j-1].Order; j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
}

type fakeMatchRepo struct {
	mu       sync.Mutex
	byFix    map[core.FixtureID]core.Match
	bySeason map[core.SeasonID][]core.FixtureID
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{byFix: map[core.FixtureID]core.Match{}, bySeason: map[core.SeasonID][]core.FixtureID{}}
}

func (f *fakeMatchRepo) Create(ctx context.Context, m *core.Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byFix[m.ID] = *m
	f.bySeason[m.SeasonID] = append(f.bySeason[m.SeasonID], m.ID)
	return nil
}

func (f *fakeMatchRepo) GetByFixtureID(ctx context.Context, fixtureID core.FixtureID) (*core.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.byFix[fixtureID]
	if !ok {
		return nil, core.NewNotFoundError("match", string(fixtureID))
	}
	return &m, nil
}

func (f *fakeMatchRepo) ListBySeason(ctx context.Context, seasonID core.SeasonID) ([]core.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Match
	for _, id := range f.bySeason[seasonID] {
		out = append(out, f.byFix[id])
	}
	return out, nil
}

type xiKey struct {
	team   core.TeamID
	season core.SeasonID
}

type fakeXIRepo struct {
	mu   sync.Mutex
	rows map[xiKey][]core.PlayingXI
}

func newFakeXIRepo() *fakeXIRepo {
	return &fakeXIRepo{rows: map[xiKey][]core.PlayingXI{}}
}

func (f *fakeXIRepo) Set(ctx context.Context, teamID core.TeamID, seasonID core.SeasonID, xi []core.PlayingXI) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[xiKey{teamID, seasonID}] = xi
	return nil
}

func (f *fakeXIRepo) Get(ctx context.Context, teamID core.TeamID, seasonID core.SeasonID) ([]core.PlayingXI, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[xiKey{teamID, seasonID}], nil
}
