package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/homerun-derby/internal/domain/league"
	"github.com/riskibarqy/homerun-derby/internal/domain/team"
	basecache "github.com/riskibarqy/homerun-derby/internal/platform/cache"
)

const (
	leagueKeyPrefix = "league:"
	teamKeyPrefix   = "team:"
)

// LeagueRepository caches league reads; writes go through and drop every
// cached league entry.
type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	items, err := basecache.Load(ctx, r.cache, leagueKeyPrefix+"list", func(ctx context.Context) ([]league.League, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]league.League(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]league.League(nil), items...), nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID int64) (league.League, bool, error) {
	key := leagueKeyPrefix + "id:" + strconv.FormatInt(leagueID, 10)
	cached, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) (cachedLeague, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		return cachedLeague{value: item, exists: exists}, err
	})
	if err != nil {
		return league.League{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *LeagueRepository) GetCurrent(ctx context.Context) (league.League, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, leagueKeyPrefix+"current", func(ctx context.Context) (cachedLeague, error) {
		item, exists, err := r.next.GetCurrent(ctx)
		return cachedLeague{value: item, exists: exists}, err
	})
	if err != nil {
		return league.League{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *LeagueRepository) Create(ctx context.Context, l league.League) (league.League, error) {
	created, err := r.next.Create(ctx, l)
	if err != nil {
		return league.League{}, err
	}
	r.cache.DeletePrefix(ctx, leagueKeyPrefix)
	return created, nil
}

func (r *LeagueRepository) ReplaceTemplate(ctx context.Context, leagueID int64, slots []league.TemplateSlot) error {
	if err := r.next.ReplaceTemplate(ctx, leagueID, slots); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, leagueKeyPrefix)
	return nil
}

func (r *LeagueRepository) ListTemplate(ctx context.Context, leagueID int64) ([]league.TemplateSlot, error) {
	key := leagueKeyPrefix + "template:" + strconv.FormatInt(leagueID, 10)
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]league.TemplateSlot, error) {
		return r.next.ListTemplate(ctx, leagueID)
	})
	if err != nil {
		return nil, err
	}
	return append([]league.TemplateSlot(nil), items...), nil
}

type cachedLeague struct {
	value  league.League
	exists bool
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	items, err := basecache.Load(ctx, r.cache, teamKeyPrefix+"list", func(ctx context.Context) ([]team.Team, error) {
		return r.next.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID int64) ([]team.Team, error) {
	key := teamKeyPrefix + "league:" + strconv.FormatInt(leagueID, 10)
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]team.Team, error) {
		return r.next.ListByLeague(ctx, leagueID)
	})
	if err != nil {
		return nil, err
	}
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	key := teamKeyPrefix + "id:" + strconv.FormatInt(teamID, 10)
	cached, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) (cachedTeam, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		return cachedTeam{value: item, exists: exists}, err
	})
	if err != nil {
		return team.Team{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) (team.Team, error) {
	created, err := r.next.Create(ctx, t)
	if err != nil {
		return team.Team{}, err
	}
	r.cache.DeletePrefix(ctx, teamKeyPrefix)
	return created, nil
}

type cachedTeam struct {
	value  team.Team
	exists bool
}
