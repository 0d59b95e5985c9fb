package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/homerun-derby/internal/domain/team"
	"github.com/riskibarqy/homerun-derby/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/homerun-derby/internal/platform/cache"
)

type countingTeams struct {
	team.Repository
	lists int
}

func (c *countingTeams) List(ctx context.Context) ([]team.Team, error) {
	c.lists++
	return c.Repository.List(ctx)
}

func TestTeamRepository_CachesListAndInvalidatesOnCreate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewStore()
	if err := memory.LoadSeed(ctx, store, memory.DemoSeed()); err != nil {
		t.Fatalf("load seed: %v", err)
	}

	next := &countingTeams{Repository: store.Repositories().Teams}
	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	for i := 0; i < 3; i++ {
		teams, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("list teams: %v", err)
		}
		if len(teams) != 2 {
			t.Fatalf("expected 2 teams, got %d", len(teams))
		}
	}
	if next.lists != 1 {
		t.Fatalf("expected one upstream list, got %d", next.lists)
	}

	current, _, _ := store.Repositories().Leagues.GetCurrent(ctx)
	if _, err := repo.Create(ctx, team.Team{LeagueID: current.ID, Name: "Lee's Squad", ManagerName: "Lee"}); err != nil {
		t.Fatalf("create team: %v", err)
	}

	teams, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list teams after create: %v", err)
	}
	if len(teams) != 3 || next.lists != 2 {
		t.Fatalf("expected refreshed list, got %d teams after %d loads", len(teams), next.lists)
	}
}

func TestLeagueRepository_CachesMissingLeague(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewLeagueRepository(memory.NewStore().Repositories().Leagues, basecache.NewStore(time.Minute))

	_, exists, err := repo.GetByID(ctx, 42)
	if err != nil {
		t.Fatalf("get league: %v", err)
	}
	if exists {
		t.Fatalf("expected missing league")
	}
	if _, exists, _ := repo.GetCurrent(ctx); exists {
		t.Fatalf("expected no current league")
	}
}
