package main

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/draft"
	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/draft/outbox"
	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/httpapi"
	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/identity"
	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/pool"
	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/season"
	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/team"
)

// Services holds the wired application layers
type Services struct {
	Seasons *season.App
	Pools   *pool.App
	Teams   *team.App
	Drafts  *draft.App
	Outbox  *outbox.Repository
	API     *httpapi.Service
}

func setupServices(db *pgxpool.Pool, verifier *identity.Verifier) *Services {
	clock := clockwork.NewRealClock()

	seasonRepo := season.NewRepository(db)
	poolRepo := pool.NewRepository(db)
	teamRepo := team.NewRepository(db)
	draftRepo := draft.NewRepository(db)

	seasons := season.NewApp(seasonRepo)
	pools := pool.NewApp(poolRepo, clock)
	teams := team.NewApp(teamRepo, pools)
	drafts := draft.NewApp(draftRepo, pools, teams, clock)

	return &Services{
		Seasons: seasons,
		Pools:   pools,
		Teams:   teams,
		Drafts:  drafts,
		Outbox:  outbox.NewRepository(db),
		API:     httpapi.NewService(seasons, pools, teams, drafts, verifier),
	}
}
