package tracker

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/reborn-osrs/reborn-ranks/internal/ranks"
)

// PlayerSource is the Wise Old Man side.
type PlayerSource interface {
	Player(ctx context.Context, rsn string) (*WOMPlayer, error)
	Update(ctx context.Context, rsn string) (*WOMPlayer, error)
	Group(ctx context.Context, id int) (*Group, error)
}

// CollectionSource is the TempleOSRS side.
type CollectionSource interface {
	CollectionLog(ctx context.Context, rsn string) (*CollectionLog, error)
	PetNames(ctx context.Context) (map[string]bool, error)
}

type Config struct {
	WOMBaseURL    string
	TempleBaseURL string
	UserAgent     string
	Timeout       time.Duration
	CacheSize     int
	CacheTTL      time.Duration
	GroupID       int
}

// Stats is a best-effort merge of both trackers. A nil field was not
// available from its source.
type Stats struct {
	RSN                    string                `json:"rsn"`
	TotalLevel             *int                  `json:"totalLevel"`
	RaidsTotal             *int                  `json:"raidsTotal"`
	BossKillsTotal         *int                  `json:"bossKillsTotal"`
	HighestRaid            *BossCount            `json:"highestRaid,omitempty"`
	HighestBoss            *BossCount            `json:"highestBoss,omitempty"`
	PetsUnique             *int                  `json:"petsUnique"`
	CollectionLogCompleted *int                  `json:"collectionLogCompleted"`
	CollectionLogAvailable *int                  `json:"collectionLogAvailable"`
	Skilling               *ranks.SkillingResult `json:"skilling,omitempty"`
	Warnings               []string              `json:"warnings"`
}

type Service struct {
	players     PlayerSource
	collections CollectionSource
	skilling    ranks.SkillingTable
	groupID     int
	logger      *zap.Logger
}

func NewService(players PlayerSource, collections CollectionSource, groupID int, logger *zap.Logger) *Service {
	return &Service{
		players:     players,
		collections: collections,
		skilling:    ranks.DefaultSkillingRanks(),
		groupID:     groupID,
		logger:      logger.Named("tracker"),
	}
}

// New wires the HTTP clients with a shared response cache.
func New(cfg Config, logger *zap.Logger) *Service {
	cache := newTTLCache(cfg.CacheSize, cfg.CacheTTL)
	return NewService(
		NewWOM(cfg.WOMBaseURL, cfg.UserAgent, cfg.Timeout, cache),
		NewTemple(cfg.TempleBaseURL, cfg.UserAgent, cfg.Timeout, cache),
		cfg.GroupID,
		logger,
	)
}

func (s *Service) CollectionLog(ctx context.Context, rsn string) (*CollectionLog, error) {
	return s.collections.CollectionLog(ctx, rsn)
}

func (s *Service) UpdatePlayer(ctx context.Context, rsn string) (*WOMPlayer, error) {
	return s.players.Update(ctx, rsn)
}

// Roster returns the clan group members sorted by display name.
func (s *Service) Roster(ctx context.Context) (*Group, []RosterEntry, error) {
	g, err := s.players.Group(ctx, s.groupID)
	if err != nil {
		return nil, nil, err
	}
	return g, g.Roster(), nil
}

func intPtr(n int) *int { return &n }

// Stats fetches both trackers concurrently. Failures are logged and leave
// their fields nil; Stats itself does not fail.
func (s *Service) Stats(ctx context.Context, rsn string) Stats {
	out := Stats{RSN: rsn, Warnings: []string{}}
	var (
		wom     *WOMPlayer
		clog    *CollectionLog
		pets    map[string]bool
		womErr  error
		clogErr error
		petsErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		wom, womErr = s.players.Player(gctx, rsn)
		return nil
	})
	g.Go(func() error {
		clog, clogErr = s.collections.CollectionLog(gctx, rsn)
		return nil
	})
	g.Go(func() error {
		pets, petsErr = s.collections.PetNames(gctx)
		return nil
	})
	_ = g.Wait()

	if womErr != nil {
		s.logger.Warn("Wise Old Man lookup failed", zap.String("rsn", rsn), zap.Error(womErr))
		out.Warnings = append(out.Warnings, "wiseoldman: "+womErr.Error())
	} else {
		if lvl, ok := wom.TotalLevel(); ok {
			out.TotalLevel = intPtr(lvl)
			sk := s.skilling.Evaluate(lvl)
			out.Skilling = &sk
		}
		if wom.LatestSnapshot != nil {
			t := PartitionBosses(wom.LatestSnapshot.Data.Bosses)
			out.RaidsTotal = intPtr(t.RaidsTotal)
			out.BossKillsTotal = intPtr(t.BossKillsTotal)
			out.HighestRaid, out.HighestBoss = t.HighestRaid, t.HighestBoss
		}
	}

	if clogErr != nil {
		s.logger.Warn("TempleOSRS collection log failed", zap.String("rsn", rsn), zap.Error(clogErr))
		out.Warnings = append(out.Warnings, "templeosrs: "+clogErr.Error())
		return out
	}
	out.CollectionLogCompleted = clog.Completed
	out.CollectionLogAvailable = clog.Available

	if petsErr != nil {
		s.logger.Warn("TempleOSRS pet list failed", zap.Error(petsErr))
		out.Warnings = append(out.Warnings, "templeosrs pets: "+petsErr.Error())
	} else if len(pets) > 0 {
		out.PetsUnique = intPtr(UniquePets(clog.Items, pets))
	}
	return out
}
