// Package app wires the engine, metrics and the event bus into a service
// that keeps one memoized computation per roster state.
package app

import (
	"context"
	"fmt"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/leagueops/rosterd/config"
	"github.com/leagueops/rosterd/core/balance"
	"github.com/leagueops/rosterd/core/model"
	"github.com/leagueops/rosterd/infra/logger"
	"github.com/leagueops/rosterd/infra/metrics"
	"github.com/leagueops/rosterd/internal/eventbus"
)

// Service owns the current roster state and its computed assignments. The
// engine itself is stateless; the service adds memoization keyed on the
// inputs and serializes manual moves.
type Service struct {
	engine *balance.Engine
	bus    eventbus.EventBus
	log    logger.Logger

	promEnabled bool
	promPort    string

	mu         sync.Mutex
	candidates []model.Candidate
	divisions  []model.Division
	cacheKey   uint64
	cached     *balance.Result
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")
	sink, err := metrics.NewFromConfig(cfg.Metrics)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	return &Service{
		engine:      balance.NewEngine(cfg.Engine, logg, sink),
		bus:         eventbus.New(),
		log:         logg,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}, nil
}

// Bus exposes the event bus so collaborators can publish roster changes.
func (s *Service) Bus() eventbus.EventBus { return s.bus }

// SetRoster replaces the roster state and notifies subscribers.
func (s *Service) SetRoster(candidates []model.Candidate, divisions []model.Division) {
	s.mu.Lock()
	s.candidates = append([]model.Candidate(nil), candidates...)
	s.divisions = append([]model.Division(nil), divisions...)
	s.mu.Unlock()
	s.bus.Publish(eventbus.RosterChanged{})
}

// Result returns the computation for the current roster, reusing the cached
// result when the inputs have not changed since the last run.
func (s *Service) Result() *balance.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resultLocked()
}

func (s *Service) resultLocked() *balance.Result {
	key := hashInputs(s.candidates, s.divisions)
	if s.cached != nil && key == s.cacheKey {
		return s.cached
	}
	s.cached = s.engine.Compute(s.candidates, s.divisions)
	s.cacheKey = key
	return s.cached
}

// ApplyMove applies one manual move to the current computation. Moves are
// serialized here; the engine assumes exclusive access per invocation.
func (s *Service) ApplyMove(divisionIndex int, playerID string, direction balance.MoveDirection) error {
	s.mu.Lock()
	res := s.resultLocked()
	from := ""
	if divisionIndex >= 0 && divisionIndex < len(res.Divisions) {
		from = res.Divisions[divisionIndex].Division.ID
	}
	err := s.engine.Move(res, divisionIndex, playerID, direction)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	to := ""
	target := divisionIndex + int(direction)
	if target >= 0 && target < len(res.Divisions) {
		to = res.Divisions[target].Division.ID
	}
	s.bus.Publish(eventbus.MoveApplied{PlayerID: playerID, FromDivisionID: from, ToDivisionID: to})
	return nil
}

// Run serves metrics and recomputes on roster changes until ctx is done.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	events := s.bus.Subscribe()
	defer s.bus.Unsubscribe(events)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if _, changed := ev.(eventbus.RosterChanged); changed {
				res := s.Result()
				s.log.Infof("recomputed %s: %d assignments", res.ComputationID, len(res.Assignments))
			}
		}
	}
}

// Close shuts the event bus down.
func (s *Service) Close() error {
	s.bus.Close()
	return nil
}

// hashInputs fingerprints the roster state. The candidate and division
// slices are hashed in their given order; callers keep that order stable.
func hashInputs(candidates []model.Candidate, divisions []model.Division) uint64 {
	h := fnv.New64a()
	write := func(parts ...string) {
		for _, p := range parts {
			_, _ = h.Write([]byte(p))
			_, _ = h.Write([]byte{0})
		}
	}
	for _, c := range candidates {
		write(c.ID, c.DisplayName, strconv.FormatFloat(c.PlacementScore, 'g', -1, 64),
			string(c.Gender), strconv.FormatBool(c.IsCaptain), c.CaptainDivisionID,
			c.PairUserID, strconv.FormatBool(c.IsNew))
	}
	for _, d := range divisions {
		write(d.ID, d.DisplayName, strconv.Itoa(d.Rank), strconv.Itoa(d.TeamCount))
	}
	return h.Sum64()
}
