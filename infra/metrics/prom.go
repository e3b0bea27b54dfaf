package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/leagueops/rosterd/core/metrics"
)

// PromSink records balancing runs in Prometheus metrics.
type PromSink struct {
	computations prometheus.Counter
	moves        *prometheus.CounterVec
	swaps        *prometheus.CounterVec
	candidates   prometheus.Gauge
	spread       *prometheus.HistogramVec
}

// NewPromSink registers balancing metrics on the default Prometheus
// registerer. The metrics server is started separately on cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	computations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "balance_computations_total",
		Help: "Total number of balancing computations",
	})
	moves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "balance_moves_total",
		Help: "Total number of manual move requests",
	}, []string{"accepted"})
	swaps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "balance_swaps_total",
		Help: "Local-search swaps performed, by pass",
	}, []string{"pass"})
	candidates := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "balance_candidates",
		Help: "Number of candidates in the latest computation",
	})
	spread := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "balance_score_spread",
		Help:    "Max-minus-min team score sum per division",
		Buckets: prometheus.DefBuckets,
	}, []string{"division_id"})

	if err := register(reg, &computations); err != nil {
		return nil, err
	}
	if err := registerVec(reg, &moves); err != nil {
		return nil, err
	}
	if err := registerVec(reg, &swaps); err != nil {
		return nil, err
	}
	if err := registerGauge(reg, &candidates); err != nil {
		return nil, err
	}
	if err := registerHist(reg, &spread); err != nil {
		return nil, err
	}

	return &PromSink{
		computations: computations,
		moves:        moves,
		swaps:        swaps,
		candidates:   candidates,
		spread:       spread,
	}, nil
}

func register(reg prometheus.Registerer, c *prometheus.Counter) error {
	if err := reg.Register(*c); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return err
		}
		*c = are.ExistingCollector.(prometheus.Counter)
	}
	return nil
}

func registerVec(reg prometheus.Registerer, v **prometheus.CounterVec) error {
	if err := reg.Register(*v); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return err
		}
		*v = are.ExistingCollector.(*prometheus.CounterVec)
	}
	return nil
}

func registerGauge(reg prometheus.Registerer, g *prometheus.Gauge) error {
	if err := reg.Register(*g); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return err
		}
		*g = are.ExistingCollector.(prometheus.Gauge)
	}
	return nil
}

func registerHist(reg prometheus.Registerer, h **prometheus.HistogramVec) error {
	if err := reg.Register(*h); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return err
		}
		*h = are.ExistingCollector.(*prometheus.HistogramVec)
	}
	return nil
}

// RecordComputation implements the metrics sink.
func (s *PromSink) RecordComputation(ev coremetrics.ComputationEvent) error {
	s.computations.Inc()
	s.candidates.Set(float64(ev.Candidates))
	s.swaps.WithLabelValues("division").Add(float64(ev.DivisionSwaps))
	s.swaps.WithLabelValues("gender").Add(float64(ev.GenderSwaps))
	s.swaps.WithLabelValues("new_player").Add(float64(ev.NewPlayerSwaps))
	s.swaps.WithLabelValues("score").Add(float64(ev.ScoreSwaps))
	for id, spread := range ev.ScoreSpread {
		s.spread.WithLabelValues(id).Observe(spread)
	}
	return nil
}

// RecordMove implements MoveRecorder.
func (s *PromSink) RecordMove(ev coremetrics.MoveEvent) error {
	s.moves.WithLabelValues(strconv.FormatBool(ev.Accepted)).Inc()
	return nil
}
