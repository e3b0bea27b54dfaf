package metrics

import (
	"context"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/leagueops/rosterd/core/metrics"
	"github.com/leagueops/rosterd/infra/logger"
)

// InfluxSink writes balancing events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB
// endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	client := influxdb2.NewClient(url, token)
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink when the health check fails, so a missing backend never blocks a
// computation.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.Sink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordComputation writes one computation summary as line protocol.
func (s *InfluxSink) RecordComputation(ev coremetrics.ComputationEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("balance_computation").
		AddTag("computation_id", ev.ComputationID).
		AddField("candidates", ev.Candidates).
		AddField("divisions", ev.Divisions).
		AddField("teams", ev.Teams).
		AddField("division_swaps", ev.DivisionSwaps).
		AddField("gender_swaps", ev.GenderSwaps).
		AddField("new_player_swaps", ev.NewPlayerSwaps).
		AddField("score_swaps", ev.ScoreSwaps).
		AddField("duration_ms", ev.Duration.Milliseconds()).
		SetTime(ev.Time)
	if err := s.writeAPI.WritePoint(ctx, p); err != nil {
		return err
	}
	for id, spread := range ev.ScoreSpread {
		sp := write.NewPointWithMeasurement("balance_division").
			AddTag("computation_id", ev.ComputationID).
			AddTag("division_id", id).
			AddField("score_spread", spread).
			SetTime(ev.Time)
		if err := s.writeAPI.WritePoint(ctx, sp); err != nil {
			return err
		}
	}
	return nil
}

// RecordMove writes one manual move outcome.
func (s *InfluxSink) RecordMove(ev coremetrics.MoveEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("balance_move").
		AddTag("player_id", ev.PlayerID).
		AddTag("accepted", strconv.FormatBool(ev.Accepted)).
		AddField("from_division", ev.FromDivisionID).
		AddField("to_division", ev.ToDivisionID).
		AddField("reason", ev.Reason).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }
