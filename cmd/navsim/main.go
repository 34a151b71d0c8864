// Command navsim plans the three route candidates between two points and
// replays one of them on a ticker, printing progress as it goes.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kr/pretty"

	"github.com/mohamedthameursassi/saferoute/config"
	"github.com/mohamedthameursassi/saferoute/logging"
	"github.com/mohamedthameursassi/saferoute/models"
	"github.com/mohamedthameursassi/saferoute/services"
	"github.com/mohamedthameursassi/saferoute/utils"
)

func main() {
	cfg, err := config.Load(os.Getenv("SAFEROUTE_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	var (
		from     = flag.String("from", models.DefaultFixtures().CurrentLocation.String(), "start as lat,lng")
		to       = flag.String("to", "", "destination as lat,lng")
		kind     = flag.String("kind", string(services.RecommendedKind), "route to follow: fastest, safest or smoothest")
		step     = flag.Int("step", cfg.Simulation.Step, "path points per tick")
		interval = flag.Duration("interval", cfg.Simulation.Interval, "time between ticks")
		points   = flag.Int("points", cfg.Routes.PathPoints, "interpolation steps per route")
		gpxOut   = flag.String("gpx", "", "write the followed route as GPX to this file")
		verbose  = flag.Bool("v", false, "dump all candidates")
	)
	flag.Parse()

	logger := logging.New(cfg.Log.Level, cfg.Log.Dir)

	if err := run(*from, *to, *kind, *step, *interval, *points, *gpxOut, *verbose, logger); err != nil {
		fmt.Fprintf(os.Stderr, "navsim: %v\n", err)
		os.Exit(1)
	}
}

func run(from, to, kind string, step int, interval time.Duration, points int, gpxOut string, verbose bool, logger *slog.Logger) error {
	start, err := utils.ParseCoord(from)
	if err != nil {
		return fmt.Errorf("-from: %w", err)
	}
	if to == "" {
		return fmt.Errorf("-to is required")
	}
	end, err := utils.ParseCoord(to)
	if err != nil {
		return fmt.Errorf("-to: %w", err)
	}
	want := utils.ParseRouteKind(kind)
	if want == models.Unknown {
		return fmt.Errorf("-kind: unknown route kind %q", kind)
	}
	if step < 1 || interval <= 0 {
		return fmt.Errorf("-step and -interval must be positive")
	}

	synth := services.NewRouteSynthesizer(services.WithPathPoints(points), services.WithSynthesizerLogger(logger))
	candidates := synth.Synthesize(start, end)
	printCandidates(os.Stdout, candidates, verbose)

	route, ok := findKind(candidates, want)
	if !ok {
		return fmt.Errorf("no %s candidate", want)
	}

	session := services.NewNavigationSession()
	if err := session.Start(route); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	state, err := simulate(ctx, session, step, ticker.C, os.Stdout)
	if err != nil {
		return err
	}
	fmt.Printf("trip %s at point %d/%d\n", state.Status, state.ProgressIndex, state.PathLength-1)

	if gpxOut != "" {
		pos, _ := session.Position()
		data, err := services.ExportGPX(route, &pos)
		if err != nil {
			return err
		}
		if err := os.WriteFile(gpxOut, data, 0o644); err != nil {
			return err
		}
		fmt.Printf("track written to %s\n", gpxOut)
	}
	return nil
}

// simulate advances session by step on every tick until the trip completes or
// ctx is cancelled, in which case the session is cancelled.
func simulate(ctx context.Context, session *services.NavigationSession, step int, ticks <-chan time.Time, out io.Writer) (models.NavigationState, error) {
	for {
		select {
		case <-ctx.Done():
			if err := session.Cancel(); err != nil {
				return session.State(), err
			}
			return session.State(), nil
		case <-ticks:
			pos, err := session.Advance(step)
			if err != nil {
				return session.State(), err
			}
			rem, err := session.Remaining()
			if err != nil {
				return session.State(), err
			}
			fmt.Fprintf(out, "%4d  %s  %.2f km left  eta %.0f min\n",
				session.ProgressIndex(), pos, rem.DistanceKm, rem.EtaMinutes)

			if session.Status() == models.Completed {
				return session.State(), nil
			}
		}
	}
}

func printCandidates(w io.Writer, candidates []models.RouteCandidate, verbose bool) {
	for _, c := range candidates {
		if verbose {
			summary := c
			summary.Path = []models.Coordinate{c.Start(), c.End()}
			fmt.Fprintf(w, "%# v\n", pretty.Formatter(summary))
			continue
		}
		fmt.Fprintf(w, "%s  %-9s  %5.2f km  %3.0f min  safety %.1f  %s roads\n",
			c.ID, c.Kind, c.DistanceKm, c.DurationMinutes, c.SafetyScore, c.RoadQuality)
	}
}

func findKind(candidates []models.RouteCandidate, kind models.RouteKind) (models.RouteCandidate, bool) {
	for _, c := range candidates {
		if c.Kind == kind {
			return c, true
		}
	}
	return models.RouteCandidate{}, false
}
