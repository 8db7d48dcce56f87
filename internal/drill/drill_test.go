package drill_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/puimuri/trainer/internal/adapters/http/api"
	service "github.com/puimuri/trainer/internal/app"
	"github.com/puimuri/trainer/internal/domain/exercise"
	"github.com/puimuri/trainer/internal/drill"
	"github.com/puimuri/trainer/pkg/logger"
	"github.com/puimuri/trainer/pkg/metrics"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func newTrainer() *httptest.Server {
	m := metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))
	svc := service.New(service.WithSeed(7), service.WithMetrics(m))
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	return httptest.NewServer(api.RequestID(mux))
}

// lenientTrainer serves real exercises but accepts every answer.
func lenientTrainer() *httptest.Server {
	svc := service.New(service.WithSeed(7), service.WithMetrics(
		metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))))
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /api/equation", func(w http.ResponseWriter, r *http.Request) {
		ex, err := svc.NewExercise(r.Context())
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(ex)
	})
	mux.HandleFunc("POST /api/equation/answer/{answer}", func(w http.ResponseWriter, r *http.Request) {
		var ex exercise.Exercise
		if err := json.NewDecoder(r.Body).Decode(&ex); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		sol, err := exercise.Solve(ex)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(sol)
	})
	return httptest.NewServer(mux)
}

func config(url string) *drill.Config {
	return &drill.Config{
		BaseURL:    url,
		Rounds:     20,
		Workers:    4,
		Timeout:    5 * time.Second,
		WrongEvery: 5,
	}
}

func TestRun(t *testing.T) {
	Convey("Given a running trainer", t, func() {
		srv := newTrainer()
		defer srv.Close()
		ctx := context.Background()

		Convey("When drilling with every fifth answer wrong", func() {
			cfg := config(srv.URL)
			cfg.OutputFile = filepath.Join(t.TempDir(), "reports", "drill.json")
			stats, err := drill.Run(ctx, cfg)

			Convey("Then the trainer agrees with every local verdict", func() {
				So(err, ShouldBeNil)
				So(stats.Rounds, ShouldEqual, 20)
				So(stats.Accepted, ShouldEqual, 16)
				So(stats.Rejected, ShouldEqual, 4)
				So(stats.Mismatches, ShouldEqual, 0)
				So(stats.Failures, ShouldEqual, 0)
				So(stats.RunID, ShouldNotBeEmpty)
				So(stats.Duration > 0, ShouldBeTrue)

				total := 0
				for _, n := range stats.ByType {
					total += n
				}
				So(total, ShouldEqual, 20)
			})

			Convey("Then the report is written as JSON", func() {
				data, readErr := os.ReadFile(cfg.OutputFile)
				So(readErr, ShouldBeNil)

				var report drill.Stats
				So(json.Unmarshal(data, &report), ShouldBeNil)
				So(report.RunID, ShouldEqual, stats.RunID)
				So(report.Accepted, ShouldEqual, 16)
			})
		})

		Convey("When wrong answers are disabled", func() {
			cfg := config(srv.URL)
			cfg.WrongEvery = 0
			cfg.Workers = 1
			cfg.Verbose = true
			stats, err := drill.Run(ctx, cfg)

			Convey("Then every round is accepted", func() {
				So(err, ShouldBeNil)
				So(stats.Accepted, ShouldEqual, 20)
				So(stats.Rejected, ShouldEqual, 0)
			})
		})
	})

	Convey("Given a trainer that accepts every answer", t, func() {
		srv := lenientTrainer()
		defer srv.Close()

		Convey("When drilling with every second answer wrong", func() {
			cfg := config(srv.URL)
			cfg.Rounds = 10
			cfg.WrongEvery = 2
			stats, err := drill.Run(context.Background(), cfg)

			Convey("Then the wrong rounds are reported as mismatches", func() {
				So(errors.Is(err, drill.ErrVerification), ShouldBeTrue)
				So(stats, ShouldNotBeNil)
				So(stats.Accepted, ShouldEqual, 5)
				So(stats.Mismatches, ShouldEqual, 5)
			})
		})
	})

	Convey("Given a trainer whose exercise endpoint fails", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {})
		mux.HandleFunc("GET /api/equation", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		Convey("Then every round counts as a failure", func() {
			cfg := config(srv.URL)
			cfg.Rounds = 3
			stats, err := drill.Run(context.Background(), cfg)
			So(errors.Is(err, drill.ErrVerification), ShouldBeTrue)
			So(stats.Failures, ShouldEqual, 3)
			So(stats.ByType, ShouldBeEmpty)
		})
	})

	Convey("Given an unhealthy trainer", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		Convey("Then the drill stops before any round", func() {
			stats, err := drill.Run(context.Background(), config(srv.URL))
			So(errors.Is(err, drill.ErrUnhealthy), ShouldBeTrue)
			So(stats, ShouldBeNil)
		})
	})

	Convey("Given an invalid config", t, func() {
		for _, mutate := range []func(*drill.Config){
			func(c *drill.Config) { c.BaseURL = "" },
			func(c *drill.Config) { c.Rounds = 0 },
			func(c *drill.Config) { c.Workers = 0 },
			func(c *drill.Config) { c.Timeout = 0 },
			func(c *drill.Config) { c.WrongEvery = -1 },
		} {
			cfg := config("http://127.0.0.1:1")
			mutate(cfg)
			_, err := drill.Run(context.Background(), cfg)
			So(errors.Is(err, drill.ErrInvalidConfig), ShouldBeTrue)
		}
	})
}

func TestClientRequestIDs(t *testing.T) {
	Convey("Given a server recording request IDs", t, func() {
		var (
			mu  sync.Mutex
			ids []string
		)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			ids = append(ids, r.Header.Get("X-Request-ID"))
			mu.Unlock()
		}))
		defer srv.Close()

		client := drill.NewClient(srv.URL+"/", time.Second)
		So(client.Health(context.Background()), ShouldBeNil)
		So(client.Health(context.Background()), ShouldBeNil)

		Convey("Then each request carries its own ID", func() {
			So(ids, ShouldHaveLength, 2)
			So(ids[0], ShouldNotBeEmpty)
			So(ids[0], ShouldNotEqual, ids[1])
		})
	})
}

func TestParseFlags(t *testing.T) {
	Convey("Given no arguments", t, func() {
		cfg, help, err := drill.ParseFlags(nil, &bytes.Buffer{})

		Convey("Then the defaults apply", func() {
			So(err, ShouldBeNil)
			So(help, ShouldBeFalse)
			So(cfg.BaseURL, ShouldEqual, drill.DefaultBaseURL)
			So(cfg.Rounds, ShouldEqual, drill.DefaultRounds)
			So(cfg.Timeout, ShouldEqual, drill.DefaultTimeout)
			So(cfg.WrongEvery, ShouldEqual, drill.DefaultWrongEvery)
			So(cfg.Workers, ShouldBeGreaterThan, 0)
			So(cfg.Validate(), ShouldBeNil)
		})
	})

	Convey("Given every flag", t, func() {
		cfg, help, err := drill.ParseFlags([]string{
			"-url", "http://trainer:8000", "-rounds", "7", "-workers", "3",
			"-timeout", "2s", "-wrong-every", "0", "-output", "out.json", "-verbose", "-help",
		}, &bytes.Buffer{})

		Convey("Then each is parsed", func() {
			So(err, ShouldBeNil)
			So(help, ShouldBeTrue)
			So(cfg.BaseURL, ShouldEqual, "http://trainer:8000")
			So(cfg.Rounds, ShouldEqual, 7)
			So(cfg.Workers, ShouldEqual, 3)
			So(cfg.Timeout, ShouldEqual, 2*time.Second)
			So(cfg.WrongEvery, ShouldEqual, 0)
			So(cfg.OutputFile, ShouldEqual, "out.json")
			So(cfg.Verbose, ShouldBeTrue)
		})
	})

	Convey("Given an unknown flag", t, func() {
		out := &bytes.Buffer{}
		_, _, err := drill.ParseFlags([]string{"-bogus"}, out)

		Convey("Then parsing fails and usage is printed", func() {
			So(err, ShouldNotBeNil)
			So(out.String(), ShouldContainSubstring, "Usage:")
		})
	})

	Convey("Given -h", t, func() {
		_, _, err := drill.ParseFlags([]string{"-h"}, &bytes.Buffer{})
		So(errors.Is(err, flag.ErrHelp), ShouldBeTrue)
	})
}
