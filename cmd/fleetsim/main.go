package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	kitlog "github.com/go-kit/kit/log"

	"github.com/orbitkit/orbitkit"
)

// This command only reads a scenario file and drives the fleet tick loop; all
// physics lives in the library.

const defaultScenario = "~~unset~~"

var (
	scenario    string
	duration    time.Duration
	tickDelta   float64
	metricsAddr string
	csvOut      string
	verbose     bool
)

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario, "fleet scenario TOML file")
	flag.DurationVar(&duration, "duration", time.Minute, "how long to run, in simulated external time")
	flag.Float64Var(&tickDelta, "tick", 0.5, "external delta per tick in seconds")
	flag.StringVar(&metricsAddr, "metrics-addr", "", "address to serve Prometheus metrics on (empty disables)")
	flag.StringVar(&csvOut, "csv", "", "CSV file to stream satellite states to (empty disables)")
	flag.BoolVar(&verbose, "verbose", false, "log a fleet summary every tick instead of every 100 ticks")
}

func main() {
	flag.Parse()
	if scenario == defaultScenario {
		log.Fatal("no scenario provided")
	}

	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	logger = kitlog.With(logger, "cmd", "fleetsim")

	sc, err := orbitkit.LoadScenario(scenario)
	if err != nil {
		log.Fatalf("%s", err)
	}
	fleet, err := sc.Build()
	if err != nil {
		log.Fatalf("%s", err)
	}
	logger.Log("level", "info", "scenario", sc.Name, "satellites", fleet.Len(), "timeScale", fleet.GlobalTimeScale)

	fleet.OnCrash(func(index int, sat *orbitkit.Satellite) {
		logger.Log("level", "critical", "crashed", sat.Name, "index", index)
	})

	if metricsAddr != "" {
		go func() {
			http.Handle("/metrics", orbitkit.MetricsHandler())
			if err := http.ListenAndServe(metricsAddr, nil); err != nil {
				logger.Log("level", "warning", "subsys", "metrics", "err", err)
			}
		}()
	}

	stateChan := make(chan []orbitkit.State, 1000)
	exportDone := make(chan error, 1)
	go orbitkit.StreamStates(orbitkit.ExportConfig{Filename: csvOut}, stateChan, exportDone)

	start := time.Now()
	ticks := int(duration.Seconds() / tickDelta)
	logEvery := 100
	if verbose {
		logEvery = 1
	}
	for i := 0; i < ticks; i++ {
		warnings := fleet.Tick(tickDelta)
		for _, w := range warnings {
			logger.Log("level", "warning", "warn", w.String())
		}
		stateChan <- fleet.Snapshot()
		if i%logEvery == 0 {
			for _, s := range fleet.Snapshot() {
				logger.Log("level", "info", "t(s)", s.T, "sat", s.Name, "status", s.Status)
			}
		}
	}
	close(stateChan)
	if err := <-exportDone; err != nil {
		logger.Log("level", "warning", "subsys", "export", "err", err)
	}
	logger.Log("level", "notice", "status", "finished", "ticks", ticks, "wall", time.Since(start).String())
}
