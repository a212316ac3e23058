package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"CandlePull/internal/di"
	drepo "CandlePull/internal/domain/repository"
	"CandlePull/pkg/config"
	"CandlePull/pkg/server"
	"CandlePull/pkg/util"
)

// pairList collects repeated --pairs flags; each occurrence may itself
// hold a comma- or space-separated list.
type pairList []string

func (p *pairList) String() string { return fmt.Sprint([]string(*p)) }

func (p *pairList) Set(value string) error {
	*p = append(*p, value)
	return nil
}

func main() {
	var pairs pairList
	flag.Var(&pairs, "pairs", "trading pair symbols (repeatable, comma or space separated)")
	freq := flag.String("freq", string(drepo.DefaultFrequency()), "sampling frequency: min, hour or day")
	plot := flag.Bool("plot", false, "serve interactive charts after the run")
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if !drepo.IsValidFrequency(drepo.Frequency(*freq)) {
		log.Fatalf("invalid --freq %q: expected min, hour or day", *freq)
	}

	symbols := util.SplitSymbols(pairs)
	if len(symbols) == 0 {
		// Nothing requested, nothing to do.
		return
	}

	app, err := di.InitializeApp(cfg, &server.Options{
		Pairs:     symbols,
		Frequency: drepo.Frequency(*freq),
		Plot:      *plot,
	})
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	failed, err := app.Run()
	if err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
	if failed > 0 {
		os.Exit(1)
	}
}
