// Command kpibench demonstrates and benchmarks the KPI calculation engine.
//
// It seeds an in-memory portfolio, prints deal, portfolio and sector KPI
// snapshots, then times the reference and optimized XIRR backends over
// synthetic quarterly schedules.
//
// Usage:
//
//	kpibench --config config.yaml
//	kpibench --backend reference --iterations 500
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/pedash/kpi-engine/internal/adapter/repository/memory"
	"github.com/pedash/kpi-engine/internal/calc"
	"github.com/pedash/kpi-engine/internal/config"
	"github.com/pedash/kpi-engine/internal/usecase/dealkpi"
	"github.com/pedash/kpi-engine/internal/usecase/portfolio"
)

func main() {
	cfg, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	dispatcher := calc.NewDispatcher(cfg.Backend, logger)

	store := memory.NewStore()
	sample, err := memory.SeedSample(store)
	if err != nil {
		log.Fatalf("failed to seed sample portfolio: %v", err)
	}

	positions := memory.NewPositionRepository(store)
	cashflows := memory.NewCashflowRepository(store)
	companies := memory.NewCompanyRepository(store)

	deals := dealkpi.NewService(positions, cashflows, companies, dispatcher)
	rollup := portfolio.NewService(positions, cashflows, companies, dispatcher)

	ctx := context.Background()
	asOf := time.Now().UTC().Truncate(24 * time.Hour)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "DEAL\tINVESTED\tVALUE\tDISTRIBUTIONS\tIRR\tTVPI")
	for _, id := range sample.PositionIDs {
		kpi, err := deals.DealKPIs(ctx, id, asOf)
		if err != nil {
			log.Fatalf("failed to compute deal KPIs: %v", err)
		}
		fmt.Fprintf(w, "%s (%s)\t%s\t%s\t%s\t%s\t%s\n",
			kpi.CompanyName, kpi.Ticker,
			kpi.InvestAmount, kpi.CurrentValue, kpi.TotalDistributions,
			formatRate(kpi.IRR), formatMultiple(kpi.TVPI))
	}
	w.Flush()

	pkpi, err := rollup.PortfolioKPIs(ctx, asOf)
	if err != nil {
		log.Fatalf("failed to compute portfolio KPIs: %v", err)
	}
	fmt.Printf("\nPortfolio: invested=%s value=%s distributions=%s irr=%s tvpi=%s active=%d realized=%d\n",
		pkpi.TotalInvested, pkpi.TotalCurrentValue, pkpi.TotalDistributions,
		formatRate(pkpi.IRR), formatMultiple(pkpi.TVPI), pkpi.ActiveDeals, pkpi.RealizedDeals)

	sectors, err := rollup.SectorKPIs(ctx, asOf)
	if err != nil {
		log.Fatalf("failed to compute sector KPIs: %v", err)
	}
	for _, sector := range sectors {
		fmt.Printf("Sector %-12s deals=%d invested=%s irr=%s\n",
			sector.Sector, sector.DealCount, sector.TotalInvested, formatRate(sector.IRR))
	}

	info := dispatcher.Info()
	fmt.Printf("\nBackend: %s (expected speedup %.0fx)\n", info.Backend, info.ExpectedSpeedup)

	runBenchmark(cfg)
}

// runBenchmark times both backends over the same synthetic schedule: one
// initial contribution, quarterly distributions, one terminal exit.
func runBenchmark(cfg config.Config) {
	schedule := benchmarkSchedule(cfg.Benchmark.Cashflows)

	fmt.Printf("\nBenchmark: %d iterations over %d cashflows\n",
		cfg.Benchmark.Iterations, len(schedule))

	refRate, refDuration := timeBackend(calc.NewReference(), schedule, cfg)
	optRate, optDuration := timeBackend(calc.NewOptimized(), schedule, cfg)

	fmt.Printf("  reference: %-12s irr=%s\n", refDuration, formatRate(refRate))
	fmt.Printf("  optimized: %-12s irr=%s\n", optDuration, formatRate(optRate))
	if optDuration > 0 {
		fmt.Printf("  measured speedup: %.2fx\n", float64(refDuration)/float64(optDuration))
	}
}

func timeBackend(backend calc.Backend, schedule []calc.Point, cfg config.Config) (*float64, time.Duration) {
	var rate *float64
	start := time.Now()
	for i := 0; i < cfg.Benchmark.Iterations; i++ {
		if r, ok := backend.XIRR(schedule, cfg.InitialGuess); ok {
			rate = &r
		} else {
			rate = nil
		}
	}
	return rate, time.Since(start)
}

func benchmarkSchedule(cashflows int) []calc.Point {
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

	schedule := []calc.Point{{Date: start, Amount: -1_000_000}}
	for i := 1; i < cashflows-1; i++ {
		schedule = append(schedule, calc.Point{
			Date:   start.AddDate(0, 0, 90*i),
			Amount: 25_000,
		})
	}
	schedule = append(schedule, calc.Point{
		Date:   start.AddDate(0, 0, 90*(cashflows-1)),
		Amount: 1_500_000,
	})
	return schedule
}

func formatRate(rate *float64) string {
	if rate == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", *rate*100)
}

func formatMultiple(multiple *float64) string {
	if multiple == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2fx", *multiple)
}
