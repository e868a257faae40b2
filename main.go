package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	_ "github.com/lib/pq"

	"github.com/nonsonwune/student_results/analysis"
	"github.com/nonsonwune/student_results/config"
	"github.com/nonsonwune/student_results/loader"
	"github.com/nonsonwune/student_results/logging"
	"github.com/nonsonwune/student_results/models"
	"github.com/nonsonwune/student_results/report"
)

type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	table   *models.Table
	params  analysis.Params
	printer *report.Printer
	input   *bufio.Scanner
	closed  bool
}

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		color.Red("Error loading configuration: %v", err)
		return 1
	}

	logger := logging.New(cfg.Logging, os.Stderr)
	slog.SetDefault(logger)

	ctx := context.Background()

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		color.Red("Error connecting to database: %v", err)
		return 1
	}
	if db != nil {
		defer db.Close()
	}

	src, err := loader.NewSource(cfg.Source, cfg.Schema, db)
	if err != nil {
		color.Red("Error configuring source: %v", err)
		return 1
	}

	table, err := loader.NewCache(logger).Load(ctx, src, cfg.Schema)
	if err != nil {
		printLoadError(err)
		return 1
	}

	a := &app{
		cfg:     cfg,
		logger:  logger,
		table:   table,
		params:  defaultParams(cfg),
		printer: report.NewPrinter(os.Stdout),
		input:   bufio.NewScanner(os.Stdin),
	}
	a.loop()
	return 0
}

// openDatabase connects only when the roster lives in postgres.
func openDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	if cfg.Source.Type != config.SourcePostgres {
		return nil, nil
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func printLoadError(err error) {
	var loadErr *loader.LoadError
	if !errors.As(err, &loadErr) {
		color.Red("Error loading results: %v", err)
		return
	}

	switch {
	case errors.Is(err, loader.ErrInputNotFound):
		color.Red("Results source not found: %s", loadErr.Source)
	case errors.Is(err, loader.ErrSchemaMismatch):
		color.Red("Results source %s is missing columns: %s", loadErr.Source, strings.Join(loadErr.Missing, ", "))
	default:
		color.Red("Error loading results: %v", err)
	}
}

func defaultParams(cfg *config.Config) analysis.Params {
	p := analysis.DefaultParams()
	p.TopN = cfg.Analysis.TopN
	p.Bins = cfg.Analysis.Bins
	p.PassThreshold = cfg.Analysis.PassThreshold
	return p
}

func (a *app) loop() {
	for {
		a.displayMenu()
		choice := a.readLine()
		if a.closed {
			fmt.Println()
			return
		}

		switch choice {
		case "1":
			a.setPercentageRange()
		case "2":
			a.setStatusFilter()
		case "3":
			a.setRankingMode()
		case "4":
			a.show((*report.Printer).DisplayDashboard)
		case "5":
			a.show((*report.Printer).DisplaySummary)
		case "6":
			a.show((*report.Printer).DisplayDifficulty)
		case "7":
			a.show((*report.Printer).DisplayRankings)
		case "8":
			a.show((*report.Printer).DisplayDistribution)
		case "9":
			a.show((*report.Printer).DisplayStudents)
		case "10":
			a.exportWorkbook()
		case "11":
			a.exportCharts()
		case "12":
			a.params = defaultParams(a.cfg)
			color.Green("Filters reset.")
		case "13":
			color.Green("Thank you for using Student Results Analysis!")
			return
		default:
			color.Red("Invalid choice. Please try again.")
		}
	}
}

func (a *app) displayMenu() {
	color.Cyan("\n=== Student Results Analysis ===")
	fmt.Printf("Range %s | Statuses %s | Ranking %s\n",
		formatRange(a.params.Low, a.params.High), report.StatusList(a.params.Statuses), a.params.Mode)
	fmt.Println("1. Set Percentage Range")
	fmt.Println("2. Set Status Filter")
	fmt.Println("3. Set Ranking Mode")
	fmt.Println("4. Dashboard")
	fmt.Println("5. Summary")
	fmt.Println("6. Subject Difficulty")
	fmt.Println("7. Top & Bottom Performers")
	fmt.Println("8. Percentage Distribution")
	fmt.Println("9. Show Filtered Students")
	fmt.Println("10. Export Workbook")
	fmt.Println("11. Export Charts")
	fmt.Println("12. Reset Filters")
	fmt.Println("13. Exit")
	fmt.Print("\nEnter your choice (1-13): ")
}

// dashboard recomputes every view from the loaded table and the current parameters.
func (a *app) dashboard() (*analysis.Dashboard, bool) {
	d, err := analysis.Build(a.table, a.params)
	if err != nil {
		color.Red("Error building dashboard: %v", err)
		return nil, false
	}
	return d, true
}

func (a *app) show(view func(*report.Printer, *analysis.Dashboard)) {
	if d, ok := a.dashboard(); ok {
		view(a.printer, d)
	}
}

func (a *app) setPercentageRange() {
	p := a.params

	low, ok := a.readFloat(fmt.Sprintf("Enter lower bound (0-100) [%g]: ", p.Low), p.Low)
	if !ok {
		return
	}
	high, ok := a.readFloat(fmt.Sprintf("Enter upper bound (0-100) [%g]: ", p.High), p.High)
	if !ok {
		return
	}
	p.Low, p.High = low, high

	if err := p.Validate(); err != nil {
		color.Red("Invalid range: lower and upper bounds must satisfy 0 <= lower <= upper <= 100")
		a.logger.Debug("range rejected", "low", low, "high", high, "error", err)
		return
	}
	a.params = p
	color.Green("Percentage range set to %s", formatRange(low, high))
}

// formatRange prints the bounds as entered.
func formatRange(lo, hi float64) string {
	return fmt.Sprintf("%g-%g", lo, hi)
}

func (a *app) setStatusFilter() {
	fmt.Println("1. Pass and Fail")
	fmt.Println("2. Pass only")
	fmt.Println("3. Fail only")
	fmt.Println("4. None")
	fmt.Print("Enter your choice (1-4): ")

	switch a.readLine() {
	case "1":
		a.params.Statuses = models.AllStatuses()
	case "2":
		a.params.Statuses = []models.Status{models.StatusPass}
	case "3":
		a.params.Statuses = []models.Status{models.StatusFail}
	case "4":
		a.params.Statuses = nil
	default:
		color.Red("Invalid choice. Status filter unchanged.")
		return
	}
	color.Green("Status filter set to %s", report.StatusList(a.params.Statuses))
}

func (a *app) setRankingMode() {
	modes := analysis.Modes(a.table.Subjects)
	for i, mode := range modes {
		fmt.Printf("%d. %s\n", i+1, mode)
	}
	fmt.Printf("Enter your choice (1-%d): ", len(modes))

	choice, err := strconv.Atoi(a.readLine())
	if err != nil || choice < 1 || choice > len(modes) {
		color.Red("Invalid choice. Ranking mode unchanged.")
		return
	}
	a.params.Mode = modes[choice-1]
	color.Green("Ranking by %s", a.params.Mode)
}

func (a *app) exportWorkbook() {
	d, ok := a.dashboard()
	if !ok {
		return
	}

	path, err := report.WriteWorkbook(d, a.cfg.Export.Dir)
	if err != nil {
		color.Red("Error exporting workbook: %v", err)
		return
	}
	a.logger.Info("workbook exported", "path", path, "students", len(d.Subset))
	color.Green("Workbook written to %s", path)
}

func (a *app) exportCharts() {
	d, ok := a.dashboard()
	if !ok {
		return
	}

	paths, err := report.WriteCharts(d, a.cfg.Export.Dir)
	if err != nil {
		color.Red("Error exporting charts: %v", err)
		return
	}
	a.logger.Info("charts exported", "files", len(paths), "dir", a.cfg.Export.Dir)
	for _, path := range paths {
		color.Green("Chart written to %s", path)
	}
}

// readLine returns the next trimmed input line, or "" once stdin is closed.
func (a *app) readLine() string {
	if !a.input.Scan() {
		a.closed = true
		return ""
	}
	return strings.TrimSpace(a.input.Text())
}

// readFloat prompts for a number; a blank answer keeps current.
func (a *app) readFloat(prompt string, current float64) (float64, bool) {
	fmt.Print(prompt)
	text := a.readLine()
	if text == "" {
		return current, true
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		color.Red("Invalid number: %s", text)
		return 0, false
	}
	return f, true
}
