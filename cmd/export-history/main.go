package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/thesavant42/marsphotos/internal/config"
	"github.com/thesavant42/marsphotos/internal/db"
	"github.com/thesavant42/marsphotos/internal/ui"
)

func main() {
	_ = godotenv.Load()

	defaultDB := "marsphotos.db"
	if cfg, err := config.Load(); err == nil {
		defaultDB = cfg.Client.HistoryDB
	}

	dbPath := flag.String("db", defaultDB, "Path to SQLite history database")
	outputPath := flag.String("output", "", "Output CSV file (default stdout)")
	limit := flag.Int("limit", db.DefaultHistoryLimit, "Maximum number of searches to export")
	flag.Parse()

	database, err := db.New(*dbPath)
	if err != nil {
		ui.PrintError(fmt.Sprintf("Failed to open database: %v", err))
		os.Exit(1)
	}
	defer database.Close()

	searches, err := database.RecentSearches(*limit)
	if err != nil {
		ui.PrintError(fmt.Sprintf("Failed to query database: %v", err))
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if *outputPath != "" {
		f, err := os.Create(*outputPath)
		if err != nil {
			ui.PrintError(fmt.Sprintf("Failed to create output file: %v", err))
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	w := csv.NewWriter(out)
	if err := w.Write([]string{"id", "rover", "camera", "earth_date", "searched_at"}); err != nil {
		ui.PrintError(fmt.Sprintf("Failed to write header: %v", err))
		os.Exit(1)
	}

	count := 0
	for _, s := range searches {
		record := []string{
			strconv.FormatInt(s.ID, 10),
			s.Filter.Rover,
			s.Filter.Camera,
			s.Filter.EarthDate,
			s.SearchedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write row: %v\n", err)
			continue
		}
		count++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		ui.PrintError(fmt.Sprintf("Failed to flush output: %v", err))
		os.Exit(1)
	}

	// stdout carries the CSV itself, so only report when writing to a file
	if *outputPath != "" {
		ui.PrintSuccess(fmt.Sprintf("Exported %d searches to %s", count, *outputPath))
	}
}
