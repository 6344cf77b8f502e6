package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pfrederiksen/parkrun-map/internal/course"
	"github.com/pfrederiksen/parkrun-map/internal/logger"
	"github.com/pfrederiksen/parkrun-map/internal/mapdata"
	"github.com/pfrederiksen/parkrun-map/internal/scraper"
	"github.com/spf13/cobra"
)

var (
	flagAthleteID  string
	flagCourseFile string
	flagFormat     string
	flagMinDelay   time.Duration
	flagMaxDelay   time.Duration
	flagShardRoot  string
	flagVerbose    bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parkrun-map",
		Short: "Build a runner's course map dataset from their parkrun history",
		Long: `Fetches a runner's parkrun event history, backfills any course the local
venue cache has not seen, and emits one row per known venue with the
runner's run count and personal best filled in.`,
		RunE: runFetch,
	}

	cmd.Flags().StringVar(&flagAthleteID, "athlete-id", "", "Athlete ID, with or without the barcode prefix (required)")
	cmd.Flags().StringVar(&flagCourseFile, "course-file", "data/course_data.csv", "Path to the venue cache file")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().DurationVar(&flagMinDelay, "min-delay", 2*time.Second, "Minimum politeness delay before each venue page fetch")
	cmd.Flags().DurationVar(&flagMaxDelay, "max-delay", 4*time.Second, "Maximum politeness delay before each venue page fetch")
	cmd.Flags().StringVar(&flagShardRoot, "shard-root", "", "Read history from a local digit-sharded table at this root instead of scraping")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.MarkFlagRequired("athlete-id")

	return cmd
}

// runFetch is the main command logic
func runFetch(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	if flagMaxDelay < flagMinDelay {
		return fmt.Errorf("--max-delay must be at least --min-delay")
	}

	athleteID, err := scraper.NormalizeAthleteID(flagAthleteID)
	if err != nil {
		return err
	}

	level := logger.LevelInfo
	if !flagVerbose {
		level = logger.LevelWarn
	}
	log := logger.New(level, os.Stderr).With(logger.Fields{
		"request_id": uuid.NewString(),
	})

	scraperOpts := []scraper.Option{
		scraper.WithDelayPolicy(scraper.DelayPolicy{
			Min: flagMinDelay,
			Max: flagMaxDelay,
		}),
	}
	if flagMaxDelay == 0 {
		// delays disabled entirely, e.g. against a local test site
		scraperOpts = append(scraperOpts, scraper.WithBatchDelayPolicy(scraper.DelayPolicy{}))
	}
	sc := scraper.New(scraperOpts...)

	var fetcher mapdata.HistoryFetcher = sc
	if flagShardRoot != "" {
		fetcher = shardFetcher{root: flagShardRoot}
	}

	store := course.NewFileStore(flagCourseFile)
	service := mapdata.NewService(fetcher, store, sc, log)

	rows, err := service.AthleteAndCourseData(context.Background(), athleteID)
	if err != nil {
		log.Error("athlete query failed", logger.Fields{"athlete_id": athleteID}, err)
		return err
	}

	return WriteOutput(cmd.OutOrStdout(), rows, format)
}

// Execute runs the root command, exiting non-zero on failure
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
