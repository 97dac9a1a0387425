package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/himanishpuri/SongDash/pkg/logger"
	"github.com/himanishpuri/SongDash/pkg/songdash"
)

// Global flags
var (
	dataPath string
	engine   string
	logLevel string
	noColor  bool
)

func init() {
	flag.StringVar(&dataPath, "data", getEnvOrDefault("SONGDASH_DATA_PATH", songdash.DefaultDataFile), "Path to the songs CSV")
	flag.StringVar(&engine, "engine", getEnvOrDefault("SONGDASH_ENGINE", songdash.EngineMemory), "Query engine: memory or sqlite")
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or fatal (env: SONGDASH_LOG_LEVEL)")
	flag.BoolVar(&noColor, "no-color", false, "Disable coloured log output")
	flag.Usage = printUsage
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// createService loads the dataset with the configured engine
func createService() (songdash.Service, error) {
	return songdash.NewService(
		songdash.WithDataPath(dataPath),
		songdash.WithEngine(engine),
		songdash.WithLogger(logger.GetLogger()),
	)
}

func main() {
	flag.Parse()
	if err := logger.Setup(logLevel, noColor); err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	log := logger.GetLogger()

	if flag.NArg() < 1 {
		printBanner()
		printUsage()
		os.Exit(1)
	}
	command := flag.Arg(0)
	if command == "help" {
		printUsage()
		return
	}
	log.Debugf("Executing command: %s", command)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	svc, err := createService()
	if err != nil {
		fmt.Printf("❌ Failed to load dataset: %v\n", err)
		log.Fatalf("Service initialization failed: %v", err)
	}
	defer svc.Close()

	c := &cli{svc: svc, out: os.Stdout, in: os.Stdin}
	if err := c.run(ctx, flag.Args()); err != nil {
		if errors.Is(err, errUnknownCommand) {
			printUsage()
		}
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Printf("❌ %v\n", err)
		}
		svc.Close()
		os.Exit(1)
	}
}

func printBanner() {
	banner := `
  ____                   ____            _     
 / ___|  ___  _ __   __ |  _ \  __ _ ___| |__  
 \___ \ / _ \| '_ \ / _' | | | |/ _' / __| '_ \ 
  ___) | (_) | | | | (_| | |_| | (_| \__ \ | | |
 |____/ \___/|_| |_|\__, |____/ \__,_|___/_| |_|
                    |___/                       
        Tech House Song Analysis CLI
`
	fmt.Println(banner)
}

func printUsage() {
	fmt.Println("SongDash - Tech House Song Analysis CLI")
	fmt.Println("\nGlobal Options:")
	fmt.Println("  -data <path>       Songs CSV (env: SONGDASH_DATA_PATH, default: " + songdash.DefaultDataFile + ")")
	fmt.Println("  -engine <name>     Query engine, memory or sqlite (env: SONGDASH_ENGINE, default: memory)")
	fmt.Println("  -log-level <lvl>   debug, info, warn or fatal (env: SONGDASH_LOG_LEVEL, default: info)")
	fmt.Println("  -no-color          Disable coloured log output")
	fmt.Println("\nFilter Options (every view command):")
	fmt.Println("  -keys <list>       Comma-separated keys, e.g. \"C,F♯ / G♭,Eb\" (default: all keys; \"\" selects none)")
	fmt.Println("  -tempo-min <bpm>   Lower tempo bound (default: 120, clamped to the dataset)")
	fmt.Println("  -tempo-max <bpm>   Upper tempo bound (default: 130, clamped to the dataset)")
	fmt.Println("\nUsage:")
	fmt.Println("  songdash [global-options] overview [filters]")
	fmt.Println("  songdash [global-options] insights [filters] [-chart keys.svg] [-tempo-chart tempo.png]")
	fmt.Println("  songdash [global-options] explore [filters] [-feature Energy] [-chart energy.svg]")
	fmt.Println("  songdash [global-options] rank [filters] [-feature Popularity] [-n 10]")
	fmt.Println("  songdash [global-options] keys")
	fmt.Println("  songdash [global-options] export [filters] [-dir charts] [-format svg]")
	fmt.Println("  songdash [global-options] shell")
	fmt.Println("\nExamples:")
	fmt.Println("  # Top 5 most danceable songs between 124 and 126 BPM")
	fmt.Println("  songdash rank -feature Danceability -n 5 -tempo-min 124 -tempo-max 126")
	fmt.Println()
	fmt.Println("  # Energy distribution of songs in A or F# minor's relative keys, as PNG")
	fmt.Println("  songdash -engine sqlite explore -keys \"A,F#\" -chart energy.png")
}
