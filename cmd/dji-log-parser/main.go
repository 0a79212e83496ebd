package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kevincowleys/dji-log-parser/internal/config"
	"github.com/kevincowleys/dji-log-parser/internal/dlperrors"
	"github.com/kevincowleys/dji-log-parser/internal/keychain"
	"github.com/kevincowleys/dji-log-parser/internal/keychainapi"
	"github.com/kevincowleys/dji-log-parser/internal/layout"
	"github.com/kevincowleys/dji-log-parser/internal/logger"
	"github.com/kevincowleys/dji-log-parser/parser"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	apiKey := flag.String("api-key", "", "DJI keychain API key (overrides the config file)")
	endpoint := flag.String("endpoint", "", "Keychain HTTP endpoint (overrides the config file)")
	department := flag.Int("department", -1, "Override the log file's own department byte")
	jsonLogs := flag.Bool("json-logs", false, "Emit structured JSON log lines instead of plain text")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: dji-log-parser [flags] <flight-log-file>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	logPath := flag.Arg(0)

	cfgManager := config.NewManager(*configPath)
	if err := cfgManager.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg := cfgManager.Get()

	if err := logger.Init(cfg.Logging.FilePath, cfg.Logging.MaxSizeMB, cfg.Logging.MaxBackups, cfg.Logging.Debug); err != nil {
		log.Printf("[WARN] Failed to initialize file logging: %v (continuing with stdout only)", err)
		if err := logger.Init("", 0, 0, cfg.Logging.Debug); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
	}
	defer logger.Get().Close()
	logger.SetJSONLogs(*jsonLogs)

	logger.Printf("Parsing %s", logPath)

	data, err := os.ReadFile(logPath)
	if err != nil {
		logger.Fatal("Failed to read %s: %v", logPath, err)
	}

	p, err := parser.Open(data)
	if err != nil {
		logger.Fatal("Failed to open flight log: %v", err)
	}
	logger.Printf("Container version %d, product %s", p.Version, p.Details.ProductType.String())

	endpointURL := cfg.Keychain.Endpoint
	if *endpoint != "" {
		endpointURL = *endpoint
	}
	key := cfg.Keychain.ApiKey
	if *apiKey != "" {
		key = *apiKey
	}

	var dept *layout.Department
	if *department >= 0 {
		d := layout.ParseDepartment(byte(*department))
		dept = &d
	}

	var keychains []keychain.Keychain
	if p.Version >= 13 {
		if key == "" {
			logger.Fatal("This log file requires a keychain API key; pass --api-key or set it in %s", *configPath)
		}

		req, err := p.KeychainsRequestWithCustomParams(dept, nil)
		if err != nil {
			logger.Fatal("Failed to build keychain request: %v", err)
		}

		client := keychainapi.NewClient(key)
		if endpointURL != "" {
			client.Endpoint = endpointURL
		}

		logger.Debug("Fetching %d keychain group(s) from %s", len(req.KeychainArray), client.Endpoint)
		result := <-client.FetchAsync(req)
		if result.Err != nil {
			if errors.Is(result.Err, dlperrors.ErrApiKey) {
				logger.Fatal("Keychain endpoint rejected the API key")
			}
			logger.Fatal("Failed to fetch keychains: %v", result.Err)
		}
		keychains = result.Groups
	}

	frames, err := p.Frames(keychains)
	if err != nil {
		logger.Fatal("Failed to decode frames: %v", err)
	}
	logger.Printf("Decoded %d frames", len(frames))

	encoder := json.NewEncoder(os.Stdout)
	if cfg.Output.Pretty {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(frames); err != nil {
		logger.Fatal("Failed to encode frames: %v", err)
	}
}
