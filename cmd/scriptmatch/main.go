package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"scriptmatch/config"
	"scriptmatch/logger"
	"scriptmatch/matcher"
	"scriptmatch/store"
	"scriptmatch/tld"
)

func main() {
	configPath := flag.String("c", "config.yaml", "config file path")
	blacklistPath := flag.String("b", "", "plain-text blacklist file overriding the stored option")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.SetLevel(cfg.System.LogLevel)

	resolver := tld.NewResolver()
	resolver.Load(cfg.TLD.CustomSuffixes)

	options, err := store.Open(cfg.Blacklist.File)
	if err != nil {
		logger.Fatalf("Failed to open option store %s: %v", cfg.Blacklist.File, err)
	}

	engine, err := matcher.New(matcher.Options{
		ResultMaxChars: cfg.Matcher.ResultCacheMaxChars,
		Suffixes:       resolver,
		Source:         options,
	})
	if err != nil {
		logger.Fatalf("Failed to create engine: %v", err)
	}

	// A changed stored blacklist re-parses immediately; the override file,
	// when given, wins instead.
	options.OnChange(func(text string) {
		if err := engine.ResetBlacklistText(text); err != nil {
			logger.Errorf("Blacklist rejected: %v", err)
		}
	})

	if *blacklistPath != "" {
		raw, err := os.ReadFile(*blacklistPath)
		if err != nil {
			logger.Fatalf("Failed to read blacklist file %s: %v", *blacklistPath, err)
		}
		err = engine.ResetBlacklistText(string(raw))
		if err != nil {
			logger.Fatalf("Invalid blacklist: %v", err)
		}
	} else if err := engine.ResetBlacklist(nil); err != nil {
		logger.Fatalf("Invalid stored blacklist: %v", err)
	}

	urls := flag.Args()
	if len(urls) == 0 {
		// No URLs on the command line: read them from stdin, one per line.
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if u := strings.TrimSpace(scanner.Text()); u != "" {
				urls = append(urls, u)
			}
		}
		if err := scanner.Err(); err != nil {
			logger.Fatalf("Failed to read stdin: %v", err)
		}
	}

	anyBlocked := false
	for _, u := range urls {
		if rule, blocked := engine.TestBlacklist(u); blocked {
			anyBlocked = true
			fmt.Printf("BLOCKED  %s  (%s)\n", u, rule)
		} else {
			fmt.Printf("ok       %s\n", u)
		}
	}

	stats := engine.Stats()
	logger.Debugf("rules=%d result_cache={hits=%d misses=%d} pattern_cache={hits=%d misses=%d}",
		stats.BlacklistRules,
		stats.ResultCache.Hits, stats.ResultCache.Misses,
		stats.PatternCache.Hits, stats.PatternCache.Misses)

	if anyBlocked {
		os.Exit(1)
	}
}
