// stats_retry_probe.go
//
// Live probe for the 202 retry path. The statistics endpoints answer 202
// Accepted until GitHub finishes computing results, so hitting a large,
// rarely-queried repository exercises the full retry loop against the real
// service. Run it directly:
//
//	GITHUB_API_TOKEN=ghp_... go run ./test -repo torvalds/linux
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	githubbridge "github.com/opengovern/github-bridge"
	"github.com/opengovern/github-bridge/resources"
)

// probeTelemetry counts physical attempts so the probe can report how many
// rounds the 202 loop took.
type probeTelemetry struct {
	calls int
}

func (t *probeTelemetry) RequestDone(method, url string, statusCode, attempts int, elapsed time.Duration, requestID string) {
	t.calls++
	log.Printf("call %d: %s %s -> %d after %d attempt(s) in %v (request id %s)",
		t.calls, method, url, statusCode, attempts, elapsed.Round(time.Millisecond), requestID)
}

func main() {
	repoFlag := flag.String("repo", "", "Repository as owner/name or URL")
	delayFlag := flag.Duration("retry-delay", 3*time.Second, "Sleep between 202 retries")
	maxRetriesFlag := flag.Int("max-retries", 20, "Retry budget before giving up")
	flag.Parse()

	token := os.Getenv("GITHUB_API_TOKEN")
	if token == "" {
		log.Fatal("GITHUB_API_TOKEN environment variable not set")
	}
	if *repoFlag == "" {
		log.Fatal("You must provide -repo")
	}

	owner, name := githubbridge.SplitRepositoryURL(*repoFlag)
	if owner == "" {
		// Allow plain owner/name without a scheme.
		owner, name = githubbridge.SplitRepositoryURL("https://github.com/" + *repoFlag)
	}
	if owner == "" || name == "" {
		log.Fatalf("Cannot parse repository from %q", *repoFlag)
	}

	config := githubbridge.DefaultConfig()
	config.AuthToken = token
	config.RetryDelay = *delayFlag
	config.MaxRetries = *maxRetriesFlag

	bridge := githubbridge.NewGitHubBridge(config)

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	bridge.SetLogger(logger)

	telemetry := &probeTelemetry{}
	bridge.SetTelemetryHook(telemetry)

	client := resources.NewClient(bridge)

	started := time.Now()
	stats, err := client.Repositories.GetContributorStats(owner, name)
	elapsed := time.Since(started).Round(time.Millisecond)
	if err != nil {
		var exhausted *githubbridge.RetryExhaustedError
		if errors.As(err, &exhausted) {
			log.Fatalf("Statistics still not ready after %d attempts over %v", exhausted.Attempts, elapsed)
		}
		log.Fatalf("Probe failed after %v: %v", elapsed, err)
	}

	fmt.Printf("Statistics ready: %d contributors after %v\n", len(stats), elapsed)
	if quota := bridge.RateLimitSnapshot(); quota != nil && quota.Remaining != nil && quota.Limit != nil {
		fmt.Printf("Rate limit: %d/%d remaining\n", *quota.Remaining, *quota.Limit)
	}
}
