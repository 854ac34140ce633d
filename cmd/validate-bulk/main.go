// Command validate-bulk drives the full bulk validation lifecycle
// against the API: request an upload slot, upload the file to the
// pre-signed destination, then poll the job until it reaches a
// terminal state, printing a step-by-step report.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ignite/sendgrid-client/internal/config"
	"github.com/ignite/sendgrid-client/internal/pkg/logger"
	"github.com/ignite/sendgrid-client/internal/validation"
)

type stepResult struct {
	Name    string
	Passed  bool
	Detail  string
	Elapsed time.Duration
}

func main() {
	var (
		configPath   = flag.String("config", "", "path to YAML config (optional, env vars apply on top)")
		filePath     = flag.String("file", "", "CSV or ZIP file of addresses to validate (required)")
		fileType     = flag.String("type", "csv", "file type: csv or zip")
		pollInterval = flag.Duration("poll-interval", 10*time.Second, "delay between job status probes")
		maxWait      = flag.Duration("max-wait", 30*time.Minute, "give up if the job is not terminal by then")
	)
	flag.Parse()

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "-file is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: loading config: %v\n", err)
		os.Exit(1)
	}
	logger.SetLevel(logger.ParseLevel(cfg.LogLevel))

	fileData, err := os.ReadFile(*filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: reading %s: %v\n", *filePath, err)
		os.Exit(1)
	}

	fmt.Println("=========================================================")
	fmt.Println(" Bulk Email Validation")
	fmt.Println("=========================================================")
	fmt.Printf("File:               %s (%d bytes, %s)\n", *filePath, len(fileData), *fileType)
	fmt.Printf("Poll interval:      %s\n", *pollInterval)
	fmt.Printf("Max wait:           %s\n", *maxWait)
	fmt.Println("---------------------------------------------------------")

	client := validation.NewClient(cfg.Validation, nil)

	ctx, cancel := context.WithTimeout(context.Background(), *maxWait)
	defer cancel()

	var results []stepResult

	// Step 1: request an upload slot
	start := time.Now()
	slot, err := client.RequestUploadSlot(ctx, validation.FileType(*fileType))
	if err != nil {
		results = append(results, stepResult{"Request upload slot", false, err.Error(), time.Since(start)})
		report(results)
		os.Exit(1)
	}
	results = append(results, stepResult{
		"Request upload slot", true,
		fmt.Sprintf("job_id=%s headers=%d", slot.JobID, len(slot.UploadHeaders)),
		time.Since(start),
	})

	// Step 2: upload the file to the pre-signed destination
	start = time.Now()
	ok, jobID, err := client.UploadFile(ctx, slot, fileData)
	if err != nil {
		results = append(results, stepResult{"Upload file", false, err.Error(), time.Since(start)})
		report(results)
		os.Exit(1)
	}
	results = append(results, stepResult{
		"Upload file", ok,
		fmt.Sprintf("job_id=%s accepted=%v", jobID, ok),
		time.Since(start),
	})
	if !ok {
		report(results)
		os.Exit(1)
	}

	// Step 3: poll until terminal
	start = time.Now()
	job, err := pollUntilTerminal(ctx, client, jobID, *pollInterval)
	if err != nil {
		results = append(results, stepResult{"Poll job status", false, err.Error(), time.Since(start)})
		report(results)
		os.Exit(1)
	}

	detail := fmt.Sprintf("status=%s segments=%d/%d", job.Status, job.SegmentsProcessed, job.Segments)
	if job.IsDownloadAvailable != nil {
		detail += fmt.Sprintf(" download_available=%v", *job.IsDownloadAvailable)
	}
	if len(job.Errors) > 0 {
		msgs := make([]string, len(job.Errors))
		for i, e := range job.Errors {
			msgs[i] = e.Message
		}
		detail += "\nerrors: " + strings.Join(msgs, "; ")
	}
	results = append(results, stepResult{
		"Poll job status",
		job.Status == validation.JobStatusDone,
		detail,
		time.Since(start),
	})

	report(results)
	if job.Status != validation.JobStatusDone {
		os.Exit(1)
	}
}

// pollUntilTerminal probes the job on a fixed cadence until it
// reports Done or Error, or the context expires.
func pollUntilTerminal(ctx context.Context, client *validation.Client, jobID string, interval time.Duration) (*validation.Job, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		job, err := client.CheckJob(ctx, jobID)
		if err != nil {
			return nil, err
		}
		fmt.Printf("  job %s: %s (%d/%d segments)\n", job.ID, job.Status, job.SegmentsProcessed, job.Segments)
		if job.Status.Terminal() {
			return job, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("job %s not terminal before deadline: %w", jobID, ctx.Err())
		case <-ticker.C:
		}
	}
}

func report(results []stepResult) {
	fmt.Println()
	fmt.Println("=========================================================")
	fmt.Println(" BULK VALIDATION REPORT")
	fmt.Println("=========================================================")

	allPassed := true
	for i, r := range results {
		status := "PASS ✓"
		if !r.Passed {
			status = "FAIL ✗"
			allPassed = false
		}
		fmt.Printf("  [%d] %-30s %s  (%s)\n", i+1, r.Name, status, r.Elapsed.Round(time.Millisecond))
		if r.Detail != "" {
			for _, line := range strings.Split(r.Detail, "\n") {
				fmt.Printf("      %s\n", line)
			}
		}
	}

	fmt.Println("=========================================================")
	if allPassed {
		fmt.Println("  OVERALL: PASS ✓")
	} else {
		fmt.Println("  OVERALL: FAIL ✗")
	}
	fmt.Println("=========================================================")
}
