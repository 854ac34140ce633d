package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ignite/sendgrid-client/internal/config"
	"github.com/ignite/sendgrid-client/internal/pkg/logger"
	"github.com/ignite/sendgrid-client/internal/sendgrid"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config (optional, env vars apply on top)")
		to         = flag.String("to", "", "recipient email address (required)")
		from       = flag.String("from", "", "sender email address (required)")
		subject    = flag.String("subject", "sendgrid-client test email", "email subject")
		text       = flag.String("text", "This is a test email sent by cmd/send-test.", "plain text body")
		html       = flag.String("html", "", "optional HTML body")
	)
	flag.Parse()

	if *to == "" || *from == "" {
		fmt.Fprintln(os.Stderr, "both -to and -from are required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: loading config: %v\n", err)
		os.Exit(1)
	}
	logger.SetLevel(logger.ParseLevel(cfg.LogLevel))

	client := sendgrid.NewClient(cfg.SendGrid, nil)

	content := []sendgrid.Content{{Type: "text/plain", Value: *text}}
	if *html != "" {
		content = append(content, sendgrid.Content{Type: "text/html", Value: *html})
	}

	email := &sendgrid.Email[sendgrid.NoTemplateData]{
		Personalizations: []sendgrid.Personalization[sendgrid.NoTemplateData]{
			{To: []sendgrid.EmailAddress{{Email: *to}}},
		},
		From:    sendgrid.EmailAddress{Email: *from},
		Subject: *subject,
		Content: content,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	start := time.Now()
	if err := sendgrid.Send(ctx, client, email); err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: send failed after %s: %v\n", time.Since(start).Round(time.Millisecond), err)
		os.Exit(1)
	}

	fmt.Printf("OK: email to %s accepted in %s\n", logger.RedactEmail(*to), time.Since(start).Round(time.Millisecond))
}
