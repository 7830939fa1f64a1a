package slack

import (
	"strings"
	"testing"
	"time"

	"github.com/hirelens/hirelens/internal/observability/notify"
)

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("expected error when webhook url missing")
	}
}

func TestFormatMessageIncludesFields(t *testing.T) {
	client, err := NewClient(Config{
		WebhookURL: "https://hooks.slack.com/services/test",
		Channel:    "#alerts",
		Username:   "bot",
		Timeout:    time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := client.formatMessage(notify.PassFailurePayload{
		PassID:     "4f1c2d3e",
		Mode:       "discovery",
		Trigger:    "schedule",
		Error:      "probe seeds: context deadline exceeded",
		ErrorClass: "timeout",
	})

	if msg["username"] != "bot" {
		t.Fatalf("expected username to be preserved, got %v", msg["username"])
	}
	if msg["channel"] != "#alerts" {
		t.Fatalf("expected channel to be set, got %v", msg["channel"])
	}

	text, ok := msg["text"].(string)
	if !ok {
		t.Fatalf("expected text field")
	}
	if !containsAll(
		text,
		[]string{"Pass failure alert", "4f1c2d3e", "discovery", "schedule", "context deadline exceeded", "timeout"},
	) {
		t.Fatalf("message text missing fields: %s", text)
	}
}

func TestFormatMessageStatusLink(t *testing.T) {
	client, err := NewClient(Config{
		WebhookURL: "https://hooks.slack.com/services/test",
		StatusURL:  "https://hirelens.internal/api/status",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := client.formatMessage(notify.PassFailurePayload{
		PassID: "4f1c2d3e",
		Mode:   "refresh",
	})

	text, ok := msg["text"].(string)
	if !ok {
		t.Fatalf("expected text field")
	}

	expected := "<https://hirelens.internal/api/status|pass history>"
	if !strings.Contains(text, expected) {
		t.Fatalf("expected status link %q in text: %s", expected, text)
	}
}

func TestFormatMessageEscapesError(t *testing.T) {
	client, err := NewClient(Config{
		WebhookURL: "https://hooks.slack.com/services/test",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := client.formatMessage(notify.PassFailurePayload{
		PassID: "4f1c2d3e",
		Error:  "fetch <https://boards.example/jobs?dept=eng&page=2>: 503",
	})

	text, ok := msg["text"].(string)
	if !ok {
		t.Fatalf("expected text field")
	}

	if !strings.Contains(text, "&lt;https://boards.example/jobs?dept=eng&amp;page=2&gt;") {
		t.Fatalf("expected escaped error text, got: %s", text)
	}
}

func TestBuildStatusLinkPermutations(t *testing.T) {
	tcs := []struct {
		name      string
		statusURL string
		want      string
	}{
		{
			name:      "valid url",
			statusURL: "https://hirelens.internal/api/status",
			want:      "<https://hirelens.internal/api/status|pass history>",
		},
		{
			name:      "not a url",
			statusURL: "not a url",
			want:      "",
		},
		{
			name:      "missing scheme",
			statusURL: "hirelens.internal/api/status",
			want:      "",
		},
		{
			name: "unset",
			want: "",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			client, err := NewClient(Config{
				WebhookURL: "https://hooks.slack.com/services/test",
				StatusURL:  tc.statusURL,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := client.buildStatusLink()
			if got != tc.want {
				t.Fatalf("buildStatusLink() with %q = %q, want %q", tc.statusURL, got, tc.want)
			}
		})
	}
}

func containsAll(text string, substrs []string) bool {
	for _, s := range substrs {
		if !strings.Contains(text, s) {
			return false
		}
	}
	return true
}
