package statsd

import (
	"net"
	"strings"
	"testing"
)

func TestScrubName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		" pass/metric ":   "pass_metric",
		"foo..bar":        "foo.bar",
		"two  spaces":     "two__spaces",
		"probe/seed/hits": "probe_seed_hits",
		"..dotted..":      "dotted",
		"":                "",
	}

	for input, want := range tests {
		if got := scrubName(input); got != want {
			t.Fatalf("scrubName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestQualify(t *testing.T) {
	t.Parallel()

	c := &Client{prefix: "hirelens"}
	if got := c.qualify("pass.duration"); got != "hirelens.pass.duration" {
		t.Fatalf("qualify = %q", got)
	}

	bare := &Client{}
	if got := bare.qualify("pass.duration"); got != "pass.duration" {
		t.Fatalf("qualify without prefix = %q", got)
	}
}

func TestTagSuffix(t *testing.T) {
	t.Parallel()

	global := map[string]string{
		"env": "prod",
		// Padded key/value to exercise the trimming path.
		" service ": " collector ",
	}
	local := map[string]string{
		"result": " success ",
		"":       "ignored",
		"env":    "stage",
	}

	got := tagSuffix(global, local)
	want := "|#env:stage,result:success,service:collector"

	if got != want {
		t.Fatalf("tagSuffix mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestTagSuffixEmpty(t *testing.T) {
	t.Parallel()

	if got := tagSuffix(nil, nil); got != "" {
		t.Fatalf("tagSuffix(nil, nil) = %q, want empty string", got)
	}
}

func TestCopyTagsReturnsCopy(t *testing.T) {
	t.Parallel()

	original := map[string]string{
		"env": "prod",
		"":    "ignored",
	}

	cloned := copyTags(original)
	if cloned == nil {
		t.Fatal("copyTags returned nil map")
	}

	cloned["env"] = "stage"
	if original["env"] != "prod" {
		t.Fatal("copyTags did not copy values")
	}

	if _, ok := cloned[""]; ok {
		t.Fatal("copyTags kept empty key")
	}
}

func TestClientEnabledAndClose(t *testing.T) {
	t.Parallel()

	clientConn, peerConn := net.Pipe()
	defer peerConn.Close()

	client := &Client{
		enabled: true,
		conn:    clientConn,
	}

	if !client.Enabled() {
		t.Fatal("expected client.Enabled to report true with active connection")
	}

	if err := client.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	if client.Enabled() {
		t.Fatal("expected client.Enabled to report false after Close")
	}

	// Close must be idempotent.
	if err := client.Close(); err != nil {
		t.Fatalf("Close (second call) error: %v", err)
	}

	var nilClient *Client
	if nilClient.Enabled() {
		t.Fatal("nil client should report disabled")
	}
	if err := nilClient.Close(); err != nil {
		t.Fatalf("nil client Close error: %v", err)
	}
}

func TestNewClientDisabledWithoutAddress(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{
		Enabled: true,
		Address: "   ",
	})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	if client.Enabled() {
		t.Fatal("expected client to stay disabled when address is empty")
	}
}

func TestNewClientDialError(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Config{
		Enabled: true,
		Address: "bad address",
	})
	if err == nil {
		t.Fatal("expected NewClient to error for invalid address")
	}
	if !strings.Contains(err.Error(), "statsd dial") {
		t.Fatalf("unexpected error: %v", err)
	}
}
