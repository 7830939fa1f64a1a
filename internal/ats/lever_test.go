package ats

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const leverFixture = `[
  {
    "text": "Staff Software Engineer",
    "hostedUrl": "https://jobs.lever.co/acme/1111",
    "descriptionPlain": "Build services in Go and Kubernetes.",
    "workplaceType": "remote",
    "categories": {"location": "United States", "team": "Platform", "commitment": "Full-time"}
  },
  {
    "text": "Product Designer",
    "hostedUrl": "https://jobs.lever.co/acme/2222",
    "descriptionPlain": "",
    "workplaceType": "on-site",
    "categories": {"location": "New York, NY", "department": "Design"}
  }
]`

func TestLeverProbeHit(t *testing.T) {
	client := &fakeFetcher{handler: respondBody(leverFixture)}

	board, err := lever{}.Probe(context.Background(), client, "acme")
	require.NoError(t, err)
	require.True(t, board.Exists)
	assert.Equal(t, "https://jobs.lever.co/acme", board.CareersURL)
	require.Len(t, board.Jobs, 2)

	remote := board.Jobs[0]
	assert.Equal(t, "Staff Software Engineer", remote.Title)
	assert.Equal(t, "Remote - United States", remote.Location)
	assert.Equal(t, "Platform", remote.Department, "team is the department fallback")

	onsite := board.Jobs[1]
	assert.Equal(t, "New York, NY", onsite.Location)
	assert.Equal(t, "Design", onsite.Department)

	require.Len(t, client.requests, 1)
	assert.Equal(t, "https://api.lever.co/v0/postings/acme?mode=json", client.requests[0].URL)
	assert.Equal(t, "lever", client.requests[0].RateKey)
}

func TestLeverRemoteWithoutLocation(t *testing.T) {
	client := &fakeFetcher{handler: respondBody(`[
	  {"text": "Support Engineer", "hostedUrl": "https://jobs.lever.co/acme/3", "workplaceType": "remote", "categories": {}}
	]`)}

	board, err := lever{}.Probe(context.Background(), client, "acme")
	require.NoError(t, err)
	require.Len(t, board.Jobs, 1)
	assert.Equal(t, "Remote", board.Jobs[0].Location)
}

func TestLeverProbeMiss(t *testing.T) {
	client := &fakeFetcher{handler: respondStatus(http.StatusNotFound)}

	board, err := lever{}.Probe(context.Background(), client, "nosuch")
	require.NoError(t, err)
	assert.False(t, board.Exists)
}
