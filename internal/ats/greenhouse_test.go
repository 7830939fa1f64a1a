package ats

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/hirelens/hirelens/internal/errors"
)

const greenhouseFixture = `{
  "jobs": [
    {
      "title": "Senior Backend Engineer",
      "absolute_url": "https://boards.greenhouse.io/acme/jobs/400001",
      "content": "<p>We use Go and PostgreSQL.</p>",
      "location": {"name": "San Francisco, CA"},
      "departments": [{"name": "Engineering"}]
    },
    {
      "title": "Account Executive",
      "absolute_url": "https://boards.greenhouse.io/acme/jobs/400002",
      "content": "",
      "location": {"name": "Remote"},
      "departments": []
    }
  ],
  "meta": {"total": 2}
}`

func TestGreenhouseProbeHit(t *testing.T) {
	client := &fakeFetcher{handler: respondBody(greenhouseFixture)}

	board, err := greenhouse{}.Probe(context.Background(), client, "acme")
	require.NoError(t, err)
	require.True(t, board.Exists)
	assert.Equal(t, "https://boards.greenhouse.io/acme", board.CareersURL)
	require.Len(t, board.Jobs, 2)

	first := board.Jobs[0]
	assert.Equal(t, "Senior Backend Engineer", first.Title)
	assert.Equal(t, "San Francisco, CA", first.Location)
	assert.Equal(t, "Engineering", first.Department)
	assert.Equal(t, "<p>We use Go and PostgreSQL.</p>", first.Description)

	require.Len(t, client.requests, 1)
	assert.Equal(t, "https://boards-api.greenhouse.io/v1/boards/acme/jobs", client.requests[0].URL)
	assert.Equal(t, "greenhouse", client.requests[0].RateKey)
}

func TestGreenhouseCollectRequestsContent(t *testing.T) {
	client := &fakeFetcher{handler: respondBody(greenhouseFixture)}

	board, pages, err := greenhouse{}.Collect(context.Background(), client, "acme")
	require.NoError(t, err)
	assert.True(t, board.Exists)
	assert.Equal(t, 1, pages)

	require.Len(t, client.requests, 1)
	assert.Equal(t, "https://boards-api.greenhouse.io/v1/boards/acme/jobs?content=true", client.requests[0].URL)
}

func TestGreenhouseProbeMiss(t *testing.T) {
	client := &fakeFetcher{handler: respondStatus(http.StatusNotFound)}

	board, err := greenhouse{}.Probe(context.Background(), client, "nosuch")
	require.NoError(t, err)
	assert.False(t, board.Exists)
}

func TestGreenhouseZeroJobsIsHit(t *testing.T) {
	client := &fakeFetcher{handler: respondBody(`{"jobs":[],"meta":{"total":0}}`)}

	board, err := greenhouse{}.Probe(context.Background(), client, "acme")
	require.NoError(t, err)
	assert.True(t, board.Exists)
	assert.Empty(t, board.Jobs)
}

func TestGreenhouseParseFailure(t *testing.T) {
	client := &fakeFetcher{handler: respondBody(`<html>maintenance</html>`)}

	_, err := greenhouse{}.Probe(context.Background(), client, "acme")
	require.Error(t, err)
	assert.True(t, apperrors.IsParse(err))
}

func TestGreenhouseServerErrorPropagates(t *testing.T) {
	client := &fakeFetcher{handler: respondStatus(http.StatusBadGateway)}

	_, err := greenhouse{}.Probe(context.Background(), client, "acme")
	require.Error(t, err)
	assert.True(t, apperrors.IsHTTP5xx(err))
}
