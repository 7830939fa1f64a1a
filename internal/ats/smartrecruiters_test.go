package ats

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirelens/hirelens/internal/fetch"
)

func smartRecruitersPage(total, count, offset int) string {
	items := make([]string, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, fmt.Sprintf(`{
		  "id": "744%04d",
		  "name": "Engineer %d",
		  "location": {"city": "Berlin", "region": "BE", "country": "de", "remote": false},
		  "department": {"label": "Engineering"}
		}`, offset+i, offset+i))
	}
	return fmt.Sprintf(`{"totalFound":%d,"offset":%d,"limit":%d,"content":[%s]}`,
		total, offset, count, strings.Join(items, ","))
}

func TestSmartRecruitersProbe(t *testing.T) {
	client := &fakeFetcher{handler: respondBody(smartRecruitersPage(42, 1, 0))}

	board, err := smartRecruiters{}.Probe(context.Background(), client, "acme")
	require.NoError(t, err)
	require.True(t, board.Exists)
	assert.Equal(t, "https://careers.smartrecruiters.com/acme", board.CareersURL)
	require.Len(t, board.Jobs, 1)
	assert.Equal(t, "Berlin, BE, de", board.Jobs[0].Location)
	assert.Equal(t, "Engineering", board.Jobs[0].Department)
	assert.Equal(t, "https://jobs.smartrecruiters.com/acme/7440000", board.Jobs[0].URL)

	require.Len(t, client.requests, 1)
	assert.Equal(t,
		"https://api.smartrecruiters.com/v1/companies/acme/postings?limit=1&offset=0",
		client.requests[0].URL)
}

func TestSmartRecruitersRemotePosting(t *testing.T) {
	client := &fakeFetcher{handler: respondBody(`{
	  "totalFound": 1,
	  "content": [{
	    "id": "1",
	    "name": "Data Engineer",
	    "location": {"city": "", "region": "", "country": "us", "remote": true},
	    "department": {}
	  }]
	}`)}

	board, err := smartRecruiters{}.Probe(context.Background(), client, "acme")
	require.NoError(t, err)
	require.Len(t, board.Jobs, 1)
	assert.Equal(t, "Remote, us", board.Jobs[0].Location)
}

func TestSmartRecruitersCollectPaginates(t *testing.T) {
	client := &fakeFetcher{}
	client.handler = func(req fetch.Request) (*fetch.Response, error) {
		switch {
		case strings.Contains(req.URL, "offset=0"):
			return &fetch.Response{StatusCode: http.StatusOK, Header: http.Header{}, Body: []byte(smartRecruitersPage(130, 100, 0))}, nil
		case strings.Contains(req.URL, "offset=100"):
			return &fetch.Response{StatusCode: http.StatusOK, Header: http.Header{}, Body: []byte(smartRecruitersPage(130, 30, 100))}, nil
		default:
			return nil, respondStatusErr(http.StatusBadRequest, req.URL)
		}
	}

	board, pages, err := smartRecruiters{}.Collect(context.Background(), client, "acme")
	require.NoError(t, err)
	assert.Equal(t, 2, pages)
	assert.Len(t, board.Jobs, 130)
	require.Len(t, client.requests, 2)
	assert.Contains(t, client.requests[0].URL, "limit=100&offset=0")
	assert.Contains(t, client.requests[1].URL, "limit=100&offset=100")
}

func TestSmartRecruitersMiss(t *testing.T) {
	client := &fakeFetcher{handler: respondStatus(http.StatusNotFound)}

	board, err := smartRecruiters{}.Probe(context.Background(), client, "nosuch")
	require.NoError(t, err)
	assert.False(t, board.Exists)
}
