package ats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirelens/hirelens/internal/fetch"
)

func workdayPage(total, count, offset int) string {
	postings := make([]string, 0, count)
	for i := 0; i < count; i++ {
		postings = append(postings, fmt.Sprintf(
			`{"title":"Engineer %d","externalPath":"/job/ENG-%d","locationsText":"Austin, TX"}`,
			offset+i, offset+i))
	}
	return fmt.Sprintf(`{"total":%d,"jobPostings":[%s]}`, total, strings.Join(postings, ","))
}

func TestWorkdayProbe(t *testing.T) {
	client := &fakeFetcher{handler: respondBody(workdayPage(120, 1, 0))}

	board, err := workday{}.Probe(context.Background(), client, "acme")
	require.NoError(t, err)
	require.True(t, board.Exists)
	assert.Equal(t, "https://acme.wd1.myworkdayjobs.com/External", board.CareersURL)
	require.Len(t, board.Jobs, 1)
	assert.Equal(t, "https://acme.wd1.myworkdayjobs.com/job/ENG-0", board.Jobs[0].URL)
	assert.Equal(t, "Austin, TX", board.Jobs[0].Location)

	require.Len(t, client.requests, 1)
	req := client.requests[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "https://acme.wd1.myworkdayjobs.com/wday/cxs/acme/External/jobs", req.URL)
	assert.Equal(t, "workday", req.RateKey)

	var posted workdayRequest
	require.NoError(t, json.Unmarshal(req.Body, &posted))
	assert.Equal(t, 1, posted.Limit)
	assert.Equal(t, 0, posted.Offset)
}

func TestWorkdayProbeMissOn4xx(t *testing.T) {
	client := &fakeFetcher{handler: respondStatus(http.StatusUnprocessableEntity)}

	board, err := workday{}.Probe(context.Background(), client, "nosuch")
	require.NoError(t, err)
	assert.False(t, board.Exists)
}

func TestWorkdayCollectPaginates(t *testing.T) {
	client := &fakeFetcher{}
	client.handler = func(req fetch.Request) (*fetch.Response, error) {
		// Session bootstrap hits the public board page first.
		if req.Method == "" || req.Method == http.MethodGet {
			header := http.Header{}
			header.Add("Set-Cookie", "CALYPSO_CSRF_TOKEN=tok123; Path=/")
			header.Add("Set-Cookie", "wd-browser-id=abc; Path=/")
			return &fetch.Response{StatusCode: http.StatusOK, Header: header, Body: []byte("<html/>")}, nil
		}

		var posted workdayRequest
		if err := json.Unmarshal(req.Body, &posted); err != nil {
			return nil, err
		}
		count := 50
		if posted.Offset == 50 {
			count = 25
		}
		return &fetch.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{},
			Body:       []byte(workdayPage(75, count, posted.Offset)),
		}, nil
	}

	board, pages, err := workday{}.Collect(context.Background(), client, "acme")
	require.NoError(t, err)
	assert.True(t, board.Exists)
	assert.Equal(t, 2, pages)
	assert.Len(t, board.Jobs, 75)

	// bootstrap GET + two listing POSTs
	require.Len(t, client.requests, 3)
	post := client.requests[1]
	assert.Equal(t, "tok123", post.Header.Get("X-Calypso-Csrf-Token"))
	assert.Contains(t, post.Header.Get("Cookie"), "CALYPSO_CSRF_TOKEN=tok123")
	assert.Contains(t, post.Header.Get("Cookie"), "wd-browser-id=abc")
}

func TestWorkdayCollectZeroJobs(t *testing.T) {
	client := &fakeFetcher{}
	client.handler = func(req fetch.Request) (*fetch.Response, error) {
		if req.Method == http.MethodPost {
			return &fetch.Response{StatusCode: http.StatusOK, Header: http.Header{}, Body: []byte(`{"total":0,"jobPostings":[]}`)}, nil
		}
		return nil, respondStatusErr(http.StatusNotFound, req.URL)
	}

	board, pages, err := workday{}.Collect(context.Background(), client, "acme")
	require.NoError(t, err)
	assert.True(t, board.Exists, "an empty board is still a board")
	assert.Equal(t, 1, pages)
	assert.Empty(t, board.Jobs)
}

func TestWorkdayCollectPartialFailure(t *testing.T) {
	client := &fakeFetcher{}
	client.handler = func(req fetch.Request) (*fetch.Response, error) {
		if req.Method != http.MethodPost {
			return nil, respondStatusErr(http.StatusNotFound, req.URL)
		}
		var posted workdayRequest
		if err := json.Unmarshal(req.Body, &posted); err != nil {
			return nil, err
		}
		if posted.Offset >= 50 {
			return nil, respondStatusErr(http.StatusBadGateway, req.URL)
		}
		return &fetch.Response{StatusCode: http.StatusOK, Header: http.Header{}, Body: []byte(workdayPage(75, 50, 0))}, nil
	}

	board, pages, err := workday{}.Collect(context.Background(), client, "acme")
	require.Error(t, err)
	assert.Equal(t, 1, pages, "first page succeeded before the failure")
	assert.Len(t, board.Jobs, 50)
}
