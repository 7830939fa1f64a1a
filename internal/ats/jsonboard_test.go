package ats

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirelens/hirelens/internal/domain/model"
	apperrors "github.com/hirelens/hirelens/internal/errors"
)

func TestWorkableProbe(t *testing.T) {
	client := &fakeFetcher{handler: respondBody(`{
	  "name": "Acme",
	  "jobs": [
	    {
	      "title": "Platform Engineer",
	      "city": "Austin",
	      "state": "Texas",
	      "country": "United States",
	      "department": "Infrastructure",
	      "url": "https://apply.workable.com/acme/j/ABC123/",
	      "telecommuting": true
	    },
	    {
	      "title": "Office Manager",
	      "city": "Athens",
	      "state": "",
	      "country": "Greece",
	      "department": "",
	      "url": "https://apply.workable.com/acme/j/DEF456/",
	      "telecommuting": false
	    }
	  ]
	}`)}

	p := newWorkable()
	board, err := p.Probe(context.Background(), client, "acme")
	require.NoError(t, err)
	require.True(t, board.Exists)
	assert.Equal(t, model.ATSWorkable, p.Type())
	assert.Equal(t, "https://apply.workable.com/acme/", board.CareersURL)
	require.Len(t, board.Jobs, 2)

	assert.Equal(t, "Remote, Austin, Texas, United States", board.Jobs[0].Location)
	assert.Equal(t, "Infrastructure", board.Jobs[0].Department)
	assert.Equal(t, "Athens, Greece", board.Jobs[1].Location)

	require.Len(t, client.requests, 1)
	assert.Equal(t, "https://apply.workable.com/api/v1/widget/accounts/acme", client.requests[0].URL)
}

func TestWorkableZeroJobsIsHit(t *testing.T) {
	client := &fakeFetcher{handler: respondBody(`{"name":"Acme","jobs":[]}`)}

	board, err := newWorkable().Probe(context.Background(), client, "acme")
	require.NoError(t, err)
	assert.True(t, board.Exists)
	assert.Empty(t, board.Jobs)
}

func TestBreezyProbe(t *testing.T) {
	client := &fakeFetcher{handler: respondBody(`[
	  {
	    "name": "iOS Developer",
	    "url": "https://acme.breezy.hr/p/1111-ios-developer",
	    "department": "Mobile",
	    "location": {"city": "Toronto", "country": {"name": "Canada"}, "is_remote": false}
	  },
	  {
	    "name": "Backend Developer",
	    "url": "https://acme.breezy.hr/p/2222-backend-developer",
	    "department": "Engineering",
	    "location": {"city": "", "country": {"name": "Canada"}, "is_remote": true}
	  }
	]`)}

	p := newBreezy()
	board, err := p.Probe(context.Background(), client, "acme")
	require.NoError(t, err)
	require.True(t, board.Exists)
	require.Len(t, board.Jobs, 2)

	assert.Equal(t, "Toronto, Canada", board.Jobs[0].Location)
	assert.Equal(t, "Remote, Canada", board.Jobs[1].Location)

	require.Len(t, client.requests, 1)
	assert.Equal(t, "https://acme.breezy.hr/json", client.requests[0].URL)
}

func TestBreezyRejectsNonArrayPayload(t *testing.T) {
	client := &fakeFetcher{handler: respondBody(`{"error":"unknown company"}`)}

	_, err := newBreezy().Probe(context.Background(), client, "acme")
	require.Error(t, err)
	assert.True(t, apperrors.IsParse(err))
}

func TestRecruiteeProbe(t *testing.T) {
	client := &fakeFetcher{handler: respondBody(`{
	  "offers": [
	    {
	      "title": "DevOps Engineer",
	      "location": "Amsterdam, Netherlands",
	      "department": "Engineering",
	      "careers_url": "https://acme.recruitee.com/o/devops-engineer",
	      "description": "<p>Terraform and AWS daily.</p>",
	      "remote": false
	    },
	    {
	      "title": "Technical Writer",
	      "location": "Poland",
	      "department": "Docs",
	      "careers_url": "https://acme.recruitee.com/o/technical-writer",
	      "remote": true
	    }
	  ]
	}`)}

	board, err := newRecruitee().Probe(context.Background(), client, "acme")
	require.NoError(t, err)
	require.True(t, board.Exists)
	require.Len(t, board.Jobs, 2)

	assert.Equal(t, "Amsterdam, Netherlands", board.Jobs[0].Location)
	assert.Equal(t, "<p>Terraform and AWS daily.</p>", board.Jobs[0].Description)
	assert.Equal(t, "Remote, Poland", board.Jobs[1].Location)

	require.Len(t, client.requests, 1)
	assert.Equal(t, "https://acme.recruitee.com/api/offers/", client.requests[0].URL)
}

func TestPinpointProbe(t *testing.T) {
	client := &fakeFetcher{handler: respondBody(`{
	  "data": [
	    {
	      "title": "Customer Success Manager",
	      "location": {"name": "London, United Kingdom"},
	      "department": {"name": "Support"},
	      "url": "https://acme.pinpointhq.com/postings/1234"
	    }
	  ]
	}`)}

	board, err := newPinpoint().Probe(context.Background(), client, "acme")
	require.NoError(t, err)
	require.True(t, board.Exists)
	require.Len(t, board.Jobs, 1)
	assert.Equal(t, "London, United Kingdom", board.Jobs[0].Location)
	assert.Equal(t, "Support", board.Jobs[0].Department)

	require.Len(t, client.requests, 1)
	assert.Equal(t, "https://acme.pinpointhq.com/postings.json", client.requests[0].URL)
}

func TestJSONBoardMiss(t *testing.T) {
	for _, p := range []Provider{newWorkable(), newBreezy(), newRecruitee(), newPinpoint()} {
		client := &fakeFetcher{handler: respondStatus(http.StatusNotFound)}
		board, err := p.Probe(context.Background(), client, "nosuch")
		require.NoError(t, err, "provider %s", p.Type())
		assert.False(t, board.Exists, "provider %s", p.Type())
	}
}

func TestJSONBoardCollectSinglePage(t *testing.T) {
	client := &fakeFetcher{handler: respondBody(`{"offers":[{"title":"QA Engineer","location":"Warsaw, Poland"}]}`)}

	board, pages, err := newRecruitee().Collect(context.Background(), client, "acme")
	require.NoError(t, err)
	assert.True(t, board.Exists)
	assert.Equal(t, 1, pages)
	assert.Len(t, board.Jobs, 1)
}
