// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ctgov

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/trialscout/internal/httputil"
	"github.com/pdiddy/trialscout/pkg/types"
)

func testClient() *Client {
	return &Client{HTTP: httputil.NewClient(types.HTTPConfig{}, 0)}
}

func TestSearchByInterventionFollowsPages(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		q := r.URL.Query()
		assert.Equal(t, "metformin", q.Get("query.intr"))
		assert.Equal(t, "json", q.Get("format"))
		switch n {
		case 1:
			assert.Equal(t, "3", q.Get("pageSize"))
			assert.Empty(t, q.Get("pageToken"))
			fmt.Fprint(w, `{"studies":[{"protocolSection":{"identificationModule":{"nctId":"NCT1"}}},{"protocolSection":{"identificationModule":{"nctId":"NCT2"}}}],"nextPageToken":"tok2"}`)
		case 2:
			assert.Equal(t, "1", q.Get("pageSize"))
			assert.Equal(t, "tok2", q.Get("pageToken"))
			fmt.Fprint(w, `{"studies":[{"protocolSection":{"identificationModule":{"nctId":"NCT3"}}}],"nextPageToken":"tok3"}`)
		default:
			t.Errorf("unexpected page request %d", n)
		}
	}))
	defer ts.Close()
	defer SetBaseURL(ts.URL)()

	studies, err := testClient().SearchByIntervention(context.Background(), "metformin", 3)
	require.NoError(t, err)
	require.Len(t, studies, 3)
	assert.Equal(t, "NCT3", studies[2].ID())
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestSearchByInterventionStopsWithoutToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"studies":[{"protocolSection":{"identificationModule":{"nctId":"NCT1"}}}]}`)
	}))
	defer ts.Close()
	defer SetBaseURL(ts.URL)()

	studies, err := testClient().SearchByIntervention(context.Background(), "x", 0)
	require.NoError(t, err)
	assert.Len(t, studies, 1)
}

func TestSearchByInterventionNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()
	defer SetBaseURL(ts.URL)()

	_, err := testClient().SearchByIntervention(context.Background(), "x", 10)
	assert.ErrorIs(t, err, httputil.ErrNotFound)
}

func TestStudyTrial(t *testing.T) {
	var s Study
	p := &s.ProtocolSection
	p.IdentificationModule.NCTID = "NCT04280705"
	p.IdentificationModule.OfficialTitle = "Adaptive COVID-19 Treatment Trial"
	p.StatusModule.OverallStatus = "COMPLETED"
	p.StatusModule.StartDate.Date = "2020-02-21"
	p.StatusModule.PrimaryComplete.Date = "2020-04-19"
	p.SponsorCollaboratorsModule.LeadSponsor.Name = "NIAID"
	p.DescriptionModule.BriefSummary = "Remdesivir vs placebo."
	p.DesignModule.Phases = []string{"PHASE2", "PHASE3"}
	p.DesignModule.EnrollmentInfo.Count = 1062
	p.ArmsInterventionsModule.Interventions = []Intervention{{Type: "DRUG", Name: "Remdesivir", OtherNames: []string{"GS-5734"}}}

	tr := s.Trial()
	assert.Equal(t, "NCT04280705", tr.ID)
	assert.Equal(t, "Adaptive COVID-19 Treatment Trial", tr.Title, "falls back to official title")
	assert.Equal(t, "2020-04-19", tr.CompletionDate, "falls back to primary completion")
	assert.Equal(t, "PHASE2/PHASE3", tr.Phase)
	assert.Equal(t, 1062, tr.Enrollment)
	assert.Equal(t, "https://clinicaltrials.gov/study/NCT04280705", tr.URL)
	require.Len(t, tr.Interventions, 1)
	assert.Equal(t, []string{"GS-5734"}, tr.Interventions[0].OtherNames)
	assert.Empty(t, tr.MatchedNames)
}

func TestStudyTrialMissingModules(t *testing.T) {
	tr := Study{}.Trial()
	assert.Equal(t, "N/A", tr.Phase)
	assert.NotNil(t, tr.Interventions)
	assert.Equal(t, 0, tr.Enrollment)
}
