// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ctgov is a client for the ClinicalTrials.gov v2 studies API. It is
// shared by the trials-registry name source and the trial aggregation
// pipeline.
package ctgov

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/trialscout/internal/httputil"
	"github.com/pdiddy/trialscout/pkg/types"
)

// studiesBase is the v2 studies endpoint. Declared as a var so tests can
// substitute an httptest server.
var studiesBase = "https://clinicaltrials.gov/api/v2/studies"

// SetBaseURL points the client at another studies endpoint and returns a
// func restoring the previous one. Tests in other packages use it.
func SetBaseURL(u string) (restore func()) {
	old := studiesBase
	studiesBase = u
	return func() { studiesBase = old }
}

const (
	// maxPageSize is the largest page the API serves.
	maxPageSize     = 1000
	defaultPageSize = 100
	studyURLPrefix  = "https://clinicaltrials.gov/study/"
)

// Client queries ClinicalTrials.gov.
type Client struct {
	HTTP *httputil.Client
}

// SearchByIntervention returns up to limit studies whose interventions
// match name. Pages are followed until limit studies are read or the
// registry runs out.
func (c *Client) SearchByIntervention(ctx context.Context, name string, limit int) ([]Study, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}

	var studies []Study
	token := ""
	for len(studies) < limit {
		pageSize := limit - len(studies)
		if pageSize > maxPageSize {
			pageSize = maxPageSize
		}
		params := url.Values{
			"query.intr": {name},
			"pageSize":   {strconv.Itoa(pageSize)},
			"format":     {"json"},
		}
		if token != "" {
			params.Set("pageToken", token)
		}

		var page studiesResponse
		if err := c.HTTP.GetJSON(ctx, studiesBase+"?"+params.Encode(), &page); err != nil {
			return studies, fmt.Errorf("ClinicalTrials.gov search: %w", err)
		}
		studies = append(studies, page.Studies...)
		if page.NextPageToken == "" || len(page.Studies) == 0 {
			break
		}
		token = page.NextPageToken
	}
	if len(studies) > limit {
		studies = studies[:limit]
	}
	return studies, nil
}

// Study is one study record, trimmed to the modules we read. Every nested
// module may be missing; zero values are used in that case.
type Study struct {
	ProtocolSection struct {
		IdentificationModule struct {
			NCTID         string `json:"nctId"`
			BriefTitle    string `json:"briefTitle"`
			OfficialTitle string `json:"officialTitle"`
		} `json:"identificationModule"`
		StatusModule struct {
			OverallStatus   string     `json:"overallStatus"`
			StartDate       dateStruct `json:"startDateStruct"`
			CompletionDate  dateStruct `json:"completionDateStruct"`
			PrimaryComplete dateStruct `json:"primaryCompletionDateStruct"`
		} `json:"statusModule"`
		SponsorCollaboratorsModule struct {
			LeadSponsor struct {
				Name string `json:"name"`
			} `json:"leadSponsor"`
		} `json:"sponsorCollaboratorsModule"`
		DescriptionModule struct {
			BriefSummary string `json:"briefSummary"`
		} `json:"descriptionModule"`
		DesignModule struct {
			Phases         []string `json:"phases"`
			EnrollmentInfo struct {
				Count int `json:"count"`
			} `json:"enrollmentInfo"`
		} `json:"designModule"`
		ArmsInterventionsModule struct {
			Interventions []Intervention `json:"interventions"`
		} `json:"armsInterventionsModule"`
	} `json:"protocolSection"`
}

// Intervention is one entry of a study's interventions list.
type Intervention struct {
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	OtherNames  []string `json:"otherNames"`
}

type dateStruct struct {
	Date string `json:"date"`
}

type studiesResponse struct {
	Studies       []Study `json:"studies"`
	NextPageToken string  `json:"nextPageToken"`
}

// ID returns the study's NCT number.
func (s Study) ID() string {
	return s.ProtocolSection.IdentificationModule.NCTID
}

// Interventions returns the study's intervention list.
func (s Study) Interventions() []Intervention {
	return s.ProtocolSection.ArmsInterventionsModule.Interventions
}

// URL returns the public study page.
func (s Study) URL() string {
	return studyURLPrefix + s.ID()
}

// Trial converts the study into the shared Trial shape. MatchedNames is
// left empty for the caller to fill.
func (s Study) Trial() types.Trial {
	p := s.ProtocolSection
	t := types.Trial{
		ID:             p.IdentificationModule.NCTID,
		Title:          p.IdentificationModule.BriefTitle,
		Status:         p.StatusModule.OverallStatus,
		Phase:          formatPhases(p.DesignModule.Phases),
		Summary:        p.DescriptionModule.BriefSummary,
		StartDate:      p.StatusModule.StartDate.Date,
		CompletionDate: p.StatusModule.CompletionDate.Date,
		Sponsor:        p.SponsorCollaboratorsModule.LeadSponsor.Name,
		Enrollment:     p.DesignModule.EnrollmentInfo.Count,
		Interventions:  []types.InterventionRecord{},
		URL:            s.URL(),
	}
	if t.Title == "" {
		t.Title = p.IdentificationModule.OfficialTitle
	}
	if t.CompletionDate == "" {
		t.CompletionDate = p.StatusModule.PrimaryComplete.Date
	}
	for _, iv := range p.ArmsInterventionsModule.Interventions {
		t.Interventions = append(t.Interventions, types.InterventionRecord{
			Type:        iv.Type,
			Name:        iv.Name,
			Description: iv.Description,
			OtherNames:  iv.OtherNames,
		})
	}
	return t
}

// formatPhases joins phase codes such as PHASE2 and PHASE3 into "PHASE2/PHASE3".
func formatPhases(phases []string) string {
	if len(phases) == 0 {
		return "N/A"
	}
	return strings.Join(phases, "/")
}
