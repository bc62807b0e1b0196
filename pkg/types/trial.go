// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// InterventionRecord describes one intervention arm entry of a trial.
type InterventionRecord struct {
	Type        string   `json:"type" yaml:"type"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	OtherNames  []string `json:"otherNames,omitempty" yaml:"other_names,omitempty"`
}

// Trial is a clinical study record keyed by its registry identifier.
type Trial struct {
	// ID is the registry identifier (an NCT number), unique per trial.
	ID string `json:"id" yaml:"id"`

	Title          string               `json:"title" yaml:"title"`
	Status         string               `json:"status" yaml:"status"`
	Phase          string               `json:"phase" yaml:"phase"`
	Summary        string               `json:"summary" yaml:"summary"`
	StartDate      string               `json:"startDate" yaml:"start_date"`
	CompletionDate string               `json:"completionDate" yaml:"completion_date"`
	Sponsor        string               `json:"sponsor" yaml:"sponsor"`
	Enrollment     int                  `json:"enrollment" yaml:"enrollment"`
	Interventions  []InterventionRecord `json:"interventions" yaml:"interventions"`
	URL            string               `json:"url" yaml:"url"`

	// MatchedNames lists every searched name that returned this trial, in
	// first-seen order. It is never empty and holds no duplicates.
	MatchedNames []string `json:"matchedNames" yaml:"matched_names"`
}

// TrialSearchError records a failed registry search for one drug name.
type TrialSearchError struct {
	DrugName string `json:"drugName" yaml:"drug_name"`
	Error    string `json:"error" yaml:"error"`
}

// TrialStats summarizes one run of the trial aggregation pipeline.
type TrialStats struct {
	TotalProvided     int  `json:"totalProvided" yaml:"total_provided"`
	TotalSearched     int  `json:"totalSearched" yaml:"total_searched"`
	WasTruncated      bool `json:"wasTruncated" yaml:"was_truncated"`
	TotalUniqueTrials int  `json:"totalUniqueTrials" yaml:"total_unique_trials"`
}

// AggregateSummary holds the counts reported with an AggregateResult.
type AggregateSummary struct {
	NamesSearched int  `json:"namesSearched" yaml:"names_searched"`
	TrialsFound   int  `json:"trialsFound" yaml:"trials_found"`
	WasTruncated  bool `json:"wasTruncated" yaml:"was_truncated"`
}

// AggregateResult is the full response for a drug lookup: what every name
// source said, the candidate names derived from them, and the trials found
// for those names.
type AggregateResult struct {
	Query          string                  `json:"query" yaml:"query"`
	Sources        map[string]SourceResult `json:"sources" yaml:"sources"`
	CandidateNames []string                `json:"candidateNames" yaml:"candidate_names"`
	Trials         []Trial                 `json:"trials" yaml:"trials"`
	Errors         []TrialSearchError      `json:"errors" yaml:"errors"`
	Summary        AggregateSummary        `json:"summary" yaml:"summary"`
}
