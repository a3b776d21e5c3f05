package model

import "time"

// Target is the targeting information of an audience profiling connection.
// AudienceID and BaseAudienceID reference audiences owned by another service.
type Target struct {
	ID                 int64     `json:"id"`
	AudienceID         int64     `json:"audience_id"`
	BaseAudienceID     int64     `json:"base_audience_id"`
	BrandID            int64     `json:"brand_id"`
	Created            time.Time `json:"created"`
	Creator            *int64    `json:"creator"`
	Name               *string   `json:"name"`
	InstagramPlacement bool      `json:"instagram_placement"`
	LatestProfile      *int64    `json:"latest_profile"`
}

type TargetInput struct {
	AudienceID         *int64  `json:"audience_id" validate:"required"`
	BaseAudienceID     *int64  `json:"base_audience_id" validate:"required"`
	BrandID            *int64  `json:"brand_id" validate:"required"`
	Creator            *int64  `json:"creator"`
	Name               *string `json:"name" validate:"omitempty,max=191,nonul"`
	InstagramPlacement bool    `json:"instagram_placement"`
	LatestProfile      *int64  `json:"latest_profile" validate:"omitempty,gt=0"`
}

// FacebookAdTargetingCategory is a category whose audience overlap gets profiled.
type FacebookAdTargetingCategory struct {
	ID           int64   `json:"id"`
	AudienceType string  `json:"audience_type"`
	PlatformID   string  `json:"platform_id"`
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	Path         *string `json:"path"`
	LastUpdated  Date    `json:"last_updated"`
}

type FacebookAdTargetingCategoryInput struct {
	AudienceType string  `json:"audience_type" validate:"required,max=128,nonul"`
	PlatformID   string  `json:"platform_id" validate:"required,max=128,nonul"`
	Name         string  `json:"name" validate:"required,max=128,nonul"`
	Description  *string `json:"description" validate:"omitempty,max=256,nonul"`
	Path         *string `json:"path" validate:"omitempty,max=256,nonul"`
}

// Profile is one run of an audience profile; it groups the data of one report.
type Profile struct {
	ID                int64     `json:"id"`
	Target            int64     `json:"target"`
	Created           time.Time `json:"created"`
	AudienceReach     int64     `json:"audience_reach"`
	BaseAudienceReach int64     `json:"base_audience_reach"`
	BiasNormalizer    bool      `json:"bias_normalizer"`
}

type ProfileInput struct {
	Target            *int64 `json:"target" validate:"required,gt=0"`
	AudienceReach     *int64 `json:"audience_reach" validate:"required"`
	BaseAudienceReach *int64 `json:"base_audience_reach" validate:"required"`
	BiasNormalizer    bool   `json:"bias_normalizer"`
}

// ProfileDatum is a single scored category of a profile report.
type ProfileDatum struct {
	ID               int64     `json:"id"`
	Category         int64     `json:"category"`
	BiasedIndex      float64   `json:"biased_index"`
	UnbiasedIndex    *float64  `json:"unbiased_index"`
	OpportunityScore float64   `json:"opportunity_score"`
	ReachAudience    int64     `json:"reach_audience"`
	ReachBase        int64     `json:"reach_base"`
	CreatedTime      time.Time `json:"created_time"`
}

// ProfileDatumInput uses pointers for the required numbers so that a zero
// value can be told apart from a missing one.
type ProfileDatumInput struct {
	Category         *int64   `json:"category" validate:"required,gt=0"`
	BiasedIndex      *float64 `json:"biased_index" validate:"required"`
	UnbiasedIndex    *float64 `json:"unbiased_index"`
	OpportunityScore *float64 `json:"opportunity_score" validate:"required"`
	ReachAudience    *int64   `json:"reach_audience" validate:"required"`
	ReachBase        *int64   `json:"reach_base" validate:"required"`
}
