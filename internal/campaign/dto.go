// AngelaMos | 2026
// dto.go

package campaign

import (
	"time"

	"github.com/carterperez-dev/campaign-studio/internal/core"
)

type AudienceTargetingInput struct {
	Region    string   `json:"region"    validate:"required,max=100"`
	Country   string   `json:"country"   validate:"required,max=100"`
	Cities    []string `json:"cities"    validate:"omitempty,dive,max=100"`
	Postcodes []string `json:"postcodes" validate:"omitempty,dive,max=20"`
}

type CreateCampaignRequest struct {
	CampaignName         string                   `json:"campaign_name"                    validate:"required,max=255"`
	CampaignDescription  *string                  `json:"campaign_description"`
	CampaignStartDate    *core.Date               `json:"campaign_start_date"              validate:"required"`
	CampaignEndDate      *core.Date               `json:"campaign_end_date"                validate:"required"`
	CampaignExpiryDate   *core.Date               `json:"campaign_expiry_date"`
	MaxViewDurationValue *int                     `json:"campaign_max_view_duration_value" validate:"omitempty,gte=0"`
	MaxViewDurationUnit  *string                  `json:"campaign_max_view_duration_unit"  validate:"omitempty,oneof=seconds minutes hours"`
	MaxViewCount         *int                     `json:"campaign_max_view_count"          validate:"omitempty,gte=0"`
	CampaignStatus       string                   `json:"campaign_status"                  validate:"omitempty,oneof=active inactive paused draft expired"`
	AudienceTargeting    []AudienceTargetingInput `json:"audience_targeting"               validate:"omitempty,dive"`
}

// UpdateCampaignRequest is a partial update. A present audience_targeting
// key, including [] or null, replaces the whole collection.
type UpdateCampaignRequest struct {
	CampaignName         core.Optional[string]                   `json:"campaign_name"`
	CampaignDescription  core.Optional[string]                   `json:"campaign_description"`
	CampaignStartDate    core.Optional[core.Date]                `json:"campaign_start_date"`
	CampaignEndDate      core.Optional[core.Date]                `json:"campaign_end_date"`
	CampaignExpiryDate   core.Optional[core.Date]                `json:"campaign_expiry_date"`
	MaxViewDurationValue core.Optional[int]                      `json:"campaign_max_view_duration_value"`
	MaxViewDurationUnit  core.Optional[string]                   `json:"campaign_max_view_duration_unit"`
	MaxViewCount         core.Optional[int]                      `json:"campaign_max_view_count"`
	CampaignStatus       core.Optional[string]                   `json:"campaign_status"`
	AudienceTargeting    core.Optional[[]AudienceTargetingInput] `json:"audience_targeting"`
}

type updateFields struct {
	CampaignName         *string                  `json:"campaign_name"                    validate:"omitempty,min=1,max=255"`
	MaxViewDurationValue *int                     `json:"campaign_max_view_duration_value" validate:"omitempty,gte=0"`
	MaxViewDurationUnit  *string                  `json:"campaign_max_view_duration_unit"  validate:"omitempty,oneof=seconds minutes hours"`
	MaxViewCount         *int                     `json:"campaign_max_view_count"          validate:"omitempty,gte=0"`
	CampaignStatus       *string                  `json:"campaign_status"                  validate:"omitempty,oneof=active inactive paused draft expired"`
	AudienceTargeting    []AudienceTargetingInput `json:"audience_targeting"               validate:"omitempty,dive"`
}

// ValidationView exposes the non-null values for struct tag validation.
func (r *UpdateCampaignRequest) ValidationView() any {
	f := updateFields{AudienceTargeting: r.AudienceTargeting.Value}
	if r.CampaignName.HasValue() {
		f.CampaignName = r.CampaignName.Ptr()
	}
	if r.MaxViewDurationValue.HasValue() {
		f.MaxViewDurationValue = r.MaxViewDurationValue.Ptr()
	}
	if r.MaxViewDurationUnit.HasValue() {
		f.MaxViewDurationUnit = r.MaxViewDurationUnit.Ptr()
	}
	if r.MaxViewCount.HasValue() {
		f.MaxViewCount = r.MaxViewCount.Ptr()
	}
	if r.CampaignStatus.HasValue() {
		f.CampaignStatus = r.CampaignStatus.Ptr()
	}
	return f
}

type ListParams struct {
	core.ListParams
	Status string
	Search string
}

type AudienceTargetingResponse struct {
	AudienceID string   `json:"audience_id"`
	Region     string   `json:"region"`
	Country    string   `json:"country"`
	Cities     []string `json:"cities"`
	Postcodes  []string `json:"postcodes"`
}

type AdSummaryResponse struct {
	AdID      string    `json:"ad_id"`
	AdTypeID  string    `json:"ad_type_id"`
	AdName    string    `json:"ad_name"`
	MediaType string    `json:"media_type"`
	AdStatus  string    `json:"ad_status"`
	CreatedAt time.Time `json:"created_at"`
}

type CampaignResponse struct {
	CampaignID           string                      `json:"campaign_id"`
	CampaignName         string                      `json:"campaign_name"`
	CampaignDescription  *string                     `json:"campaign_description"`
	CampaignStartDate    core.Date                   `json:"campaign_start_date"`
	CampaignEndDate      core.Date                   `json:"campaign_end_date"`
	CampaignExpiryDate   *core.Date                  `json:"campaign_expiry_date"`
	MaxViewDurationValue *int                        `json:"campaign_max_view_duration_value"`
	MaxViewDurationUnit  *string                     `json:"campaign_max_view_duration_unit"`
	MaxViewCount         *int                        `json:"campaign_max_view_count"`
	CampaignStatus       string                      `json:"campaign_status"`
	CreatedByID          string                      `json:"campaign_created_by_id"`
	CreatedByName        *string                     `json:"created_by_name"`
	UpdatedByName        *string                     `json:"updated_by_name"`
	CreatedAt            time.Time                   `json:"created_at"`
	UpdatedAt            time.Time                   `json:"updated_at"`
	AudienceTargeting    []AudienceTargetingResponse `json:"audience_targeting"`
	Ads                  []AdSummaryResponse         `json:"ads"`
}

type CampaignListItem struct {
	CampaignID          string    `json:"campaign_id"`
	CampaignName        string    `json:"campaign_name"`
	CampaignDescription *string   `json:"campaign_description"`
	CampaignStartDate   core.Date `json:"campaign_start_date"`
	CampaignEndDate     core.Date `json:"campaign_end_date"`
	CampaignStatus      string    `json:"campaign_status"`
	CreatedByID         string    `json:"campaign_created_by_id"`
	CreatedByName       *string   `json:"created_by_name"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
	AdCount             int       `json:"ad_count"`
}

func ToCampaignResponse(a *Aggregate) CampaignResponse {
	c := &a.Campaign

	targeting := make([]AudienceTargetingResponse, 0, len(a.Targeting))
	for _, t := range a.Targeting {
		targeting = append(targeting, AudienceTargetingResponse{
			AudienceID: t.ID,
			Region:     t.Region,
			Country:    t.Country,
			Cities:     nonNil(t.Cities),
			Postcodes:  nonNil(t.Postcodes),
		})
	}

	ads := make([]AdSummaryResponse, 0, len(a.Ads))
	for _, ad := range a.Ads {
		ads = append(ads, AdSummaryResponse{
			AdID:      ad.ID,
			AdTypeID:  ad.AdTypeID,
			AdName:    ad.Name,
			MediaType: ad.MediaType,
			AdStatus:  ad.Status,
			CreatedAt: ad.CreatedAt,
		})
	}

	return CampaignResponse{
		CampaignID:           c.ID,
		CampaignName:         c.Name,
		CampaignDescription:  c.Description,
		CampaignStartDate:    c.StartDate,
		CampaignEndDate:      c.EndDate,
		CampaignExpiryDate:   c.ExpiryDate,
		MaxViewDurationValue: c.MaxViewDurationValue,
		MaxViewDurationUnit:  c.MaxViewDurationUnit,
		MaxViewCount:         c.MaxViewCount,
		CampaignStatus:       c.Status,
		CreatedByID:          c.CreatedByID,
		CreatedByName:        c.CreatedByName,
		UpdatedByName:        c.UpdatedByName,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
		AudienceTargeting:    targeting,
		Ads:                  ads,
	}
}

func ToCampaignListItems(campaigns []Campaign) []CampaignListItem {
	items := make([]CampaignListItem, 0, len(campaigns))
	for _, c := range campaigns {
		items = append(items, CampaignListItem{
			CampaignID:          c.ID,
			CampaignName:        c.Name,
			CampaignDescription: c.Description,
			CampaignStartDate:   c.StartDate,
			CampaignEndDate:     c.EndDate,
			CampaignStatus:      c.Status,
			CreatedByID:         c.CreatedByID,
			CreatedByName:       c.CreatedByName,
			CreatedAt:           c.CreatedAt,
			UpdatedAt:           c.UpdatedAt,
			AdCount:             c.AdCount,
		})
	}
	return items
}

func toTargeting(inputs []AudienceTargetingInput) []AudienceTargeting {
	out := make([]AudienceTargeting, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, AudienceTargeting{
			Region:    in.Region,
			Country:   in.Country,
			Cities:    nonNil(in.Cities),
			Postcodes: nonNil(in.Postcodes),
		})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
