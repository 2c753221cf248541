// AngelaMos | 2026
// entity.go

package campaign

import (
	"time"

	"github.com/lib/pq"

	"github.com/carterperez-dev/campaign-studio/internal/core"
)

type Campaign struct {
	ID                   string     `db:"campaign_id"`
	Name                 string     `db:"campaign_name"`
	Description          *string    `db:"campaign_description"`
	StartDate            core.Date  `db:"campaign_start_date"`
	EndDate              core.Date  `db:"campaign_end_date"`
	ExpiryDate           *core.Date `db:"campaign_expiry_date"`
	MaxViewDurationValue *int       `db:"campaign_max_view_duration_value"`
	MaxViewDurationUnit  *string    `db:"campaign_max_view_duration_unit"`
	MaxViewCount         *int       `db:"campaign_max_view_count"`
	Status               string     `db:"campaign_status"`
	CreatedByID          string     `db:"campaign_created_by_id"`
	CreatedByName        *string    `db:"created_by_name"`
	UpdatedByName        *string    `db:"updated_by_name"`
	CreatedAt            time.Time  `db:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at"`
	AdCount              int        `db:"ad_count"`
}

type AudienceTargeting struct {
	ID         string         `db:"audience_id"`
	CampaignID string         `db:"campaign_id"`
	Region     string         `db:"region"`
	Country    string         `db:"country"`
	Cities     pq.StringArray `db:"cities"`
	Postcodes  pq.StringArray `db:"postcodes"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

// AdSummary is the read-only view of a child ad shown on the campaign.
type AdSummary struct {
	ID        string    `db:"ad_id"`
	AdTypeID  string    `db:"ad_type_id"`
	Name      string    `db:"ad_name"`
	MediaType string    `db:"media_type"`
	Status    string    `db:"ad_status"`
	CreatedAt time.Time `db:"created_at"`
}

// Aggregate is a campaign with everything it owns.
type Aggregate struct {
	Campaign  Campaign
	Targeting []AudienceTargeting
	Ads       []AdSummary
}

// Validate checks the write-time invariants on a fully merged campaign.
func (c *Campaign) Validate() error {
	if c.Name == "" {
		return core.ValidationError("campaign_name is required")
	}
	if c.EndDate.Before(c.StartDate) {
		return core.ValidationError("campaign_end_date must be on or after campaign_start_date")
	}
	if !core.IsStatus(c.Status) {
		return core.ValidationError("campaign_status is not a valid status")
	}
	if c.MaxViewDurationUnit != nil && !core.IsDurationUnit(*c.MaxViewDurationUnit) {
		return core.ValidationError("campaign_max_view_duration_unit must be seconds, minutes or hours")
	}
	if c.MaxViewDurationValue != nil && *c.MaxViewDurationValue < 0 {
		return core.ValidationError("campaign_max_view_duration_value must not be negative")
	}
	if c.MaxViewCount != nil && *c.MaxViewCount < 0 {
		return core.ValidationError("campaign_max_view_count must not be negative")
	}
	return nil
}

func validateTargeting(items []AudienceTargeting) error {
	for _, t := range items {
		if t.Region == "" || t.Country == "" {
			return core.ValidationError("audience_targeting entries need region and country")
		}
	}
	return nil
}
