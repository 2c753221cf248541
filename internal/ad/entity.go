// AngelaMos | 2026
// entity.go

package ad

import (
	"slices"
	"time"

	"github.com/lib/pq"

	"github.com/carterperez-dev/campaign-studio/internal/core"
)

const (
	TypeTopBar             = "top_bar_ad"
	TypeBottomLeft         = "bottom_left_ad"
	TypeBottomRight        = "bottom_right_ad"
	TypeBottomCenter       = "bottom_center_ad"
	TypeCenterRightContent = "center_right_content_ad"
	TypeCenterLeftContent  = "center_left_content_ad"
)

// Placements that render only static media.
var ImageOnlyTypes = []string{TypeTopBar, TypeBottomLeft, TypeBottomRight, TypeBottomCenter}

var MultimediaTypes = []string{TypeCenterRightContent, TypeCenterLeftContent}

var MediaTypes = []string{"text", "image", "gif", "video", "html", "news_rss", "events"}

var ImageOnlyMediaTypes = []string{"text", "image", "gif"}

const (
	RatingSystemMPAA = "MPAA"
	RatingSystemESRB = "ESRB"
)

var RatingLabels = map[string][]string{
	RatingSystemMPAA: {"G", "PG", "PG-13", "R", "NC-17"},
	RatingSystemESRB: {"E", "E10+", "T", "M", "AO"},
}

func IsType(s string) bool {
	return slices.Contains(ImageOnlyTypes, s) || slices.Contains(MultimediaTypes, s)
}

type Ad struct {
	ID                      string     `db:"ad_id"`
	CampaignID              string     `db:"campaign_id"`
	TypeID                  string     `db:"ad_type_id"`
	Name                    string     `db:"ad_name"`
	Description             *string    `db:"ad_description"`
	MediaType               string     `db:"media_type"`
	MediaURL                *string    `db:"media_url"`
	MediaContent            *string    `db:"media_content"`
	ImpressionDurationValue *int       `db:"ad_impression_duration_value"`
	ImpressionDurationUnit  *string    `db:"ad_impression_duration_unit"`
	ForwardingURL           *string    `db:"ad_advertiser_forwarding_url"`
	StartDate               *core.Date `db:"ad_start_date"`
	EndDate                 *core.Date `db:"ad_end_date"`
	ExpiryDate              *core.Date `db:"ad_expiry_date"`
	Status                  string     `db:"ad_status"`
	CreatedByID             string     `db:"ad_created_by_id"`
	CreatedByName           *string    `db:"created_by_name"`
	UpdatedByName           *string    `db:"updated_by_name"`
	CreatedAt               time.Time  `db:"created_at"`
	UpdatedAt               time.Time  `db:"updated_at"`
}

type TimeSlot struct {
	ID        string         `db:"time_slot_id"`
	AdID      string         `db:"ad_id"`
	Start     core.TimeOfDay `db:"time_slot_start"`
	End       core.TimeOfDay `db:"time_slot_end"`
	CreatedAt time.Time      `db:"created_at"`
}

type ContentRating struct {
	ID                  string         `db:"rating_id"`
	AdID                string         `db:"ad_id"`
	WarningRequired     bool           `db:"warning_required"`
	RatingSystem        *string        `db:"rating_system"`
	RatingLabel         *string        `db:"rating_label"`
	ContentWarnings     pq.StringArray `db:"content_warnings"`
	NoProhibitedContent bool           `db:"no_prohibited_content"`
	CreatedAt           time.Time      `db:"created_at"`
}

// Aggregate is an ad with its time slots and optional content rating.
type Aggregate struct {
	Ad        Ad
	TimeSlots []TimeSlot
	Rating    *ContentRating
}

// Validate checks the write-time invariants on a fully merged ad.
func (a *Ad) Validate() error {
	if a.Name == "" {
		return core.ValidationError("ad_name is required")
	}
	if !IsType(a.TypeID) {
		return core.ValidationError("ad_type_id is not a valid ad type")
	}
	if !slices.Contains(MediaTypes, a.MediaType) {
		return core.ValidationError("media_type is not a valid media type")
	}
	if slices.Contains(ImageOnlyTypes, a.TypeID) && !slices.Contains(ImageOnlyMediaTypes, a.MediaType) {
		return core.ValidationError(a.TypeID + " only accepts text, image or gif media")
	}
	if !core.IsStatus(a.Status) {
		return core.ValidationError("ad_status is not a valid status")
	}
	if a.ImpressionDurationUnit != nil && !core.IsDurationUnit(*a.ImpressionDurationUnit) {
		return core.ValidationError("ad_impression_duration_unit must be seconds, minutes or hours")
	}
	if a.ImpressionDurationValue != nil && *a.ImpressionDurationValue < 0 {
		return core.ValidationError("ad_impression_duration_value must not be negative")
	}
	if a.StartDate != nil && a.EndDate != nil && a.EndDate.Before(*a.StartDate) {
		return core.ValidationError("ad_end_date must be on or after ad_start_date")
	}
	return nil
}

func validateTimeSlots(slots []TimeSlot) error {
	for _, s := range slots {
		if !s.Start.Before(s.End) {
			return core.ValidationError("time_slot_end must be after time_slot_start")
		}
	}
	return nil
}

func (r *ContentRating) Validate() error {
	if !r.NoProhibitedContent {
		return core.ValidationError("no_prohibited_content must be true")
	}

	if r.RatingSystem == nil {
		if r.RatingLabel != nil {
			return core.ValidationError("rating_label requires a rating_system")
		}
		return nil
	}

	labels, ok := RatingLabels[*r.RatingSystem]
	if !ok {
		return core.ValidationError("rating_system must be MPAA or ESRB")
	}
	if r.RatingLabel != nil && !slices.Contains(labels, *r.RatingLabel) {
		return core.ValidationError(*r.RatingLabel + " is not a valid " + *r.RatingSystem + " rating")
	}

	return nil
}
