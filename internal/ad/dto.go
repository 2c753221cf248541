// AngelaMos | 2026
// dto.go

package ad

import (
	"time"

	"github.com/carterperez-dev/campaign-studio/internal/core"
)

type TimeSlotInput struct {
	TimeSlotStart *core.TimeOfDay `json:"time_slot_start" validate:"required"`
	TimeSlotEnd   *core.TimeOfDay `json:"time_slot_end"   validate:"required"`
}

type ContentRatingInput struct {
	WarningRequired     *bool    `json:"warning_required"`
	RatingSystem        *string  `json:"rating_system"         validate:"omitempty,oneof=MPAA ESRB"`
	RatingLabel         *string  `json:"rating_label"          validate:"omitempty,max=10"`
	ContentWarnings     []string `json:"content_warnings"      validate:"omitempty,dive,max=100"`
	NoProhibitedContent *bool    `json:"no_prohibited_content" validate:"required"`
}

type CreateAdRequest struct {
	CampaignID              string              `json:"campaign_id"                  validate:"omitempty,uuid"`
	AdTypeID                string              `json:"ad_type_id"                   validate:"required,oneof=top_bar_ad bottom_left_ad bottom_right_ad bottom_center_ad center_right_content_ad center_left_content_ad"`
	AdName                  string              `json:"ad_name"                      validate:"required,max=255"`
	AdDescription           *string             `json:"ad_description"`
	MediaType               string              `json:"media_type"                   validate:"required,oneof=text image gif video html news_rss events"`
	MediaURL                *string             `json:"media_url"                    validate:"omitempty,url"`
	MediaContent            *string             `json:"media_content"`
	ImpressionDurationValue *int                `json:"ad_impression_duration_value" validate:"omitempty,gte=0"`
	ImpressionDurationUnit  *string             `json:"ad_impression_duration_unit"  validate:"omitempty,oneof=seconds minutes hours"`
	ForwardingURL           *string             `json:"ad_advertiser_forwarding_url" validate:"omitempty,url"`
	AdStartDate             *core.Date          `json:"ad_start_date"`
	AdEndDate               *core.Date          `json:"ad_end_date"`
	AdExpiryDate            *core.Date          `json:"ad_expiry_date"`
	AdStatus                string              `json:"ad_status"                    validate:"omitempty,oneof=active inactive paused draft expired"`
	TimeSlots               []TimeSlotInput     `json:"time_slots"                   validate:"omitempty,dive"`
	ContentRating           *ContentRatingInput `json:"content_rating"`
}

// UpdateAdRequest is a partial update. ad_type_id and campaign_id are
// fixed at creation. A present time_slots key replaces every slot; a
// present content_rating replaces the rating and null removes it.
type UpdateAdRequest struct {
	AdName                  core.Optional[string]             `json:"ad_name"`
	AdDescription           core.Optional[string]             `json:"ad_description"`
	MediaType               core.Optional[string]             `json:"media_type"`
	MediaURL                core.Optional[string]             `json:"media_url"`
	MediaContent            core.Optional[string]             `json:"media_content"`
	ImpressionDurationValue core.Optional[int]                `json:"ad_impression_duration_value"`
	ImpressionDurationUnit  core.Optional[string]             `json:"ad_impression_duration_unit"`
	ForwardingURL           core.Optional[string]             `json:"ad_advertiser_forwarding_url"`
	AdStartDate             core.Optional[core.Date]          `json:"ad_start_date"`
	AdEndDate               core.Optional[core.Date]          `json:"ad_end_date"`
	AdExpiryDate            core.Optional[core.Date]          `json:"ad_expiry_date"`
	AdStatus                core.Optional[string]             `json:"ad_status"`
	TimeSlots               core.Optional[[]TimeSlotInput]    `json:"time_slots"`
	ContentRating           core.Optional[ContentRatingInput] `json:"content_rating"`
}

type updateFields struct {
	AdName                  *string             `json:"ad_name"                      validate:"omitempty,min=1,max=255"`
	MediaType               *string             `json:"media_type"                   validate:"omitempty,oneof=text image gif video html news_rss events"`
	MediaURL                *string             `json:"media_url"                    validate:"omitempty,url"`
	ImpressionDurationValue *int                `json:"ad_impression_duration_value" validate:"omitempty,gte=0"`
	ImpressionDurationUnit  *string             `json:"ad_impression_duration_unit"  validate:"omitempty,oneof=seconds minutes hours"`
	ForwardingURL           *string             `json:"ad_advertiser_forwarding_url" validate:"omitempty,url"`
	AdStatus                *string             `json:"ad_status"                    validate:"omitempty,oneof=active inactive paused draft expired"`
	TimeSlots               []TimeSlotInput     `json:"time_slots"                   validate:"omitempty,dive"`
	ContentRating           *ContentRatingInput `json:"content_rating"`
}

func (r *UpdateAdRequest) ValidationView() any {
	f := updateFields{TimeSlots: r.TimeSlots.Value}
	if r.AdName.HasValue() {
		f.AdName = r.AdName.Ptr()
	}
	if r.MediaType.HasValue() {
		f.MediaType = r.MediaType.Ptr()
	}
	if r.MediaURL.HasValue() {
		f.MediaURL = r.MediaURL.Ptr()
	}
	if r.ImpressionDurationValue.HasValue() {
		f.ImpressionDurationValue = r.ImpressionDurationValue.Ptr()
	}
	if r.ImpressionDurationUnit.HasValue() {
		f.ImpressionDurationUnit = r.ImpressionDurationUnit.Ptr()
	}
	if r.ForwardingURL.HasValue() {
		f.ForwardingURL = r.ForwardingURL.Ptr()
	}
	if r.AdStatus.HasValue() {
		f.AdStatus = r.AdStatus.Ptr()
	}
	if r.ContentRating.HasValue() {
		f.ContentRating = r.ContentRating.Ptr()
	}
	return f
}

type ListParams struct {
	core.ListParams
	CampaignID string
	Status     string
	AdType     string
	Search     string
}

type TimeSlotResponse struct {
	TimeSlotID    string         `json:"time_slot_id"`
	TimeSlotStart core.TimeOfDay `json:"time_slot_start"`
	TimeSlotEnd   core.TimeOfDay `json:"time_slot_end"`
}

type ContentRatingResponse struct {
	RatingID            string   `json:"rating_id"`
	WarningRequired     bool     `json:"warning_required"`
	RatingSystem        *string  `json:"rating_system"`
	RatingLabel         *string  `json:"rating_label"`
	ContentWarnings     []string `json:"content_warnings"`
	NoProhibitedContent bool     `json:"no_prohibited_content"`
}

type AdResponse struct {
	AdID                    string                 `json:"ad_id"`
	CampaignID              string                 `json:"campaign_id"`
	AdTypeID                string                 `json:"ad_type_id"`
	AdName                  string                 `json:"ad_name"`
	AdDescription           *string                `json:"ad_description"`
	MediaType               string                 `json:"media_type"`
	MediaURL                *string                `json:"media_url"`
	MediaContent            *string                `json:"media_content"`
	ImpressionDurationValue *int                   `json:"ad_impression_duration_value"`
	ImpressionDurationUnit  *string                `json:"ad_impression_duration_unit"`
	ForwardingURL           *string                `json:"ad_advertiser_forwarding_url"`
	AdStartDate             *core.Date             `json:"ad_start_date"`
	AdEndDate               *core.Date             `json:"ad_end_date"`
	AdExpiryDate            *core.Date             `json:"ad_expiry_date"`
	AdStatus                string                 `json:"ad_status"`
	CreatedByID             string                 `json:"ad_created_by_id"`
	CreatedByName           *string                `json:"created_by_name"`
	UpdatedByName           *string                `json:"updated_by_name"`
	CreatedAt               time.Time              `json:"created_at"`
	UpdatedAt               time.Time              `json:"updated_at"`
	TimeSlots               []TimeSlotResponse     `json:"time_slots"`
	ContentRating           *ContentRatingResponse `json:"content_rating"`
}

type AdListItem struct {
	AdID                    string    `json:"ad_id"`
	CampaignID              string    `json:"campaign_id"`
	AdTypeID                string    `json:"ad_type_id"`
	AdName                  string    `json:"ad_name"`
	AdDescription           *string   `json:"ad_description"`
	MediaType               string    `json:"media_type"`
	MediaURL                *string   `json:"media_url"`
	ImpressionDurationValue *int      `json:"ad_impression_duration_value"`
	ImpressionDurationUnit  *string   `json:"ad_impression_duration_unit"`
	ForwardingURL           *string   `json:"ad_advertiser_forwarding_url"`
	AdStatus                string    `json:"ad_status"`
	CreatedAt               time.Time `json:"created_at"`
}

func ToAdResponse(agg *Aggregate) AdResponse {
	a := &agg.Ad

	slots := make([]TimeSlotResponse, 0, len(agg.TimeSlots))
	for _, s := range agg.TimeSlots {
		slots = append(slots, TimeSlotResponse{
			TimeSlotID:    s.ID,
			TimeSlotStart: s.Start,
			TimeSlotEnd:   s.End,
		})
	}

	var rating *ContentRatingResponse
	if r := agg.Rating; r != nil {
		warnings := []string(r.ContentWarnings)
		if warnings == nil {
			warnings = []string{}
		}
		rating = &ContentRatingResponse{
			RatingID:            r.ID,
			WarningRequired:     r.WarningRequired,
			RatingSystem:        r.RatingSystem,
			RatingLabel:         r.RatingLabel,
			ContentWarnings:     warnings,
			NoProhibitedContent: r.NoProhibitedContent,
		}
	}

	return AdResponse{
		AdID:                    a.ID,
		CampaignID:              a.CampaignID,
		AdTypeID:                a.TypeID,
		AdName:                  a.Name,
		AdDescription:           a.Description,
		MediaType:               a.MediaType,
		MediaURL:                a.MediaURL,
		MediaContent:            a.MediaContent,
		ImpressionDurationValue: a.ImpressionDurationValue,
		ImpressionDurationUnit:  a.ImpressionDurationUnit,
		ForwardingURL:           a.ForwardingURL,
		AdStartDate:             a.StartDate,
		AdEndDate:               a.EndDate,
		AdExpiryDate:            a.ExpiryDate,
		AdStatus:                a.Status,
		CreatedByID:             a.CreatedByID,
		CreatedByName:           a.CreatedByName,
		UpdatedByName:           a.UpdatedByName,
		CreatedAt:               a.CreatedAt,
		UpdatedAt:               a.UpdatedAt,
		TimeSlots:               slots,
		ContentRating:           rating,
	}
}

func ToAdListItems(ads []Ad) []AdListItem {
	items := make([]AdListItem, 0, len(ads))
	for _, a := range ads {
		items = append(items, AdListItem{
			AdID:                    a.ID,
			CampaignID:              a.CampaignID,
			AdTypeID:                a.TypeID,
			AdName:                  a.Name,
			AdDescription:           a.Description,
			MediaType:               a.MediaType,
			MediaURL:                a.MediaURL,
			ImpressionDurationValue: a.ImpressionDurationValue,
			ImpressionDurationUnit:  a.ImpressionDurationUnit,
			ForwardingURL:           a.ForwardingURL,
			AdStatus:                a.Status,
			CreatedAt:               a.CreatedAt,
		})
	}
	return items
}

func toTimeSlots(inputs []TimeSlotInput) []TimeSlot {
	out := make([]TimeSlot, 0, len(inputs))
	for _, in := range inputs {
		var s TimeSlot
		if in.TimeSlotStart != nil {
			s.Start = *in.TimeSlotStart
		}
		if in.TimeSlotEnd != nil {
			s.End = *in.TimeSlotEnd
		}
		out = append(out, s)
	}
	return out
}

func toContentRating(in *ContentRatingInput) *ContentRating {
	if in == nil {
		return nil
	}

	r := &ContentRating{
		WarningRequired: true,
		RatingSystem:    in.RatingSystem,
		RatingLabel:     in.RatingLabel,
		ContentWarnings: in.ContentWarnings,
	}
	if r.ContentWarnings == nil {
		r.ContentWarnings = []string{}
	}
	if in.WarningRequired != nil {
		r.WarningRequired = *in.WarningRequired
	}
	if in.NoProhibitedContent != nil {
		r.NoProhibitedContent = *in.NoProhibitedContent
	}
	return r
}
