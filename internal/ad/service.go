// AngelaMos | 2026
// service.go

package ad

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/carterperez-dev/campaign-studio/internal/authz"
	"github.com/carterperez-dev/campaign-studio/internal/core"
)

// CampaignOwners resolves the creator of a campaign. Ads are owned
// through their parent campaign.
type CampaignOwners interface {
	OwnerOf(ctx context.Context, campaignID string) (string, error)
}

type Service struct {
	repo      Repository
	campaigns CampaignOwners
	policy    authz.Policy
}

func NewService(repo Repository, campaigns CampaignOwners, policy authz.Policy) *Service {
	return &Service{repo: repo, campaigns: campaigns, policy: policy}
}

func (s *Service) campaignOwner(ctx context.Context, campaignID string) (string, error) {
	owner, err := s.campaigns.OwnerOf(ctx, campaignID)
	if errors.Is(err, core.ErrNotFound) {
		return "", core.NotFoundError("campaign")
	}
	return owner, err
}

func (s *Service) Create(
	ctx context.Context,
	caller *authz.Identity,
	req CreateAdRequest,
) (*Aggregate, error) {
	if req.CampaignID == "" {
		return nil, core.SchemaError("campaign_id is required")
	}

	owner, err := s.campaignOwner(ctx, req.CampaignID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.Enforce(caller, authz.ResourceAd, authz.OpCreate, owner); err != nil {
		return nil, err
	}

	status := req.AdStatus
	if status == "" {
		status = core.StatusDraft
	}

	name := caller.DisplayName()
	a := &Ad{
		ID:                      uuid.New().String(),
		CampaignID:              req.CampaignID,
		TypeID:                  req.AdTypeID,
		Name:                    req.AdName,
		Description:             req.AdDescription,
		MediaType:               req.MediaType,
		MediaURL:                req.MediaURL,
		MediaContent:            req.MediaContent,
		ImpressionDurationValue: req.ImpressionDurationValue,
		ImpressionDurationUnit:  req.ImpressionDurationUnit,
		ForwardingURL:           req.ForwardingURL,
		StartDate:               req.AdStartDate,
		EndDate:                 req.AdEndDate,
		ExpiryDate:              req.AdExpiryDate,
		Status:                  status,
		CreatedByID:             caller.UserID,
		CreatedByName:           &name,
		UpdatedByName:           &name,
	}

	slots := toTimeSlots(req.TimeSlots)
	rating := toContentRating(req.ContentRating)

	if err := validateAggregate(a, slots, rating); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, a, slots, rating); err != nil {
		return nil, err
	}

	return s.Get(ctx, a.ID)
}

func validateAggregate(a *Ad, slots []TimeSlot, rating *ContentRating) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := validateTimeSlots(slots); err != nil {
		return err
	}
	if rating != nil {
		return rating.Validate()
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*Aggregate, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	slots, err := s.repo.TimeSlots(ctx, id)
	if err != nil {
		return nil, err
	}

	rating, err := s.repo.Rating(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Aggregate{Ad: *a, TimeSlots: slots, Rating: rating}, nil
}

// Update applies a partial update. Ownership is checked against the
// parent campaign's creator.
func (s *Service) Update(
	ctx context.Context,
	caller *authz.Identity,
	id string,
	req UpdateAdRequest,
) (*Aggregate, *Aggregate, error) {
	before, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	owner, err := s.campaignOwner(ctx, before.Ad.CampaignID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.policy.Enforce(caller, authz.ResourceAd, authz.OpUpdate, owner); err != nil {
		return nil, nil, err
	}

	merged := before.Ad
	if err := applyUpdate(&merged, req); err != nil {
		return nil, nil, err
	}

	name := caller.DisplayName()
	merged.UpdatedByName = &name

	change := Change{Ad: &merged}
	if req.TimeSlots.Set {
		change.ReplaceTimeSlots = true
		change.TimeSlots = toTimeSlots(req.TimeSlots.Value)
	}
	if req.ContentRating.Set {
		change.ReplaceRating = true
		change.Rating = toContentRating(req.ContentRating.Ptr())
	}

	if err := validateAggregate(&merged, change.TimeSlots, change.Rating); err != nil {
		return nil, nil, err
	}

	if err := s.repo.Update(ctx, change); err != nil {
		return nil, nil, err
	}

	after, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return before, after, nil
}

func applyUpdate(a *Ad, req UpdateAdRequest) error {
	if !req.AdName.Apply(&a.Name) {
		return core.SchemaError("ad_name may not be null")
	}
	if !req.MediaType.Apply(&a.MediaType) {
		return core.SchemaError("media_type may not be null")
	}
	if !req.AdStatus.Apply(&a.Status) {
		return core.SchemaError("ad_status may not be null")
	}

	req.AdDescription.ApplyNullable(&a.Description)
	req.MediaURL.ApplyNullable(&a.MediaURL)
	req.MediaContent.ApplyNullable(&a.MediaContent)
	req.ImpressionDurationValue.ApplyNullable(&a.ImpressionDurationValue)
	req.ImpressionDurationUnit.ApplyNullable(&a.ImpressionDurationUnit)
	req.ForwardingURL.ApplyNullable(&a.ForwardingURL)
	req.AdStartDate.ApplyNullable(&a.StartDate)
	req.AdEndDate.ApplyNullable(&a.EndDate)
	req.AdExpiryDate.ApplyNullable(&a.ExpiryDate)

	return nil
}

func (s *Service) Delete(
	ctx context.Context,
	caller *authz.Identity,
	id string,
) (*Aggregate, error) {
	before, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	owner, err := s.campaignOwner(ctx, before.Ad.CampaignID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.Enforce(caller, authz.ResourceAd, authz.OpDelete, owner); err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	return before, nil
}

func (s *Service) List(ctx context.Context, params ListParams) ([]Ad, int, error) {
	return s.repo.List(ctx, params)
}
