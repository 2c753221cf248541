// AngelaMos | 2026
// service.go

package campaign

import (
	"context"

	"github.com/google/uuid"

	"github.com/carterperez-dev/campaign-studio/internal/authz"
	"github.com/carterperez-dev/campaign-studio/internal/core"
)

type Service struct {
	repo   Repository
	policy authz.Policy
}

func NewService(repo Repository, policy authz.Policy) *Service {
	return &Service{repo: repo, policy: policy}
}

func (s *Service) Create(
	ctx context.Context,
	caller *authz.Identity,
	req CreateCampaignRequest,
) (*Aggregate, error) {
	if err := s.policy.Enforce(caller, authz.ResourceCampaign, authz.OpCreate, ""); err != nil {
		return nil, err
	}

	status := req.CampaignStatus
	if status == "" {
		status = core.StatusDraft
	}

	name := caller.DisplayName()
	c := &Campaign{
		ID:                   uuid.New().String(),
		Name:                 req.CampaignName,
		Description:          req.CampaignDescription,
		ExpiryDate:           req.CampaignExpiryDate,
		MaxViewDurationValue: req.MaxViewDurationValue,
		MaxViewDurationUnit:  req.MaxViewDurationUnit,
		MaxViewCount:         req.MaxViewCount,
		Status:               status,
		CreatedByID:          caller.UserID,
		CreatedByName:        &name,
		UpdatedByName:        &name,
	}
	if req.CampaignStartDate != nil {
		c.StartDate = *req.CampaignStartDate
	}
	if req.CampaignEndDate != nil {
		c.EndDate = *req.CampaignEndDate
	}

	targeting := toTargeting(req.AudienceTargeting)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := validateTargeting(targeting); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c, targeting); err != nil {
		return nil, err
	}

	return s.Get(ctx, c.ID)
}

func (s *Service) Get(ctx context.Context, id string) (*Aggregate, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	targeting, err := s.repo.Targeting(ctx, id)
	if err != nil {
		return nil, err
	}

	ads, err := s.repo.AdSummaries(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Aggregate{Campaign: *c, Targeting: targeting, Ads: ads}, nil
}

// Update merges the present fields into the stored campaign, validates
// the result and writes it. It returns the aggregate before and after.
func (s *Service) Update(
	ctx context.Context,
	caller *authz.Identity,
	id string,
	req UpdateCampaignRequest,
) (*Aggregate, *Aggregate, error) {
	before, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if err := s.policy.Enforce(
		caller, authz.ResourceCampaign, authz.OpUpdate, before.Campaign.CreatedByID,
	); err != nil {
		return nil, nil, err
	}

	merged := before.Campaign
	if err := applyUpdate(&merged, req); err != nil {
		return nil, nil, err
	}

	name := caller.DisplayName()
	merged.UpdatedByName = &name

	if err := merged.Validate(); err != nil {
		return nil, nil, err
	}

	change := Change{Campaign: &merged}
	if req.AudienceTargeting.Set {
		change.ReplaceTargeting = true
		change.Targeting = toTargeting(req.AudienceTargeting.Value)
		if err := validateTargeting(change.Targeting); err != nil {
			return nil, nil, err
		}
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

func applyUpdate(c *Campaign, req UpdateCampaignRequest) error {
	if !req.CampaignName.Apply(&c.Name) {
		return core.SchemaError("campaign_name may not be null")
	}
	if !req.CampaignStartDate.Apply(&c.StartDate) {
		return core.SchemaError("campaign_start_date may not be null")
	}
	if !req.CampaignEndDate.Apply(&c.EndDate) {
		return core.SchemaError("campaign_end_date may not be null")
	}
	if !req.CampaignStatus.Apply(&c.Status) {
		return core.SchemaError("campaign_status may not be null")
	}

	req.CampaignDescription.ApplyNullable(&c.Description)
	req.CampaignExpiryDate.ApplyNullable(&c.ExpiryDate)
	req.MaxViewDurationValue.ApplyNullable(&c.MaxViewDurationValue)
	req.MaxViewDurationUnit.ApplyNullable(&c.MaxViewDurationUnit)
	req.MaxViewCount.ApplyNullable(&c.MaxViewCount)

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

	if err := s.policy.Enforce(
		caller, authz.ResourceCampaign, authz.OpDelete, before.Campaign.CreatedByID,
	); err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	return before, nil
}

func (s *Service) List(ctx context.Context, params ListParams) ([]Campaign, int, error) {
	return s.repo.List(ctx, params)
}

// OwnerOf returns the creator of a campaign. Ads inherit it for their
// ownership checks.
func (s *Service) OwnerOf(ctx context.Context, id string) (string, error) {
	return s.repo.OwnerOf(ctx, id)
}
