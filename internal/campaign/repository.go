// AngelaMos | 2026
// repository.go

package campaign

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/campaign-studio/internal/core"
)

// Change describes one update: the merged parent row and, when
// ReplaceTargeting is set, the full new targeting list.
type Change struct {
	Campaign         *Campaign
	Targeting        []AudienceTargeting
	ReplaceTargeting bool
}

type Repository interface {
	Create(ctx context.Context, c *Campaign, targeting []AudienceTargeting) error
	Get(ctx context.Context, id string) (*Campaign, error)
	Targeting(ctx context.Context, campaignID string) ([]AudienceTargeting, error)
	AdSummaries(ctx context.Context, campaignID string) ([]AdSummary, error)
	Update(ctx context.Context, change Change) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListParams) ([]Campaign, int, error)
	OwnerOf(ctx context.Context, id string) (string, error)
}

type repository struct {
	db core.Beginner
}

func NewRepository(db core.Beginner) Repository {
	return &repository{db: db}
}

const campaignColumns = `
	c.campaign_id, c.campaign_name, c.campaign_description,
	c.campaign_start_date, c.campaign_end_date, c.campaign_expiry_date,
	c.campaign_max_view_duration_value, c.campaign_max_view_duration_unit,
	c.campaign_max_view_count, c.campaign_status, c.campaign_created_by_id,
	c.created_by_name, c.updated_by_name, c.created_at, c.updated_at,
	(SELECT COUNT(*) FROM ads a WHERE a.campaign_id = c.campaign_id) AS ad_count`

func (r *repository) Create(
	ctx context.Context,
	c *Campaign,
	targeting []AudienceTargeting,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO campaigns (
				campaign_id, campaign_name, campaign_description,
				campaign_start_date, campaign_end_date, campaign_expiry_date,
				campaign_max_view_duration_value, campaign_max_view_duration_unit,
				campaign_max_view_count, campaign_status, campaign_created_by_id,
				created_by_name, updated_by_name
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING created_at, updated_at`

		err := tx.GetContext(ctx, c, query,
			c.ID,
			c.Name,
			c.Description,
			c.StartDate,
			c.EndDate,
			c.ExpiryDate,
			c.MaxViewDurationValue,
			c.MaxViewDurationUnit,
			c.MaxViewCount,
			c.Status,
			c.CreatedByID,
			c.CreatedByName,
			c.UpdatedByName,
		)
		if err != nil {
			return core.WrapDBError("create campaign", err)
		}

		return insertTargeting(ctx, tx, c.ID, targeting)
	})
}

func insertTargeting(
	ctx context.Context,
	tx *sqlx.Tx,
	campaignID string,
	items []AudienceTargeting,
) error {
	query := `
		INSERT INTO campaign_audience_targeting (
			audience_id, campaign_id, region, country, cities, postcodes
		)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5)`

	for _, t := range items {
		if _, err := tx.ExecContext(ctx, query,
			campaignID,
			t.Region,
			t.Country,
			t.Cities,
			t.Postcodes,
		); err != nil {
			return core.WrapDBError("insert audience targeting", err)
		}
	}

	return nil
}

func (r *repository) Get(ctx context.Context, id string) (*Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns c WHERE c.campaign_id = $1`

	var c Campaign
	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		return nil, core.WrapDBError("get campaign", err)
	}

	return &c, nil
}

func (r *repository) Targeting(ctx context.Context, campaignID string) ([]AudienceTargeting, error) {
	query := `
		SELECT audience_id, campaign_id, region, country, cities, postcodes,
		       created_at, updated_at
		FROM campaign_audience_targeting
		WHERE campaign_id = $1
		ORDER BY created_at, audience_id`

	var items []AudienceTargeting
	if err := r.db.SelectContext(ctx, &items, query, campaignID); err != nil {
		return nil, core.WrapDBError("list audience targeting", err)
	}

	return items, nil
}

func (r *repository) AdSummaries(ctx context.Context, campaignID string) ([]AdSummary, error) {
	query := `
		SELECT ad_id, ad_type_id, ad_name, media_type, ad_status, created_at
		FROM ads
		WHERE campaign_id = $1
		ORDER BY created_at DESC, ad_id DESC`

	var ads []AdSummary
	if err := r.db.SelectContext(ctx, &ads, query, campaignID); err != nil {
		return nil, core.WrapDBError("list campaign ads", err)
	}

	return ads, nil
}

// Update writes the parent row and, if requested, swaps the targeting
// collection in the same transaction. The UPDATE takes the row lock
// first, so concurrent replacements serialize and the last commit wins.
func (r *repository) Update(ctx context.Context, change Change) error {
	c := change.Campaign

	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE campaigns
			SET campaign_name = $2, campaign_description = $3,
			    campaign_start_date = $4, campaign_end_date = $5,
			    campaign_expiry_date = $6,
			    campaign_max_view_duration_value = $7,
			    campaign_max_view_duration_unit = $8,
			    campaign_max_view_count = $9, campaign_status = $10,
			    updated_by_name = $11, updated_at = NOW()
			WHERE campaign_id = $1
			RETURNING updated_at`

		err := tx.GetContext(ctx, &c.UpdatedAt, query,
			c.ID,
			c.Name,
			c.Description,
			c.StartDate,
			c.EndDate,
			c.ExpiryDate,
			c.MaxViewDurationValue,
			c.MaxViewDurationUnit,
			c.MaxViewCount,
			c.Status,
			c.UpdatedByName,
		)
		if err != nil {
			return core.WrapDBError("update campaign", err)
		}

		if !change.ReplaceTargeting {
			return nil
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM campaign_audience_targeting WHERE campaign_id = $1`,
			c.ID,
		); err != nil {
			return core.WrapDBError("clear audience targeting", err)
		}

		return insertTargeting(ctx, tx, c.ID, change.Targeting)
	})
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM campaigns WHERE campaign_id = $1`, id)
	if err != nil {
		return core.WrapDBError("delete campaign", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete campaign: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
) ([]Campaign, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("c.campaign_status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(c.campaign_name ILIKE $%d OR c.campaign_description ILIKE $%d)", argIdx, argIdx))
		args = append(args, core.ContainsPattern(params.Search))
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM campaigns c`+whereClause, args...); err != nil {
		return nil, 0, fmt.Errorf("count campaigns: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM campaigns c%s
		ORDER BY c.created_at DESC, c.campaign_id DESC
		LIMIT $%d OFFSET $%d`,
		campaignColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var campaigns []Campaign
	if err := r.db.SelectContext(ctx, &campaigns, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list campaigns: %w", err)
	}

	return campaigns, total, nil
}

func (r *repository) OwnerOf(ctx context.Context, id string) (string, error) {
	var owner string
	err := r.db.GetContext(ctx, &owner,
		`SELECT campaign_created_by_id FROM campaigns WHERE campaign_id = $1`, id)
	if err != nil {
		return "", core.WrapDBError("get campaign owner", err)
	}
	return owner, nil
}
