// AngelaMos | 2026
// repository.go

package admin

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/campaign-studio/internal/core"
)

// StatusCount is one bucket of a GROUP BY status query.
type StatusCount struct {
	Status string `db:"status" json:"status"`
	Count  int    `db:"count"  json:"count"`
}

type EntityCounts struct {
	Users            int           `json:"users"`
	ActiveUsers      int           `json:"active_users"`
	Campaigns        int           `json:"campaigns"`
	CampaignStatuses []StatusCount `json:"campaigns_by_status"`
	Ads              int           `json:"ads"`
	AdStatuses       []StatusCount `json:"ads_by_status"`
	Advertisers      int           `json:"advertisers"`
	AuditLogs        int           `json:"audit_logs"`
}

type Repository interface {
	Counts(ctx context.Context) (*EntityCounts, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Counts(ctx context.Context) (*EntityCounts, error) {
	var counts EntityCounts

	totals := []struct {
		dst   *int
		query string
	}{
		{&counts.Users, `SELECT COUNT(*) FROM users`},
		{&counts.ActiveUsers, `SELECT COUNT(*) FROM users WHERE is_active`},
		{&counts.Campaigns, `SELECT COUNT(*) FROM campaigns`},
		{&counts.Ads, `SELECT COUNT(*) FROM ads`},
		{&counts.Advertisers, `SELECT COUNT(*) FROM advertisers`},
		{&counts.AuditLogs, `SELECT COUNT(*) FROM audit_logs`},
	}

	for _, t := range totals {
		if err := r.db.GetContext(ctx, t.dst, t.query); err != nil {
			return nil, fmt.Errorf("count: %w", err)
		}
	}

	err := r.db.SelectContext(ctx, &counts.CampaignStatuses, `
		SELECT campaign_status AS status, COUNT(*) AS count
		FROM campaigns
		GROUP BY campaign_status
		ORDER BY campaign_status`)
	if err != nil {
		return nil, fmt.Errorf("count campaigns by status: %w", err)
	}

	err = r.db.SelectContext(ctx, &counts.AdStatuses, `
		SELECT ad_status AS status, COUNT(*) AS count
		FROM ads
		GROUP BY ad_status
		ORDER BY ad_status`)
	if err != nil {
		return nil, fmt.Errorf("count ads by status: %w", err)
	}

	return &counts, nil
}
