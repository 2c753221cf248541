// AngelaMos | 2026
// repository.go

package ad

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/campaign-studio/internal/core"
)

// Change is one ad update. The Replace flags mark child collections
// whose key was present in the payload; a nil Rating with ReplaceRating
// removes the rating.
type Change struct {
	Ad               *Ad
	TimeSlots        []TimeSlot
	ReplaceTimeSlots bool
	Rating           *ContentRating
	ReplaceRating    bool
}

type Repository interface {
	Create(ctx context.Context, a *Ad, slots []TimeSlot, rating *ContentRating) error
	Get(ctx context.Context, id string) (*Ad, error)
	TimeSlots(ctx context.Context, adID string) ([]TimeSlot, error)
	Rating(ctx context.Context, adID string) (*ContentRating, error)
	Update(ctx context.Context, change Change) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListParams) ([]Ad, int, error)
}

type repository struct {
	db core.Beginner
}

func NewRepository(db core.Beginner) Repository {
	return &repository{db: db}
}

const adColumns = `
	ad_id, campaign_id, ad_type_id, ad_name, ad_description, media_type,
	media_url, media_content, ad_impression_duration_value,
	ad_impression_duration_unit, ad_advertiser_forwarding_url,
	ad_start_date, ad_end_date, ad_expiry_date, ad_status, ad_created_by_id,
	created_by_name, updated_by_name, created_at, updated_at`

func (r *repository) Create(
	ctx context.Context,
	a *Ad,
	slots []TimeSlot,
	rating *ContentRating,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO ads (
				ad_id, campaign_id, ad_type_id, ad_name, ad_description,
				media_type, media_url, media_content,
				ad_impression_duration_value, ad_impression_duration_unit,
				ad_advertiser_forwarding_url, ad_start_date, ad_end_date,
				ad_expiry_date, ad_status, ad_created_by_id,
				created_by_name, updated_by_name
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
			RETURNING created_at, updated_at`

		err := tx.GetContext(ctx, a, query,
			a.ID,
			a.CampaignID,
			a.TypeID,
			a.Name,
			a.Description,
			a.MediaType,
			a.MediaURL,
			a.MediaContent,
			a.ImpressionDurationValue,
			a.ImpressionDurationUnit,
			a.ForwardingURL,
			a.StartDate,
			a.EndDate,
			a.ExpiryDate,
			a.Status,
			a.CreatedByID,
			a.CreatedByName,
			a.UpdatedByName,
		)
		if err != nil {
			return core.WrapDBError("create ad", err)
		}

		if err := insertTimeSlots(ctx, tx, a.ID, slots); err != nil {
			return err
		}

		return insertRating(ctx, tx, a.ID, rating)
	})
}

func insertTimeSlots(ctx context.Context, tx *sqlx.Tx, adID string, slots []TimeSlot) error {
	query := `
		INSERT INTO ad_time_slots (time_slot_id, ad_id, time_slot_start, time_slot_end)
		VALUES (gen_random_uuid(), $1, $2, $3)`

	for _, s := range slots {
		if _, err := tx.ExecContext(ctx, query, adID, s.Start, s.End); err != nil {
			return core.WrapDBError("insert time slot", err)
		}
	}

	return nil
}

func insertRating(ctx context.Context, tx *sqlx.Tx, adID string, rating *ContentRating) error {
	if rating == nil {
		return nil
	}

	query := `
		INSERT INTO ad_content_ratings (
			rating_id, ad_id, warning_required, rating_system, rating_label,
			content_warnings, no_prohibited_content
		)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6)`

	if _, err := tx.ExecContext(ctx, query,
		adID,
		rating.WarningRequired,
		rating.RatingSystem,
		rating.RatingLabel,
		rating.ContentWarnings,
		rating.NoProhibitedContent,
	); err != nil {
		return core.WrapDBError("insert content rating", err)
	}

	return nil
}

func (r *repository) Get(ctx context.Context, id string) (*Ad, error) {
	query := `SELECT ` + adColumns + ` FROM ads WHERE ad_id = $1`

	var a Ad
	if err := r.db.GetContext(ctx, &a, query, id); err != nil {
		return nil, core.WrapDBError("get ad", err)
	}

	return &a, nil
}

func (r *repository) TimeSlots(ctx context.Context, adID string) ([]TimeSlot, error) {
	query := `
		SELECT time_slot_id, ad_id,
		       to_char(time_slot_start, 'HH24:MI:SS') AS time_slot_start,
		       to_char(time_slot_end, 'HH24:MI:SS') AS time_slot_end,
		       created_at
		FROM ad_time_slots
		WHERE ad_id = $1
		ORDER BY time_slot_start, time_slot_id`

	var slots []TimeSlot
	if err := r.db.SelectContext(ctx, &slots, query, adID); err != nil {
		return nil, core.WrapDBError("list time slots", err)
	}

	return slots, nil
}

func (r *repository) Rating(ctx context.Context, adID string) (*ContentRating, error) {
	query := `
		SELECT rating_id, ad_id, warning_required, rating_system, rating_label,
		       content_warnings, no_prohibited_content, created_at
		FROM ad_content_ratings
		WHERE ad_id = $1`

	var rating ContentRating
	err := r.db.GetContext(ctx, &rating, query, adID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, core.WrapDBError("get content rating", err)
	}

	return &rating, nil
}

// Update writes the parent row first so the row lock orders concurrent
// replacements of the same ad's children.
func (r *repository) Update(ctx context.Context, change Change) error {
	a := change.Ad

	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE ads
			SET ad_name = $2, ad_description = $3, media_type = $4,
			    media_url = $5, media_content = $6,
			    ad_impression_duration_value = $7,
			    ad_impression_duration_unit = $8,
			    ad_advertiser_forwarding_url = $9,
			    ad_start_date = $10, ad_end_date = $11, ad_expiry_date = $12,
			    ad_status = $13, updated_by_name = $14, updated_at = NOW()
			WHERE ad_id = $1
			RETURNING updated_at`

		err := tx.GetContext(ctx, &a.UpdatedAt, query,
			a.ID,
			a.Name,
			a.Description,
			a.MediaType,
			a.MediaURL,
			a.MediaContent,
			a.ImpressionDurationValue,
			a.ImpressionDurationUnit,
			a.ForwardingURL,
			a.StartDate,
			a.EndDate,
			a.ExpiryDate,
			a.Status,
			a.UpdatedByName,
		)
		if err != nil {
			return core.WrapDBError("update ad", err)
		}

		if change.ReplaceTimeSlots {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM ad_time_slots WHERE ad_id = $1`, a.ID); err != nil {
				return core.WrapDBError("clear time slots", err)
			}
			if err := insertTimeSlots(ctx, tx, a.ID, change.TimeSlots); err != nil {
				return err
			}
		}

		if change.ReplaceRating {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM ad_content_ratings WHERE ad_id = $1`, a.ID); err != nil {
				return core.WrapDBError("clear content rating", err)
			}
			if err := insertRating(ctx, tx, a.ID, change.Rating); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM ads WHERE ad_id = $1`, id)
	if err != nil {
		return core.WrapDBError("delete ad", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete ad: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete ad: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(ctx context.Context, params ListParams) ([]Ad, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	if params.CampaignID != "" {
		conditions = append(conditions, fmt.Sprintf("campaign_id = $%d", argIdx))
		args = append(args, params.CampaignID)
		argIdx++
	}

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("ad_status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	if params.AdType != "" {
		conditions = append(conditions, fmt.Sprintf("ad_type_id = $%d", argIdx))
		args = append(args, params.AdType)
		argIdx++
	}

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(ad_name ILIKE $%d OR ad_description ILIKE $%d)", argIdx, argIdx))
		args = append(args, core.ContainsPattern(params.Search))
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM ads`+whereClause, args...); err != nil {
		return nil, 0, fmt.Errorf("count ads: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM ads%s
		ORDER BY created_at DESC, ad_id DESC
		LIMIT $%d OFFSET $%d`,
		adColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var ads []Ad
	if err := r.db.SelectContext(ctx, &ads, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list ads: %w", err)
	}

	return ads, total, nil
}
