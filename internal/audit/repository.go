// AngelaMos | 2026
// repository.go

package audit

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/carterperez-dev/campaign-studio/internal/core"
)

type Repository interface {
	Insert(ctx context.Context, e *Entry) error
	List(ctx context.Context, params ListParams) ([]Entry, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, e *Entry) error {
	query := `
		INSERT INTO audit_logs (
			user_id, action, resource_type, resource_id,
			old_values, new_values, ip_address, user_agent
		)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6::jsonb, $7::inet, $8)
		RETURNING log_id, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		e.UserID,
		e.Action,
		e.ResourceType,
		e.ResourceID,
		e.OldValues,
		e.NewValues,
		ipParam(e.IPAddress),
		e.UserAgent,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
) ([]Entry, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	if params.ResourceType != "" {
		conditions = append(conditions, fmt.Sprintf("resource_type = $%d", argIdx))
		args = append(args, params.ResourceType)
		argIdx++
	}

	if params.UserID != "" {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argIdx))
		args = append(args, params.UserID)
		argIdx++
	}

	if params.Action != "" {
		conditions = append(conditions, fmt.Sprintf("action = $%d", argIdx))
		args = append(args, params.Action)
		argIdx++
	}

	whereClause := "TRUE"
	if len(conditions) > 0 {
		whereClause = strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM audit_logs WHERE " + whereClause
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, core.WrapDBError("count audit logs", err)
	}

	query := fmt.Sprintf(`
		SELECT log_id, user_id, action, resource_type, resource_id,
		       old_values::text AS old_values, new_values::text AS new_values,
		       host(ip_address) AS ip_address, user_agent, created_at
		FROM audit_logs
		WHERE %s
		ORDER BY created_at DESC, log_id DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var entries []Entry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, 0, core.WrapDBError("list audit logs", err)
	}

	return entries, total, nil
}

func ipParam(ip *string) any {
	if ip == nil || net.ParseIP(*ip) == nil {
		return nil
	}
	return *ip
}
