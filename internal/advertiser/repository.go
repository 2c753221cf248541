// AngelaMos | 2026
// repository.go

package advertiser

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/campaign-studio/internal/core"
)

type Change struct {
	Advertiser          *Advertiser
	Contacts            []Contact
	ReplaceContacts     bool
	BankAccounts        []BankAccount
	ReplaceBankAccounts bool
}

type Repository interface {
	Create(ctx context.Context, a *Advertiser, contacts []Contact, accounts []BankAccount) error
	Get(ctx context.Context, id string) (*Advertiser, error)
	Contacts(ctx context.Context, advertiserID string) ([]Contact, error)
	BankAccounts(ctx context.Context, advertiserID string) ([]BankAccount, error)
	Update(ctx context.Context, change Change) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListParams) ([]Advertiser, int, error)
}

type repository struct {
	db core.Beginner
}

func NewRepository(db core.Beginner) Repository {
	return &repository{db: db}
}

// latitude and longitude are NUMERIC and come back as float8.
const advertiserColumns = `
	advertiser_id, advertiser_name, advertiser_type, address_line_1,
	address_line_2, city, state, postal_code, country,
	latitude::float8 AS latitude, longitude::float8 AS longitude, timezone,
	created_by_id, created_by_name, updated_by_name, created_at, updated_at`

func (r *repository) Create(
	ctx context.Context,
	a *Advertiser,
	contacts []Contact,
	accounts []BankAccount,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO advertisers (
				advertiser_id, advertiser_name, advertiser_type,
				address_line_1, address_line_2, city, state, postal_code,
				country, latitude, longitude, timezone, created_by_id,
				created_by_name, updated_by_name
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			RETURNING created_at, updated_at`

		err := tx.GetContext(ctx, a, query,
			a.ID,
			a.Name,
			a.Type,
			a.AddressLine1,
			a.AddressLine2,
			a.City,
			a.State,
			a.PostalCode,
			a.Country,
			a.Latitude,
			a.Longitude,
			a.Timezone,
			a.CreatedByID,
			a.CreatedByName,
			a.UpdatedByName,
		)
		if err != nil {
			return core.WrapDBError("create advertiser", err)
		}

		if err := insertContacts(ctx, tx, a.ID, contacts); err != nil {
			return err
		}

		return insertBankAccounts(ctx, tx, a.ID, accounts)
	})
}

func insertContacts(ctx context.Context, tx *sqlx.Tx, advertiserID string, contacts []Contact) error {
	query := `
		INSERT INTO advertiser_contacts (
			contact_id, advertiser_id, contact_name, contact_email,
			contact_phone, contact_address, contact_city, contact_state,
			contact_postal_code, contact_country, is_point_of_contact,
			contact_type
		)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	for _, c := range contacts {
		if _, err := tx.ExecContext(ctx, query,
			advertiserID,
			c.Name,
			c.Email,
			c.Phone,
			c.Address,
			c.City,
			c.State,
			c.PostalCode,
			c.Country,
			c.IsPointOfContact,
			c.Type,
		); err != nil {
			return core.WrapDBError("insert contact", err)
		}
	}

	return nil
}

func insertBankAccounts(
	ctx context.Context,
	tx *sqlx.Tx,
	advertiserID string,
	accounts []BankAccount,
) error {
	query := `
		INSERT INTO advertiser_bank_accounts (
			bank_id, advertiser_id, bank_name, bank_account_number_encrypted,
			bank_account_name, bank_account_routing_number,
			bank_account_swift_code, bank_account_iban, bank_account_bic,
			bank_account_currency, is_default, is_verified, is_sepa_compliant
		)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	for _, b := range accounts {
		if b.NumberEncrypted == "" {
			return core.ValidationError("bank account number must be encrypted before storage")
		}

		if _, err := tx.ExecContext(ctx, query,
			advertiserID,
			b.BankName,
			b.NumberEncrypted,
			b.AccountName,
			b.RoutingNumber,
			b.SwiftCode,
			b.IBAN,
			b.BIC,
			b.Currency,
			b.IsDefault,
			b.IsVerified,
			b.IsSEPACompliant,
		); err != nil {
			return core.WrapDBError("insert bank account", err)
		}
	}

	return nil
}

func (r *repository) Get(ctx context.Context, id string) (*Advertiser, error) {
	query := `SELECT ` + advertiserColumns + ` FROM advertisers WHERE advertiser_id = $1`

	var a Advertiser
	if err := r.db.GetContext(ctx, &a, query, id); err != nil {
		return nil, core.WrapDBError("get advertiser", err)
	}

	return &a, nil
}

func (r *repository) Contacts(ctx context.Context, advertiserID string) ([]Contact, error) {
	query := `
		SELECT contact_id, advertiser_id, contact_name, contact_email,
		       contact_phone, contact_address, contact_city, contact_state,
		       contact_postal_code, contact_country, is_point_of_contact,
		       contact_type, created_at
		FROM advertiser_contacts
		WHERE advertiser_id = $1
		ORDER BY is_point_of_contact DESC, created_at, contact_id`

	var contacts []Contact
	if err := r.db.SelectContext(ctx, &contacts, query, advertiserID); err != nil {
		return nil, core.WrapDBError("list contacts", err)
	}

	return contacts, nil
}

// BankAccounts never selects the ciphertext column.
func (r *repository) BankAccounts(ctx context.Context, advertiserID string) ([]BankAccount, error) {
	query := `
		SELECT bank_id, advertiser_id, bank_name, bank_account_name,
		       bank_account_routing_number, bank_account_swift_code,
		       bank_account_iban, bank_account_bic, bank_account_currency,
		       is_default, is_verified, is_sepa_compliant, created_at
		FROM advertiser_bank_accounts
		WHERE advertiser_id = $1
		ORDER BY is_default DESC, created_at, bank_id`

	var accounts []BankAccount
	if err := r.db.SelectContext(ctx, &accounts, query, advertiserID); err != nil {
		return nil, core.WrapDBError("list bank accounts", err)
	}

	return accounts, nil
}

func (r *repository) Update(ctx context.Context, change Change) error {
	a := change.Advertiser

	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE advertisers
			SET advertiser_name = $2, advertiser_type = $3,
			    address_line_1 = $4, address_line_2 = $5, city = $6,
			    state = $7, postal_code = $8, country = $9,
			    latitude = $10, longitude = $11, timezone = $12,
			    updated_by_name = $13, updated_at = NOW()
			WHERE advertiser_id = $1
			RETURNING updated_at`

		err := tx.GetContext(ctx, &a.UpdatedAt, query,
			a.ID,
			a.Name,
			a.Type,
			a.AddressLine1,
			a.AddressLine2,
			a.City,
			a.State,
			a.PostalCode,
			a.Country,
			a.Latitude,
			a.Longitude,
			a.Timezone,
			a.UpdatedByName,
		)
		if err != nil {
			return core.WrapDBError("update advertiser", err)
		}

		if change.ReplaceContacts {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM advertiser_contacts WHERE advertiser_id = $1`, a.ID); err != nil {
				return core.WrapDBError("clear contacts", err)
			}
			if err := insertContacts(ctx, tx, a.ID, change.Contacts); err != nil {
				return err
			}
		}

		if change.ReplaceBankAccounts {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM advertiser_bank_accounts WHERE advertiser_id = $1`, a.ID); err != nil {
				return core.WrapDBError("clear bank accounts", err)
			}
			if err := insertBankAccounts(ctx, tx, a.ID, change.BankAccounts); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM advertisers WHERE advertiser_id = $1`, id)
	if err != nil {
		return core.WrapDBError("delete advertiser", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete advertiser: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete advertiser: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(ctx context.Context, params ListParams) ([]Advertiser, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	if params.Type != "" {
		conditions = append(conditions, fmt.Sprintf("advertiser_type = $%d", argIdx))
		args = append(args, params.Type)
		argIdx++
	}

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf("advertiser_name ILIKE $%d", argIdx))
		args = append(args, core.ContainsPattern(params.Search))
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM advertisers`+whereClause, args...); err != nil {
		return nil, 0, fmt.Errorf("count advertisers: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM advertisers%s
		ORDER BY advertiser_name ASC, advertiser_id ASC
		LIMIT $%d OFFSET $%d`,
		advertiserColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var advertisers []Advertiser
	if err := r.db.SelectContext(ctx, &advertisers, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list advertisers: %w", err)
	}

	return advertisers, total, nil
}
