// AngelaMos | 2026
// entity.go

package advertiser

import (
	"slices"
	"time"

	"github.com/carterperez-dev/campaign-studio/internal/core"
)

var Types = []string{"individual", "business", "enterprise", "agency"}

var ContactTypes = []string{
	"admin", "manager", "sales", "support", "marketing",
	"tech", "it", "hr", "finance",
}

type Advertiser struct {
	ID            string    `db:"advertiser_id"`
	Name          string    `db:"advertiser_name"`
	Type          string    `db:"advertiser_type"`
	AddressLine1  string    `db:"address_line_1"`
	AddressLine2  *string   `db:"address_line_2"`
	City          string    `db:"city"`
	State         string    `db:"state"`
	PostalCode    string    `db:"postal_code"`
	Country       string    `db:"country"`
	Latitude      *float64  `db:"latitude"`
	Longitude     *float64  `db:"longitude"`
	Timezone      string    `db:"timezone"`
	CreatedByID   string    `db:"created_by_id"`
	CreatedByName *string   `db:"created_by_name"`
	UpdatedByName *string   `db:"updated_by_name"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type Contact struct {
	ID               string    `db:"contact_id"`
	AdvertiserID     string    `db:"advertiser_id"`
	Name             string    `db:"contact_name"`
	Email            string    `db:"contact_email"`
	Phone            string    `db:"contact_phone"`
	Address          *string   `db:"contact_address"`
	City             *string   `db:"contact_city"`
	State            *string   `db:"contact_state"`
	PostalCode       *string   `db:"contact_postal_code"`
	Country          *string   `db:"contact_country"`
	IsPointOfContact bool      `db:"is_point_of_contact"`
	Type             string    `db:"contact_type"`
	CreatedAt        time.Time `db:"created_at"`
}

// BankAccount never carries the plaintext number once stored. Only the
// ciphertext is persisted and it is never read back out.
type BankAccount struct {
	ID              string    `db:"bank_id"`
	AdvertiserID    string    `db:"advertiser_id"`
	BankName        string    `db:"bank_name"`
	NumberEncrypted string    `db:"-"`
	AccountName     string    `db:"bank_account_name"`
	RoutingNumber   *string   `db:"bank_account_routing_number"`
	SwiftCode       *string   `db:"bank_account_swift_code"`
	IBAN            *string   `db:"bank_account_iban"`
	BIC             *string   `db:"bank_account_bic"`
	Currency        string    `db:"bank_account_currency"`
	IsDefault       bool      `db:"is_default"`
	IsVerified      bool      `db:"is_verified"`
	IsSEPACompliant bool      `db:"is_sepa_compliant"`
	CreatedAt       time.Time `db:"created_at"`
}

type Aggregate struct {
	Advertiser   Advertiser
	Contacts     []Contact
	BankAccounts []BankAccount
}

func (a *Advertiser) Validate() error {
	required := []struct{ field, value string }{
		{"advertiser_name", a.Name},
		{"address_line_1", a.AddressLine1},
		{"city", a.City},
		{"state", a.State},
		{"postal_code", a.PostalCode},
		{"country", a.Country},
		{"timezone", a.Timezone},
	}
	for _, r := range required {
		if r.value == "" {
			return core.ValidationError(r.field + " is required")
		}
	}

	if !slices.Contains(Types, a.Type) {
		return core.ValidationError("advertiser_type must be individual, business, enterprise or agency")
	}
	if a.Latitude != nil && (*a.Latitude < -90 || *a.Latitude > 90) {
		return core.ValidationError("latitude must be between -90 and 90")
	}
	if a.Longitude != nil && (*a.Longitude < -180 || *a.Longitude > 180) {
		return core.ValidationError("longitude must be between -180 and 180")
	}
	return nil
}

func validateContacts(contacts []Contact) error {
	if len(contacts) == 0 {
		return core.ValidationError("an advertiser needs at least one contact")
	}
	for _, c := range contacts {
		if !slices.Contains(ContactTypes, c.Type) {
			return core.ValidationError(c.Type + " is not a valid contact_type")
		}
	}
	return nil
}

func validateBankAccounts(accounts []BankAccount) error {
	for _, b := range accounts {
		if len(b.Currency) != 3 {
			return core.ValidationError("bank_account_currency must be exactly 3 characters")
		}
	}
	return nil
}
