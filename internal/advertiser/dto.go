// AngelaMos | 2026
// dto.go

package advertiser

import (
	"time"

	"github.com/carterperez-dev/campaign-studio/internal/core"
)

type ContactInput struct {
	ContactName       string  `json:"contact_name"        validate:"required,max=200"`
	ContactEmail      string  `json:"contact_email"       validate:"required,email,max=255"`
	ContactPhone      string  `json:"contact_phone"       validate:"required,max=50"`
	ContactAddress    *string `json:"contact_address"`
	ContactCity       *string `json:"contact_city"        validate:"omitempty,max=100"`
	ContactState      *string `json:"contact_state"       validate:"omitempty,max=100"`
	ContactPostalCode *string `json:"contact_postal_code" validate:"omitempty,max=20"`
	ContactCountry    *string `json:"contact_country"     validate:"omitempty,max=100"`
	IsPointOfContact  bool    `json:"is_point_of_contact"`
	ContactType       string  `json:"contact_type"        validate:"required,oneof=admin manager sales support marketing tech it hr finance"`
}

// BankAccountInput is the only place a plaintext account number exists.
// It is encrypted before the repository sees it.
type BankAccountInput struct {
	BankName        string  `json:"bank_name"                   validate:"required,max=255"`
	AccountNumber   string  `json:"bank_account_number"         validate:"required,max=64"`
	AccountName     string  `json:"bank_account_name"           validate:"required,max=255"`
	RoutingNumber   *string `json:"bank_account_routing_number" validate:"omitempty,max=50"`
	SwiftCode       *string `json:"bank_account_swift_code"     validate:"omitempty,max=20"`
	IBAN            *string `json:"bank_account_iban"           validate:"omitempty,max=50"`
	BIC             *string `json:"bank_account_bic"            validate:"omitempty,max=20"`
	Currency        string  `json:"bank_account_currency"       validate:"required,len=3"`
	IsDefault       bool    `json:"is_default"`
	IsVerified      bool    `json:"is_verified"`
	IsSEPACompliant bool    `json:"is_sepa_compliant"`
}

type CreateAdvertiserRequest struct {
	AdvertiserName string             `json:"advertiser_name" validate:"required,max=255"`
	AdvertiserType string             `json:"advertiser_type" validate:"required,oneof=individual business enterprise agency"`
	AddressLine1   string             `json:"address_line_1"  validate:"required,max=255"`
	AddressLine2   *string            `json:"address_line_2"  validate:"omitempty,max=255"`
	City           string             `json:"city"            validate:"required,max=100"`
	State          string             `json:"state"           validate:"required,max=100"`
	PostalCode     string             `json:"postal_code"     validate:"required,max=20"`
	Country        string             `json:"country"         validate:"required,max=100"`
	Latitude       *float64           `json:"latitude"        validate:"omitempty,latitude"`
	Longitude      *float64           `json:"longitude"       validate:"omitempty,longitude"`
	Timezone       string             `json:"timezone"        validate:"required,max=50"`
	Contacts       []ContactInput     `json:"contacts"        validate:"required,min=1,dive"`
	BankAccounts   []BankAccountInput `json:"bank_accounts"   validate:"omitempty,dive"`
}

// UpdateAdvertiserRequest is a partial update. A present contacts or
// bank_accounts key replaces that whole collection.
type UpdateAdvertiserRequest struct {
	AdvertiserName core.Optional[string]             `json:"advertiser_name"`
	AdvertiserType core.Optional[string]             `json:"advertiser_type"`
	AddressLine1   core.Optional[string]             `json:"address_line_1"`
	AddressLine2   core.Optional[string]             `json:"address_line_2"`
	City           core.Optional[string]             `json:"city"`
	State          core.Optional[string]             `json:"state"`
	PostalCode     core.Optional[string]             `json:"postal_code"`
	Country        core.Optional[string]             `json:"country"`
	Latitude       core.Optional[float64]            `json:"latitude"`
	Longitude      core.Optional[float64]            `json:"longitude"`
	Timezone       core.Optional[string]             `json:"timezone"`
	Contacts       core.Optional[[]ContactInput]     `json:"contacts"`
	BankAccounts   core.Optional[[]BankAccountInput] `json:"bank_accounts"`
}

type updateFields struct {
	AdvertiserName *string            `json:"advertiser_name" validate:"omitempty,min=1,max=255"`
	AdvertiserType *string            `json:"advertiser_type" validate:"omitempty,oneof=individual business enterprise agency"`
	AddressLine1   *string            `json:"address_line_1"  validate:"omitempty,max=255"`
	AddressLine2   *string            `json:"address_line_2"  validate:"omitempty,max=255"`
	City           *string            `json:"city"            validate:"omitempty,max=100"`
	State          *string            `json:"state"           validate:"omitempty,max=100"`
	PostalCode     *string            `json:"postal_code"     validate:"omitempty,max=20"`
	Country        *string            `json:"country"         validate:"omitempty,max=100"`
	Latitude       *float64           `json:"latitude"        validate:"omitempty,latitude"`
	Longitude      *float64           `json:"longitude"       validate:"omitempty,longitude"`
	Timezone       *string            `json:"timezone"        validate:"omitempty,max=50"`
	Contacts       []ContactInput     `json:"contacts"        validate:"omitempty,dive"`
	BankAccounts   []BankAccountInput `json:"bank_accounts"   validate:"omitempty,dive"`
}

func (r *UpdateAdvertiserRequest) ValidationView() any {
	f := updateFields{
		Contacts:     r.Contacts.Value,
		BankAccounts: r.BankAccounts.Value,
	}
	for _, pair := range []struct {
		src core.Optional[string]
		dst **string
	}{
		{r.AdvertiserName, &f.AdvertiserName},
		{r.AdvertiserType, &f.AdvertiserType},
		{r.AddressLine1, &f.AddressLine1},
		{r.AddressLine2, &f.AddressLine2},
		{r.City, &f.City},
		{r.State, &f.State},
		{r.PostalCode, &f.PostalCode},
		{r.Country, &f.Country},
		{r.Timezone, &f.Timezone},
	} {
		if pair.src.HasValue() {
			*pair.dst = pair.src.Ptr()
		}
	}
	if r.Latitude.HasValue() {
		f.Latitude = r.Latitude.Ptr()
	}
	if r.Longitude.HasValue() {
		f.Longitude = r.Longitude.Ptr()
	}
	return f
}

type ListParams struct {
	core.ListParams
	Type   string
	Search string
}

type ContactResponse struct {
	ContactID         string  `json:"contact_id"`
	ContactName       string  `json:"contact_name"`
	ContactEmail      string  `json:"contact_email"`
	ContactPhone      string  `json:"contact_phone"`
	ContactAddress    *string `json:"contact_address"`
	ContactCity       *string `json:"contact_city"`
	ContactState      *string `json:"contact_state"`
	ContactPostalCode *string `json:"contact_postal_code"`
	ContactCountry    *string `json:"contact_country"`
	IsPointOfContact  bool    `json:"is_point_of_contact"`
	ContactType       string  `json:"contact_type"`
}

// BankAccountResponse has no account number field at all.
type BankAccountResponse struct {
	BankID          string  `json:"bank_id"`
	BankName        string  `json:"bank_name"`
	AccountName     string  `json:"bank_account_name"`
	RoutingNumber   *string `json:"bank_account_routing_number"`
	SwiftCode       *string `json:"bank_account_swift_code"`
	IBAN            *string `json:"bank_account_iban"`
	BIC             *string `json:"bank_account_bic"`
	Currency        string  `json:"bank_account_currency"`
	IsDefault       bool    `json:"is_default"`
	IsVerified      bool    `json:"is_verified"`
	IsSEPACompliant bool    `json:"is_sepa_compliant"`
}

type AdvertiserResponse struct {
	AdvertiserID   string                `json:"advertiser_id"`
	AdvertiserName string                `json:"advertiser_name"`
	AdvertiserType string                `json:"advertiser_type"`
	AddressLine1   string                `json:"address_line_1"`
	AddressLine2   *string               `json:"address_line_2"`
	City           string                `json:"city"`
	State          string                `json:"state"`
	PostalCode     string                `json:"postal_code"`
	Country        string                `json:"country"`
	Latitude       *float64              `json:"latitude"`
	Longitude      *float64              `json:"longitude"`
	Timezone       string                `json:"timezone"`
	CreatedByID    string                `json:"created_by_id"`
	CreatedByName  *string               `json:"created_by_name"`
	UpdatedByName  *string               `json:"updated_by_name"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
	Contacts       []ContactResponse     `json:"contacts"`
	BankAccounts   []BankAccountResponse `json:"bank_accounts"`
}

type AdvertiserListItem struct {
	AdvertiserID   string    `json:"advertiser_id"`
	AdvertiserName string    `json:"advertiser_name"`
	AdvertiserType string    `json:"advertiser_type"`
	City           string    `json:"city"`
	Country        string    `json:"country"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToAdvertiserResponse(agg *Aggregate) AdvertiserResponse {
	a := &agg.Advertiser

	contacts := make([]ContactResponse, 0, len(agg.Contacts))
	for _, c := range agg.Contacts {
		contacts = append(contacts, ContactResponse{
			ContactID:         c.ID,
			ContactName:       c.Name,
			ContactEmail:      c.Email,
			ContactPhone:      c.Phone,
			ContactAddress:    c.Address,
			ContactCity:       c.City,
			ContactState:      c.State,
			ContactPostalCode: c.PostalCode,
			ContactCountry:    c.Country,
			IsPointOfContact:  c.IsPointOfContact,
			ContactType:       c.Type,
		})
	}

	accounts := make([]BankAccountResponse, 0, len(agg.BankAccounts))
	for _, b := range agg.BankAccounts {
		accounts = append(accounts, BankAccountResponse{
			BankID:          b.ID,
			BankName:        b.BankName,
			AccountName:     b.AccountName,
			RoutingNumber:   b.RoutingNumber,
			SwiftCode:       b.SwiftCode,
			IBAN:            b.IBAN,
			BIC:             b.BIC,
			Currency:        b.Currency,
			IsDefault:       b.IsDefault,
			IsVerified:      b.IsVerified,
			IsSEPACompliant: b.IsSEPACompliant,
		})
	}

	return AdvertiserResponse{
		AdvertiserID:   a.ID,
		AdvertiserName: a.Name,
		AdvertiserType: a.Type,
		AddressLine1:   a.AddressLine1,
		AddressLine2:   a.AddressLine2,
		City:           a.City,
		State:          a.State,
		PostalCode:     a.PostalCode,
		Country:        a.Country,
		Latitude:       a.Latitude,
		Longitude:      a.Longitude,
		Timezone:       a.Timezone,
		CreatedByID:    a.CreatedByID,
		CreatedByName:  a.CreatedByName,
		UpdatedByName:  a.UpdatedByName,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
		Contacts:       contacts,
		BankAccounts:   accounts,
	}
}

func ToAdvertiserListItems(advertisers []Advertiser) []AdvertiserListItem {
	items := make([]AdvertiserListItem, 0, len(advertisers))
	for _, a := range advertisers {
		items = append(items, AdvertiserListItem{
			AdvertiserID:   a.ID,
			AdvertiserName: a.Name,
			AdvertiserType: a.Type,
			City:           a.City,
			Country:        a.Country,
			CreatedAt:      a.CreatedAt,
		})
	}
	return items
}

func toContacts(inputs []ContactInput) []Contact {
	out := make([]Contact, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, Contact{
			Name:             in.ContactName,
			Email:            in.ContactEmail,
			Phone:            in.ContactPhone,
			Address:          in.ContactAddress,
			City:             in.ContactCity,
			State:            in.ContactState,
			PostalCode:       in.ContactPostalCode,
			Country:          in.ContactCountry,
			IsPointOfContact: in.IsPointOfContact,
			Type:             in.ContactType,
		})
	}
	return out
}
