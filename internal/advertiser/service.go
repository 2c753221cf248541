// AngelaMos | 2026
// service.go

package advertiser

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/campaign-studio/internal/authz"
	"github.com/carterperez-dev/campaign-studio/internal/core"
)

// Encrypter seals bank account numbers. *core.Cipher satisfies it.
type Encrypter interface {
	Encrypt(plaintext string) (string, error)
}

type Service struct {
	repo   Repository
	cipher Encrypter
	policy authz.Policy
}

func NewService(repo Repository, cipher Encrypter, policy authz.Policy) *Service {
	return &Service{repo: repo, cipher: cipher, policy: policy}
}

func (s *Service) Create(
	ctx context.Context,
	caller *authz.Identity,
	req CreateAdvertiserRequest,
) (*Aggregate, error) {
	if err := s.policy.Enforce(caller, authz.ResourceAdvertiser, authz.OpCreate, ""); err != nil {
		return nil, err
	}

	name := caller.DisplayName()
	a := &Advertiser{
		ID:            uuid.New().String(),
		Name:          req.AdvertiserName,
		Type:          req.AdvertiserType,
		AddressLine1:  req.AddressLine1,
		AddressLine2:  req.AddressLine2,
		City:          req.City,
		State:         req.State,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Timezone:      req.Timezone,
		CreatedByID:   caller.UserID,
		CreatedByName: &name,
		UpdatedByName: &name,
	}

	contacts := toContacts(req.Contacts)

	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := validateContacts(contacts); err != nil {
		return nil, err
	}

	accounts, err := s.sealBankAccounts(req.BankAccounts)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, a, contacts, accounts); err != nil {
		return nil, err
	}

	return s.Get(ctx, a.ID)
}

// sealBankAccounts validates the inputs and replaces every plaintext
// number with its ciphertext.
func (s *Service) sealBankAccounts(inputs []BankAccountInput) ([]BankAccount, error) {
	accounts := make([]BankAccount, 0, len(inputs))
	for _, in := range inputs {
		number := strings.TrimSpace(in.AccountNumber)
		if number == "" {
			return nil, core.ValidationError("bank_account_number is required")
		}

		sealed, err := s.cipher.Encrypt(number)
		if err != nil {
			return nil, fmt.Errorf("encrypt bank account number: %w", err)
		}

		accounts = append(accounts, BankAccount{
			BankName:        in.BankName,
			NumberEncrypted: sealed,
			AccountName:     in.AccountName,
			RoutingNumber:   in.RoutingNumber,
			SwiftCode:       in.SwiftCode,
			IBAN:            in.IBAN,
			BIC:             in.BIC,
			Currency:        strings.ToUpper(in.Currency),
			IsDefault:       in.IsDefault,
			IsVerified:      in.IsVerified,
			IsSEPACompliant: in.IsSEPACompliant,
		})
	}

	if err := validateBankAccounts(accounts); err != nil {
		return nil, err
	}

	return accounts, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Aggregate, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	contacts, err := s.repo.Contacts(ctx, id)
	if err != nil {
		return nil, err
	}

	accounts, err := s.repo.BankAccounts(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Aggregate{Advertiser: *a, Contacts: contacts, BankAccounts: accounts}, nil
}

func (s *Service) Update(
	ctx context.Context,
	caller *authz.Identity,
	id string,
	req UpdateAdvertiserRequest,
) (*Aggregate, *Aggregate, error) {
	before, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if err := s.policy.Enforce(
		caller, authz.ResourceAdvertiser, authz.OpUpdate, before.Advertiser.CreatedByID,
	); err != nil {
		return nil, nil, err
	}

	merged := before.Advertiser
	if err := applyUpdate(&merged, req); err != nil {
		return nil, nil, err
	}

	name := caller.DisplayName()
	merged.UpdatedByName = &name

	if err := merged.Validate(); err != nil {
		return nil, nil, err
	}

	change := Change{Advertiser: &merged}

	if req.Contacts.Set {
		change.ReplaceContacts = true
		change.Contacts = toContacts(req.Contacts.Value)
		if err := validateContacts(change.Contacts); err != nil {
			return nil, nil, err
		}
	}

	if req.BankAccounts.Set {
		change.ReplaceBankAccounts = true
		change.BankAccounts, err = s.sealBankAccounts(req.BankAccounts.Value)
		if err != nil {
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

func applyUpdate(a *Advertiser, req UpdateAdvertiserRequest) error {
	required := []struct {
		field string
		src   core.Optional[string]
		dst   *string
	}{
		{"advertiser_name", req.AdvertiserName, &a.Name},
		{"advertiser_type", req.AdvertiserType, &a.Type},
		{"address_line_1", req.AddressLine1, &a.AddressLine1},
		{"city", req.City, &a.City},
		{"state", req.State, &a.State},
		{"postal_code", req.PostalCode, &a.PostalCode},
		{"country", req.Country, &a.Country},
		{"timezone", req.Timezone, &a.Timezone},
	}
	for _, f := range required {
		if !f.src.Apply(f.dst) {
			return core.SchemaError(f.field + " may not be null")
		}
	}

	req.AddressLine2.ApplyNullable(&a.AddressLine2)
	req.Latitude.ApplyNullable(&a.Latitude)
	req.Longitude.ApplyNullable(&a.Longitude)

	return nil
}

func (s *Service) Delete(
	ctx context.Context,
	caller *authz.Identity,
	id string,
) (*Aggregate, error) {
	if err := s.policy.Enforce(caller, authz.ResourceAdvertiser, authz.OpDelete, ""); err != nil {
		return nil, err
	}

	before, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	return before, nil
}

func (s *Service) List(ctx context.Context, params ListParams) ([]Advertiser, int, error) {
	return s.repo.List(ctx, params)
}
