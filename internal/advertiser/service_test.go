// AngelaMos | 2026
// service_test.go

package advertiser

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/campaign-studio/internal/authz"
	"github.com/carterperez-dev/campaign-studio/internal/core"
)

type memoryRepo struct {
	advertisers map[string]Advertiser
	contacts    map[string][]Contact
	accounts    map[string][]BankAccount
	writes      int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		advertisers: map[string]Advertiser{},
		contacts:    map[string][]Contact{},
		accounts:    map[string][]BankAccount{},
	}
}

func (m *memoryRepo) Create(
	_ context.Context,
	a *Advertiser,
	contacts []Contact,
	accounts []BankAccount,
) error {
	m.writes++
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	m.advertisers[a.ID] = *a
	m.contacts[a.ID] = contacts
	m.accounts[a.ID] = accounts
	return nil
}

func (m *memoryRepo) Get(_ context.Context, id string) (*Advertiser, error) {
	a, ok := m.advertisers[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &a, nil
}

func (m *memoryRepo) Contacts(_ context.Context, id string) ([]Contact, error) {
	return m.contacts[id], nil
}

// BankAccounts mirrors the SQL projection, which never reads the
// ciphertext back.
func (m *memoryRepo) BankAccounts(_ context.Context, id string) ([]BankAccount, error) {
	out := make([]BankAccount, 0, len(m.accounts[id]))
	for _, b := range m.accounts[id] {
		b.NumberEncrypted = ""
		out = append(out, b)
	}
	return out, nil
}

func (m *memoryRepo) Update(_ context.Context, change Change) error {
	id := change.Advertiser.ID
	if _, ok := m.advertisers[id]; !ok {
		return core.ErrNotFound
	}
	m.writes++
	m.advertisers[id] = *change.Advertiser
	if change.ReplaceContacts {
		m.contacts[id] = change.Contacts
	}
	if change.ReplaceBankAccounts {
		m.accounts[id] = change.BankAccounts
	}
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.advertisers[id]; !ok {
		return core.ErrNotFound
	}
	delete(m.advertisers, id)
	return nil
}

func (m *memoryRepo) List(context.Context, ListParams) ([]Advertiser, int, error) {
	out := make([]Advertiser, 0, len(m.advertisers))
	for _, a := range m.advertisers {
		out = append(out, a)
	}
	return out, len(out), nil
}

var (
	manager = &authz.Identity{
		UserID: "11111111-1111-4111-8111-111111111111", Username: "mia",
		FirstName: "Mia", LastName: "Wong", RoleName: authz.RoleCampaignManager,
	}
	otherManager = &authz.Identity{
		UserID: "22222222-2222-4222-8222-222222222222", Username: "otto",
		RoleName: authz.RoleCampaignManager,
	}
	appAdmin = &authz.Identity{
		UserID: "33333333-3333-4333-8333-333333333333", Username: "ada",
		RoleName: authz.RoleAppAdmin,
	}
)

func newCipher(t *testing.T) *core.Cipher {
	t.Helper()
	c, err := core.NewCipher("test-encryption-key")
	require.NoError(t, err)
	return c
}

func newService(t *testing.T) (*Service, *memoryRepo, *core.Cipher) {
	t.Helper()
	repo := newMemoryRepo()
	cipher := newCipher(t)
	return NewService(repo, cipher, authz.DefaultPolicy), repo, cipher
}

func createRequest() CreateAdvertiserRequest {
	return CreateAdvertiserRequest{
		AdvertiserName: "Acme Outdoor",
		AdvertiserType: "business",
		AddressLine1:   "1 Main St",
		City:           "Portland",
		State:          "OR",
		PostalCode:     "97201",
		Country:        "US",
		Timezone:       "America/Los_Angeles",
		Contacts: []ContactInput{{
			ContactName:      "Sam Lee",
			ContactEmail:     "sam@acme.test",
			ContactPhone:     "+1 503 555 0100",
			IsPointOfContact: true,
			ContactType:      "sales",
		}},
		BankAccounts: []BankAccountInput{{
			BankName:      "First Bank",
			AccountNumber: "12345678",
			AccountName:   "Acme Outdoor LLC",
			Currency:      "USD",
		}},
	}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	appErr, ok := core.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	return appErr.StatusCode
}

func decodeUpdate(t *testing.T, body string) UpdateAdvertiserRequest {
	t.Helper()
	var req UpdateAdvertiserRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func TestCreateEncryptsAccountNumber(t *testing.T) {
	svc, repo, cipher := newService(t)

	agg, err := svc.Create(context.Background(), manager, createRequest())
	require.NoError(t, err)

	stored := repo.accounts[agg.Advertiser.ID]
	require.Len(t, stored, 1)
	assert.NotEqual(t, "12345678", stored[0].NumberEncrypted)
	assert.NotContains(t, stored[0].NumberEncrypted, "12345678")

	plain, err := cipher.Decrypt(stored[0].NumberEncrypted)
	require.NoError(t, err)
	assert.Equal(t, "12345678", plain)

	assert.Equal(t, "Mia Wong", *agg.Advertiser.CreatedByName)
	require.Len(t, agg.BankAccounts, 1)
	assert.Empty(t, agg.BankAccounts[0].NumberEncrypted)
}

func TestCreateRejectsBrokenInvariants(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateAdvertiserRequest)
	}{
		{"no contacts", func(r *CreateAdvertiserRequest) { r.Contacts = nil }},
		{"blank account number", func(r *CreateAdvertiserRequest) { r.BankAccounts[0].AccountNumber = "  " }},
		{"short currency", func(r *CreateAdvertiserRequest) { r.BankAccounts[0].Currency = "US" }},
		{"bad contact type", func(r *CreateAdvertiserRequest) { r.Contacts[0].ContactType = "ceo" }},
		{"latitude out of range", func(r *CreateAdvertiserRequest) {
			lat := 91.0
			r.Latitude = &lat
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			req := createRequest()
			tt.mutate(&req)

			_, err := svc.Create(context.Background(), manager, req)
			assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
			assert.Zero(t, repo.writes)
		})
	}
}

func TestUpdateReplacesCollections(t *testing.T) {
	svc, repo, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, manager, createRequest())
	require.NoError(t, err)
	id := created.Advertiser.ID

	_, after, err := svc.Update(ctx, manager, id, decodeUpdate(t, `{
		"contacts": [
			{"contact_name":"A","contact_email":"a@acme.test","contact_phone":"1","contact_type":"tech"},
			{"contact_name":"B","contact_email":"b@acme.test","contact_phone":"2","contact_type":"finance"}
		]
	}`))
	require.NoError(t, err)
	assert.Len(t, after.Contacts, 2)
	assert.Len(t, after.BankAccounts, 1)

	_, after, err = svc.Update(ctx, manager, id, decodeUpdate(t, `{"bank_accounts":[]}`))
	require.NoError(t, err)
	assert.Empty(t, after.BankAccounts)
	assert.Empty(t, repo.accounts[id])

	_, _, err = svc.Update(ctx, manager, id, decodeUpdate(t, `{"contacts":[]}`))
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, _, err = svc.Update(ctx, manager, id, decodeUpdate(t,
		`{"bank_accounts":[{"bank_name":"B","bank_account_name":"N","bank_account_currency":"EUR"}]}`))
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestUpdatePartialFields(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	req := createRequest()
	lat := 45.52
	req.Latitude = &lat

	created, err := svc.Create(ctx, manager, req)
	require.NoError(t, err)
	id := created.Advertiser.ID

	_, after, err := svc.Update(ctx, appAdmin, id, decodeUpdate(t,
		`{"advertiser_name":"Acme Coast","latitude":null}`))
	require.NoError(t, err)
	assert.Equal(t, "Acme Coast", after.Advertiser.Name)
	assert.Nil(t, after.Advertiser.Latitude)
	assert.Equal(t, "Portland", after.Advertiser.City)
	assert.Equal(t, "ada", *after.Advertiser.UpdatedByName)

	_, _, err = svc.Update(ctx, manager, id, decodeUpdate(t, `{"city":null}`))
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, err))
}

func TestOwnershipAndAdminDelete(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, manager, createRequest())
	require.NoError(t, err)
	id := created.Advertiser.ID

	_, _, err = svc.Update(ctx, otherManager, id, decodeUpdate(t, `{"city":"Salem"}`))
	assert.True(t, errors.Is(err, core.ErrForbidden))

	_, err = svc.Delete(ctx, manager, id)
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))

	_, err = svc.Delete(ctx, appAdmin, id)
	require.NoError(t, err)

	_, err = svc.Get(ctx, id)
	assert.True(t, errors.Is(err, core.ErrNotFound))
}
