package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/application/usecase"
	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria — cada recurso con dueño distinto al solicitante
// ──────────────────────────────────────────────────────────────────────────────

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (f *fakeCustomerRepo) Create(c *entity.Customer) error { f.customers[c.ID] = c; return nil }
func (f *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return f.customers[id], nil
}
func (f *fakeCustomerRepo) GetByTaxID(clientID, taxID string) (*entity.Customer, error) {
	for _, c := range f.customers {
		if c.ClientID == clientID && c.TaxID == taxID {
			return c, nil
		}
	}
	return nil, nil
}
func (f *fakeCustomerRepo) Update(c *entity.Customer) error { f.customers[c.ID] = c; return nil }
func (f *fakeCustomerRepo) ListByClient(clientID, search string, limit, offset int) ([]*entity.Customer, error) {
	return nil, nil
}
func (f *fakeCustomerRepo) Delete(id string) error { delete(f.customers, id); return nil }

type fakeVendorRepo struct {
	vendors map[string]*entity.Vendor
}

func (f *fakeVendorRepo) Create(v *entity.Vendor) error { f.vendors[v.ID] = v; return nil }
func (f *fakeVendorRepo) GetByID(id string) (*entity.Vendor, error) {
	return f.vendors[id], nil
}
func (f *fakeVendorRepo) GetByTaxID(clientID, taxID string) (*entity.Vendor, error) {
	for _, v := range f.vendors {
		if v.ClientID == clientID && v.TaxID == taxID {
			return v, nil
		}
	}
	return nil, nil
}
func (f *fakeVendorRepo) Update(v *entity.Vendor) error { f.vendors[v.ID] = v; return nil }
func (f *fakeVendorRepo) ListByClient(clientID, search string, limit, offset int) ([]*entity.Vendor, error) {
	return nil, nil
}
func (f *fakeVendorRepo) Delete(id string) error { delete(f.vendors, id); return nil }

type fakeBankRepo struct {
	details map[string]*entity.BankDetail
}

func (f *fakeBankRepo) Create(d *entity.BankDetail) error { f.details[d.ID] = d; return nil }
func (f *fakeBankRepo) GetByID(id string) (*entity.BankDetail, error) {
	return f.details[id], nil
}
func (f *fakeBankRepo) Update(d *entity.BankDetail) error { f.details[d.ID] = d; return nil }
func (f *fakeBankRepo) ListByClient(clientID string) ([]*entity.BankDetail, error) {
	return nil, nil
}
func (f *fakeBankRepo) Delete(id string) error { delete(f.details, id); return nil }

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (f *fakeUserRepo) Create(u *entity.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return f.users[id], nil
}
func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) { return nil, nil }
func (f *fakeUserRepo) GetByEmailAndClient(email, clientID string) (*entity.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Update(u *entity.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) ListByClient(clientID string, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Delete(id string) error { delete(f.users, id); return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Pertenencia al account — lecturas y mutaciones por id nunca cruzan tenants
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomerGetByID_OtroAccountEsForbidden(t *testing.T) {
	repo := &fakeCustomerRepo{customers: map[string]*entity.Customer{
		"c1": {ID: "c1", ClientID: "tenant-b", Name: "ACME", TaxID: "900"},
	}}
	uc := usecase.NewCustomerUseCase(repo)

	_, err := uc.GetByID("tenant-a", "c1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.GetByID("tenant-b", "c1")
	require.NoError(t, err, "el dueño sí puede leerlo")
	assert.Equal(t, "ACME", out.Name)
}

func TestCustomerDelete_OtroAccountNoBorra(t *testing.T) {
	repo := &fakeCustomerRepo{customers: map[string]*entity.Customer{
		"c1": {ID: "c1", ClientID: "tenant-b", Name: "ACME", TaxID: "900"},
	}}
	uc := usecase.NewCustomerUseCase(repo)

	err := uc.Delete("tenant-a", "c1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.NotNil(t, repo.customers["c1"], "el registro ajeno queda intacto")
}

func TestVendorGetByIDYDelete_OtroAccountEsForbidden(t *testing.T) {
	repo := &fakeVendorRepo{vendors: map[string]*entity.Vendor{
		"v1": {ID: "v1", ClientID: "tenant-b", Name: "Proveedor SAS", TaxID: "800"},
	}}
	uc := usecase.NewVendorUseCase(repo)

	_, err := uc.GetByID("tenant-a", "v1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = uc.Delete("tenant-a", "v1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.NotNil(t, repo.vendors["v1"])
}

func TestBankUpdateYDelete_OtroAccountEsForbidden(t *testing.T) {
	repo := &fakeBankRepo{details: map[string]*entity.BankDetail{
		"b1": {ID: "b1", ClientID: "tenant-b", BankName: "Bancolombia", AccountNumber: "123"},
	}}
	uc := usecase.NewBankUseCase(repo)

	otherName := "Davivienda"
	_, err := uc.Update("tenant-a", "b1", dto.UpdateBankDetailRequest{BankName: &otherName})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, "Bancolombia", repo.details["b1"].BankName, "la mutación cruzada no aplica")

	err = uc.Delete("tenant-a", "b1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.NotNil(t, repo.details["b1"])
}

func TestUserGetUpdateDelete_OtroAccountEsForbidden(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*entity.User{
		"u1": {ID: "u1", ClientID: "tenant-b", Email: "ana@b.co", Name: "Ana", Role: "user"},
	}}
	uc := usecase.NewUserUseCase(repo)

	_, err := uc.GetByID("tenant-a", "u1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	newName := "Mallory"
	_, err = uc.Update("tenant-a", "u1", dto.UpdateUserRequest{Name: &newName})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, "Ana", repo.users["u1"].Name)

	err = uc.Delete("tenant-a", "u1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.NotNil(t, repo.users["u1"])
}

func TestUserGetByID_MasterSinRestriccion(t *testing.T) {
	// Alcance vacío = master (operador de plataforma): cruza tenants.
	repo := &fakeUserRepo{users: map[string]*entity.User{
		"u1": {ID: "u1", ClientID: "tenant-b", Email: "ana@b.co", Name: "Ana", Role: "user"},
	}}
	uc := usecase.NewUserUseCase(repo)

	out, err := uc.GetByID("", "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", out.Name)
}
