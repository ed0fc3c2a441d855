package refdata

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRefDataRepo struct {
	offices   []Office
	positions []Position
	grades    []SalaryGrade

	listErr error
}

func (f *fakeRefDataRepo) ListOffices(ctx context.Context) ([]Office, error) {
	return f.offices, f.listErr
}

func (f *fakeRefDataRepo) ListPositions(ctx context.Context) ([]Position, error) {
	return f.positions, f.listErr
}

func (f *fakeRefDataRepo) ListSalaryGrades(ctx context.Context) ([]SalaryGrade, error) {
	return f.grades, f.listErr
}

func (f *fakeRefDataRepo) FindOfficeByName(ctx context.Context, name string) (*Office, error) {
	for _, o := range f.offices {
		if strings.EqualFold(o.Name, name) {
			return &o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRefDataRepo) FindPositionByTitle(ctx context.Context, title string) (*Position, error) {
	for _, p := range f.positions {
		if strings.EqualFold(p.Title, title) {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRefDataRepo) FindSalaryGradeByGrade(ctx context.Context, grade string) (*SalaryGrade, error) {
	for _, g := range f.grades {
		if strings.EqualFold(g.Grade, grade) {
			return &g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func seededRepo() *fakeRefDataRepo {
	return &fakeRefDataRepo{
		offices:   []Office{{ID: 1, Name: "Accounting", IsActive: true}, {ID: 2, Name: "Treasury", IsActive: true}},
		positions: []Position{{ID: 10, Title: "Administrative Aide", IsActive: true}},
		grades:    []SalaryGrade{{ID: 6, Grade: "SG-6", MonthlyRate: decimal.NewFromInt(17866)}},
	}
}

func TestGetAllBundlesCatalogsAndVocabularies(t *testing.T) {
	svc := NewService(seededRepo(), nil)

	resp, err := svc.GetAll(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Offices, 2)
	assert.Equal(t, "Accounting", resp.Offices[0].Name)
	require.Len(t, resp.SalaryGrades, 1)
	assert.Equal(t, 17866.0, resp.SalaryGrades[0].MonthlyRate)

	assert.Equal(t, EmploymentTypes, resp.EmploymentTypes)
	assert.Equal(t, FundSources, resp.FundSources)
	assert.Equal(t, Sexes, resp.Sexes)
}

func TestResolversReturnCatalogIDs(t *testing.T) {
	svc := NewService(seededRepo(), nil)
	ctx := context.Background()

	id, err := svc.ResolveOffice(ctx, "treasury")
	require.NoError(t, err)
	assert.Equal(t, 2, id)

	id, err = svc.ResolvePosition(ctx, "Administrative Aide")
	require.NoError(t, err)
	assert.Equal(t, 10, id)

	id, err = svc.ResolveSalaryGrade(ctx, "sg-6")
	require.NoError(t, err)
	assert.Equal(t, 6, id)
}

func TestResolverMissIsZeroNotError(t *testing.T) {
	svc := NewService(seededRepo(), nil)

	id, err := svc.ResolveOffice(context.Background(), "Office of the Mayor")
	require.NoError(t, err)
	assert.Equal(t, 0, id)

	id, err = svc.ResolveSalaryGrade(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 0, id)
}

func TestGetAllPropagatesRepoErrors(t *testing.T) {
	repo := seededRepo()
	repo.listErr = errors.New("connection reset")
	svc := NewService(repo, nil)

	_, err := svc.GetAll(context.Background())
	assert.Error(t, err)
}
