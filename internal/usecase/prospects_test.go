package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emika-hq/prospect-hub/internal/entity"
)

func TestCreateProspectRejectsDuplicateEmail(t *testing.T) {
	uc := NewProspectsUseCase(newProspectRepo(t))

	_, err := uc.Create(ProspectInput{FirstName: "Jane", Email: "jane@acme.io"})
	require.NoError(t, err)

	_, err = uc.Create(ProspectInput{FirstName: "Other", Email: "JANE@ACME.IO"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestCreateProspectDefaults(t *testing.T) {
	uc := NewProspectsUseCase(newProspectRepo(t))

	p, err := uc.Create(ProspectInput{FirstName: "Jane"})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, entity.StatusNew, p.Status)
	assert.Zero(t, p.FitScore)
	assert.NotEmpty(t, p.CreatedAt)
}

func TestUpdateProspectPatchesOnlyProvidedFields(t *testing.T) {
	uc := NewProspectsUseCase(newProspectRepo(t))

	p, err := uc.Create(ProspectInput{FirstName: "Jane", Title: "Engineer", Notes: "keep"})
	require.NoError(t, err)

	title := "VP Sales"
	got, err := uc.Update(p.ID, ProspectPatch{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "VP Sales", got.Title)
	assert.Equal(t, "Jane", got.FirstName)
	assert.Equal(t, "keep", got.Notes)
	assert.NotEqual(t, p.UpdatedAt, got.UpdatedAt)
}

func TestUpdateProspectInvalidStatus(t *testing.T) {
	uc := NewProspectsUseCase(newProspectRepo(t))

	p, err := uc.Create(ProspectInput{FirstName: "Jane"})
	require.NoError(t, err)

	bad := "on-fire"
	_, err = uc.Update(p.ID, ProspectPatch{Status: &bad})
	assert.True(t, IsValidation(err))
}

func TestUpdateProspectNotFound(t *testing.T) {
	uc := NewProspectsUseCase(newProspectRepo(t))

	_, err := uc.Update("missing", ProspectPatch{})
	assert.True(t, IsNotFound(err))
}

func TestDeleteProspectNotFound(t *testing.T) {
	uc := NewProspectsUseCase(newProspectRepo(t))
	assert.True(t, IsNotFound(uc.Delete("missing")))
}

func TestBulkDeleteRequiresIDs(t *testing.T) {
	uc := NewProspectsUseCase(newProspectRepo(t))

	_, err := uc.BulkDelete(nil)
	assert.True(t, IsValidation(err))
}

func TestBulkDeleteCountsOnlyPresent(t *testing.T) {
	uc := NewProspectsUseCase(newProspectRepo(t))

	a, err := uc.Create(ProspectInput{FirstName: "A"})
	require.NoError(t, err)
	b, err := uc.Create(ProspectInput{FirstName: "B"})
	require.NoError(t, err)

	deleted, err := uc.BulkDelete([]string{a.ID, "missing"})
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	out, err := uc.List(ListProspectsInput{})
	require.NoError(t, err)
	require.Len(t, out.Records, 1)
	assert.Equal(t, b.ID, out.Records[0].ID)
}

func seedForList(t *testing.T, uc *ProspectsUseCase) {
	t.Helper()
	inputs := []ProspectInput{
		{FirstName: "Alice", LastName: "Baker", Email: "alice@acme.io", Company: "Acme", Title: "CTO", Status: "qualified", ProfileID: "pr-1"},
		{FirstName: "Bob", LastName: "Cole", Email: "bob@initech.com", Company: "Initech", Title: "VP Sales"},
		{FirstName: "carol", LastName: "Dean", Email: "carol@acme.io", Company: "Acme", Title: "Engineer", Status: "contacted", ProfileID: "pr-1"},
	}
	for _, in := range inputs {
		_, err := uc.Create(in)
		require.NoError(t, err)
	}
}

func TestListFilters(t *testing.T) {
	uc := NewProspectsUseCase(newProspectRepo(t))
	seedForList(t, uc)

	out, err := uc.List(ListProspectsInput{Status: "qualified"})
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "Alice", out.Records[0].FirstName)

	out, err = uc.List(ListProspectsInput{Profile: "pr-1"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)

	// search spans name, email, company, and title
	out, err = uc.List(ListProspectsInput{Search: "initech"})
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "Bob", out.Records[0].FirstName)

	out, err = uc.List(ListProspectsInput{Search: "vp sales"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Total)
}

func TestListSortIsCaseInsensitive(t *testing.T) {
	uc := NewProspectsUseCase(newProspectRepo(t))
	seedForList(t, uc)

	out, err := uc.List(ListProspectsInput{Sort: "firstName"})
	require.NoError(t, err)
	require.Len(t, out.Records, 3)
	assert.Equal(t, "Alice", out.Records[0].FirstName)
	assert.Equal(t, "Bob", out.Records[1].FirstName)
	assert.Equal(t, "carol", out.Records[2].FirstName)

	out, err = uc.List(ListProspectsInput{Sort: "-firstName"})
	require.NoError(t, err)
	assert.Equal(t, "carol", out.Records[0].FirstName)
}

func TestListPagingKeepsTotal(t *testing.T) {
	uc := NewProspectsUseCase(newProspectRepo(t))
	seedForList(t, uc)

	out, err := uc.List(ListProspectsInput{Sort: "firstName", Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Total)
	require.Len(t, out.Records, 1)
	assert.Equal(t, "Bob", out.Records[0].FirstName)

	out, err = uc.List(ListProspectsInput{Offset: 99})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Total)
	assert.Empty(t, out.Records)
}
