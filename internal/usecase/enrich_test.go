package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/emika-hq/prospect-hub/internal/entity"
	"github.com/emika-hq/prospect-hub/internal/infra/integration/apollo"
	"github.com/emika-hq/prospect-hub/internal/infra/queue"
)

// MockProvider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Name() string { return "apollo" }

func (m *MockProvider) Match(ctx context.Context, apiKey string, input apollo.MatchInput) (*apollo.MatchOutput, error) {
	args := m.Called(ctx, apiKey, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apollo.MatchOutput), args.Error(1)
}

func (m *MockProvider) Search(ctx context.Context, apiKey string, input apollo.SearchInput) (*apollo.SearchOutput, error) {
	args := m.Called(ctx, apiKey, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apollo.SearchOutput), args.Error(1)
}

// MockConfigRepository
type MockConfigRepository struct {
	mock.Mock
}

func (m *MockConfigRepository) Get() (entity.Config, error) {
	args := m.Called()
	return args.Get(0).(entity.Config), args.Error(1)
}

func (m *MockConfigRepository) Mutate(fn func(entity.Config) (entity.Config, error)) error {
	args := m.Called(fn)
	return args.Error(0)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishProspectEvent(ctx context.Context, payload queue.ProspectEventPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func configWithApolloKey() entity.Config {
	cfg := entity.DefaultConfig()
	cfg.APIKeys["apollo"] = "key-123"
	return cfg
}

func TestEnrichFailsFastWithoutCredential(t *testing.T) {
	repo := newProspectRepo(t)
	p := entity.NewProspect()
	seedProspects(t, repo, p)

	mockConfig := new(MockConfigRepository)
	mockConfig.On("Get").Return(entity.DefaultConfig(), nil)

	provider := new(MockProvider)
	uc := NewEnrichProspectsUseCase(repo, mockConfig, map[string]EnrichmentProvider{"apollo": provider}, nil)

	_, err := uc.Execute(context.Background(), []string{p.ID})
	require.Error(t, err)
	assert.True(t, IsProvider(err))
	provider.AssertNotCalled(t, "Match", mock.Anything, mock.Anything, mock.Anything)
}

func TestEnrichRejectsEmptyBatch(t *testing.T) {
	repo := newProspectRepo(t)
	uc := NewEnrichProspectsUseCase(repo, new(MockConfigRepository), nil, nil)

	_, err := uc.Execute(context.Background(), nil)
	assert.True(t, IsValidation(err))
}

func TestEnrichNeverOverwritesGenuineValues(t *testing.T) {
	repo := newProspectRepo(t)

	p := entity.NewProspect()
	p.FirstName = "Riley"
	p.Title = "Engineer"
	p.Email = "riley@acme.io"
	seedProspects(t, repo, p)

	mockConfig := new(MockConfigRepository)
	mockConfig.On("Get").Return(configWithApolloKey(), nil)

	provider := new(MockProvider)
	provider.On("Match", mock.Anything, "key-123", mock.Anything).Return(&apollo.MatchOutput{
		Fields: map[string]string{
			"title": "VP Sales",
			"phone": "+1-555-0100",
		},
	}, nil)

	uc := NewEnrichProspectsUseCase(repo, mockConfig, map[string]EnrichmentProvider{"apollo": provider}, nil)
	results, err := uc.Execute(context.Background(), []string{p.ID})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Error)

	all, err := repo.All()
	require.NoError(t, err)
	got := all[0]
	assert.Equal(t, "Engineer", got.Title, "genuine value must survive")
	assert.Equal(t, "+1-555-0100", got.Phone, "empty field must be filled")
}

func TestEnrichReplacesMaskedValues(t *testing.T) {
	repo := newProspectRepo(t)

	p := entity.NewProspect()
	p.FirstName = "Ri***y"
	p.Email = "r••••@acme.io"
	seedProspects(t, repo, p)

	mockConfig := new(MockConfigRepository)
	mockConfig.On("Get").Return(configWithApolloKey(), nil)

	provider := new(MockProvider)
	provider.On("Match", mock.Anything, mock.Anything, mock.Anything).Return(&apollo.MatchOutput{
		Fields: map[string]string{"email": "riley@acme.io"},
	}, nil)

	uc := NewEnrichProspectsUseCase(repo, mockConfig, map[string]EnrichmentProvider{"apollo": provider}, nil)
	_, err := uc.Execute(context.Background(), []string{p.ID})
	require.NoError(t, err)

	all, err := repo.All()
	require.NoError(t, err)
	assert.Equal(t, "riley@acme.io", all[0].Email)
	// firstName was masked but the provider sent nothing for it.
	assert.Equal(t, "Ri***y", all[0].FirstName)
}

func TestEnrichStatusAdvancesOnlyFromNew(t *testing.T) {
	repo := newProspectRepo(t)

	fresh := entity.NewProspect()
	contacted := entity.NewProspect()
	contacted.Status = entity.StatusContacted
	seedProspects(t, repo, fresh, contacted)

	mockConfig := new(MockConfigRepository)
	mockConfig.On("Get").Return(configWithApolloKey(), nil)

	provider := new(MockProvider)
	provider.On("Match", mock.Anything, mock.Anything, mock.Anything).Return(&apollo.MatchOutput{
		Fields: map[string]string{"title": "CTO"},
	}, nil)

	uc := NewEnrichProspectsUseCase(repo, mockConfig, map[string]EnrichmentProvider{"apollo": provider}, nil)
	_, err := uc.Execute(context.Background(), []string{fresh.ID, contacted.ID})
	require.NoError(t, err)

	all, err := repo.All()
	require.NoError(t, err)
	byID := map[string]entity.Prospect{}
	for _, p := range all {
		byID[p.ID] = p
	}
	assert.Equal(t, entity.StatusEnriched, byID[fresh.ID].Status)
	assert.Equal(t, entity.StatusContacted, byID[contacted.ID].Status)
}

func TestEnrichBatchIsolatesFailures(t *testing.T) {
	repo := newProspectRepo(t)

	good := entity.NewProspect()
	good.FirstName = "Jane"
	bad := entity.NewProspect()
	bad.FirstName = "Flaky"
	seedProspects(t, repo, good, bad)

	mockConfig := new(MockConfigRepository)
	mockConfig.On("Get").Return(configWithApolloKey(), nil)

	provider := new(MockProvider)
	provider.On("Match", mock.Anything, mock.Anything, mock.MatchedBy(func(in apollo.MatchInput) bool {
		return in.FirstName == "Jane"
	})).Return(&apollo.MatchOutput{Fields: map[string]string{"title": "CEO"}}, nil)
	provider.On("Match", mock.Anything, mock.Anything, mock.MatchedBy(func(in apollo.MatchInput) bool {
		return in.FirstName == "Flaky"
	})).Return(nil, errors.New("provider timeout"))

	uc := NewEnrichProspectsUseCase(repo, mockConfig, map[string]EnrichmentProvider{"apollo": provider}, nil)
	results, err := uc.Execute(context.Background(), []string{good.ID, bad.ID, "missing-id"})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Empty(t, results[0].Error)
	assert.Equal(t, "apollo", results[0].Provider)
	assert.Equal(t, "provider timeout", results[1].Error)
	assert.Equal(t, "Not found", results[2].Error)

	// The good record was persisted despite its siblings failing.
	all, err := repo.All()
	require.NoError(t, err)
	byID := map[string]entity.Prospect{}
	for _, p := range all {
		byID[p.ID] = p
	}
	assert.Equal(t, "CEO", byID[good.ID].Title)
}

func TestEnrichAccumulatesFieldsAcrossCalls(t *testing.T) {
	repo := newProspectRepo(t)

	p := entity.NewProspect()
	seedProspects(t, repo, p)

	mockConfig := new(MockConfigRepository)
	mockConfig.On("Get").Return(configWithApolloKey(), nil)

	provider := new(MockProvider)
	provider.On("Match", mock.Anything, mock.Anything, mock.Anything).
		Return(&apollo.MatchOutput{Fields: map[string]string{"phone": "+1-555-0100"}}, nil).Once()
	provider.On("Match", mock.Anything, mock.Anything, mock.Anything).
		Return(&apollo.MatchOutput{Fields: map[string]string{"title": "CTO"}}, nil).Once()

	uc := NewEnrichProspectsUseCase(repo, mockConfig, map[string]EnrichmentProvider{"apollo": provider}, nil)
	_, err := uc.Execute(context.Background(), []string{p.ID})
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), []string{p.ID})
	require.NoError(t, err)

	all, err := repo.All()
	require.NoError(t, err)
	fields := all[0].Enrichment.Fields
	assert.Equal(t, "+1-555-0100", fields["phone"])
	assert.Equal(t, "CTO", fields["title"])
}

func TestEnrichPublishesEvents(t *testing.T) {
	repo := newProspectRepo(t)
	p := entity.NewProspect()
	seedProspects(t, repo, p)

	mockConfig := new(MockConfigRepository)
	mockConfig.On("Get").Return(configWithApolloKey(), nil)

	provider := new(MockProvider)
	provider.On("Match", mock.Anything, mock.Anything, mock.Anything).
		Return(&apollo.MatchOutput{Fields: map[string]string{"title": "CTO"}}, nil)

	publisher := new(MockPublisher)
	publisher.On("PublishProspectEvent", mock.Anything, mock.MatchedBy(func(pl queue.ProspectEventPayload) bool {
		return pl.Event == queue.EventProspectEnriched && pl.ProspectID == p.ID
	})).Return(nil)

	uc := NewEnrichProspectsUseCase(repo, mockConfig, map[string]EnrichmentProvider{"apollo": provider}, publisher)
	_, err := uc.Execute(context.Background(), []string{p.ID})
	require.NoError(t, err)

	publisher.AssertExpectations(t)
}

func TestEnrichDoesNotBlockReadsDuringProviderCall(t *testing.T) {
	repo := newProspectRepo(t)
	p := entity.NewProspect()
	seedProspects(t, repo, p)

	mockConfig := new(MockConfigRepository)
	mockConfig.On("Get").Return(configWithApolloKey(), nil)

	entered := make(chan struct{})
	release := make(chan struct{})
	provider := new(MockProvider)
	provider.On("Match", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(&apollo.MatchOutput{Fields: map[string]string{"title": "CTO"}}, nil)

	uc := NewEnrichProspectsUseCase(repo, mockConfig, map[string]EnrichmentProvider{"apollo": provider}, nil)
	done := make(chan error, 1)
	go func() {
		_, err := uc.Execute(context.Background(), []string{p.ID})
		done <- err
	}()

	<-entered
	readDone := make(chan error, 1)
	go func() {
		_, err := repo.All()
		readDone <- err
	}()
	select {
	case err := <-readDone:
		require.NoError(t, err)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("collection read blocked while a provider call was in flight")
	}

	close(release)
	require.NoError(t, <-done)
}

func TestEnrichSkipsRecordDeletedDuringProviderCall(t *testing.T) {
	repo := newProspectRepo(t)
	p := entity.NewProspect()
	p.FirstName = "Jane"
	seedProspects(t, repo, p)

	mockConfig := new(MockConfigRepository)
	mockConfig.On("Get").Return(configWithApolloKey(), nil)

	entered := make(chan struct{})
	release := make(chan struct{})
	provider := new(MockProvider)
	provider.On("Match", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(&apollo.MatchOutput{Fields: map[string]string{"title": "CTO"}}, nil)

	uc := NewEnrichProspectsUseCase(repo, mockConfig, map[string]EnrichmentProvider{"apollo": provider}, nil)
	type result struct {
		outcomes []EnrichOutcome
		err      error
	}
	done := make(chan result, 1)
	go func() {
		outcomes, err := uc.Execute(context.Background(), []string{p.ID})
		done <- result{outcomes, err}
	}()

	<-entered
	require.NoError(t, repo.Mutate(func(prospects []entity.Prospect) ([]entity.Prospect, error) {
		return []entity.Prospect{}, nil
	}))
	close(release)

	res := <-done
	require.NoError(t, res.err)
	require.Len(t, res.outcomes, 1)
	assert.Equal(t, "Not found", res.outcomes[0].Error)

	all, err := repo.All()
	require.NoError(t, err)
	assert.Empty(t, all, "merge must not resurrect a deleted record")
}

func TestIsMaskedValue(t *testing.T) {
	assert.True(t, IsMaskedValue("Ri***y"))
	assert.True(t, IsMaskedValue("r••••@x.com"))
	assert.False(t, IsMaskedValue("Riley"))
	assert.False(t, IsMaskedValue("C*O")) // single masking char is genuine
	assert.False(t, IsMaskedValue(""))
}
