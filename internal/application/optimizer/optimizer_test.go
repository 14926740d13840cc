package optimizer_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alejandrodnm/adbot/internal/application/optimizer"
	"github.com/alejandrodnm/adbot/internal/domain"
	"github.com/alejandrodnm/adbot/internal/domain/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTraffic struct {
	records []domain.TrafficRecord
	err     error
}

func (f *fakeTraffic) FetchRecords(context.Context, int) ([]domain.TrafficRecord, error) {
	return f.records, f.err
}

type fakeApplier struct {
	mu      sync.Mutex
	applied map[string]float64 // criterion resource → puja aplicada
	failOn  string             // resource que debe fallar
}

func newFakeApplier() *fakeApplier {
	return &fakeApplier{applied: make(map[string]float64)}
}

func (f *fakeApplier) ApplyBid(_ context.Context, resource string, newBid float64, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if resource == f.failOn {
		return errors.New("mutate rejected")
	}
	f.applied[resource] = newBid
	return nil
}

type fakeSink struct {
	runs []domain.OptimizationRun
	err  error
}

func (f *fakeSink) WriteRun(_ context.Context, run domain.OptimizationRun) error {
	f.runs = append(f.runs, run)
	return f.err
}

func (f *fakeSink) Close() error { return nil }

type fakeNotifier struct {
	runs []domain.OptimizationRun
}

func (f *fakeNotifier) Notify(_ context.Context, run domain.OptimizationRun) error {
	f.runs = append(f.runs, run)
	return nil
}

func testEngine(t *testing.T, name string) *strategy.Engine {
	t.Helper()
	s, err := strategy.FromName(name, strategy.Thresholds{MaxCPA: 5})
	require.NoError(t, err)
	return strategy.NewEngine(s, strategy.EngineConfig{})
}

func campaignFixture() (*fakeTraffic, *fakeDirectory) {
	traffic := &fakeTraffic{records: []domain.TrafficRecord{
		paidRecord("https://shop.test/?gclid=A", 10, "registr"),
		paidRecord("https://shop.test/?gclid=A", 5, "none"),
		paidRecord("https://shop.test/?gclid=B", 8, "none"),
		paidRecord("https://shop.test/landing", 1, "none"),
	}}
	directory := &fakeDirectory{
		resolve: func(batch []string) (map[string]string, error) {
			out := make(map[string]string, len(batch))
			for _, id := range batch {
				switch id {
				case "A":
					out[id] = "running shoes"
				case "B":
					out[id] = "trail boots"
				}
			}
			return out, nil
		},
		keywords: []domain.CampaignKeyword{
			{ID: "11", Resource: "customers/1/adGroupCriteria/10~11", Text: "running shoes", CPCBid: 1.00},
			{ID: "12", Resource: "customers/1/adGroupCriteria/10~12", Text: "trail boots", CPCBid: 2.00},
			{ID: "13", Resource: "customers/1/adGroupCriteria/10~13", Text: "hiking socks", CPCBid: 0.50},
		},
	}
	return traffic, directory
}

func TestOptimizer_Run_EndToEnd(t *testing.T) {
	traffic, directory := campaignFixture()
	applier := newFakeApplier()
	sink := &fakeSink{}
	notifier := &fakeNotifier{}

	o := optimizer.New(
		optimizer.Config{WindowDays: 30, ConversionTags: []string{"registr", "order"}},
		traffic, directory, applier, sink, notifier,
		testEngine(t, "roas"),
	)

	run, err := o.Run(context.Background(), "campaign-1")
	require.NoError(t, err)

	// Cobertura completa: toda keyword habilitada y todo tráfico tienen decisión
	require.Contains(t, run.Decisions, "running shoes")
	require.Contains(t, run.Decisions, "trail boots")
	require.Contains(t, run.Decisions, "hiking socks")
	require.Contains(t, run.Decisions, domain.KeywordUnknown)
	assert.Len(t, run.Decisions, len(run.Stats))

	// running shoes: 2 clicks, 1 conversión con valor → increase +10%
	d := run.Decisions["running shoes"]
	assert.Equal(t, domain.ActionIncrease, d.Action)
	assert.InDelta(t, 1.10, d.NewBid, 0.0001)

	// trail boots: clicks sin conversiones → pause-or-lower -10%
	d = run.Decisions["trail boots"]
	assert.Equal(t, domain.ActionPauseOrLower, d.Action)
	assert.InDelta(t, 1.80, d.NewBid, 0.0001)

	// hiking socks: sin tráfico → skip, sin puja propuesta
	d = run.Decisions["hiking socks"]
	assert.Equal(t, domain.ActionSkip, d.Action)
	assert.Equal(t, 0.0, d.NewBid)

	// Los cambios se aplicaron sobre los criterion reales
	assert.InDelta(t, 1.10, applier.applied["customers/1/adGroupCriteria/10~11"], 0.0001)
	assert.InDelta(t, 1.80, applier.applied["customers/1/adGroupCriteria/10~12"], 0.0001)
	assert.NotContains(t, applier.applied, "customers/1/adGroupCriteria/10~13")

	// Reporte y notificación recibieron el run
	require.Len(t, sink.runs, 1)
	assert.Equal(t, run.ID, sink.runs[0].ID)
	require.Len(t, notifier.runs, 1)
}

func TestOptimizer_Run_DryRunNeverApplies(t *testing.T) {
	traffic, directory := campaignFixture()
	applier := newFakeApplier()
	sink := &fakeSink{}

	o := optimizer.New(
		optimizer.Config{WindowDays: 30, ConversionTags: []string{"registr"}, DryRun: true},
		traffic, directory, applier, sink, nil,
		testEngine(t, "roas"),
	)

	run, err := o.Run(context.Background(), "campaign-1")
	require.NoError(t, err)

	// Las decisiones y pujas propuestas son idénticas, pero nada se muta
	assert.InDelta(t, 1.10, run.Decisions["running shoes"].NewBid, 0.0001)
	assert.Empty(t, applier.applied)

	// El reporte sí corre en dry-run
	assert.Len(t, sink.runs, 1)
}

func TestOptimizer_Run_ApplyFailureIsPerKeyword(t *testing.T) {
	traffic, directory := campaignFixture()
	applier := newFakeApplier()
	applier.failOn = "customers/1/adGroupCriteria/10~11"

	o := optimizer.New(
		optimizer.Config{WindowDays: 30, ConversionTags: []string{"registr"}},
		traffic, directory, applier, nil, nil,
		testEngine(t, "roas"),
	)

	run, err := o.Run(context.Background(), "campaign-1")
	require.NoError(t, err, "un fallo de mutación no aborta el run")

	assert.Equal(t, "mutate rejected", run.Decisions["running shoes"].ApplyError)
	assert.Empty(t, run.Decisions["trail boots"].ApplyError)
	assert.InDelta(t, 1.80, applier.applied["customers/1/adGroupCriteria/10~12"], 0.0001)
}

func TestOptimizer_Run_TrafficFailureAborts(t *testing.T) {
	directory := &fakeDirectory{}
	o := optimizer.New(
		optimizer.Config{},
		&fakeTraffic{err: errors.New("db locked")},
		directory, nil, nil, nil,
		testEngine(t, "cpa"),
	)

	_, err := o.Run(context.Background(), "campaign-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch traffic")
	assert.Empty(t, directory.batchSizes(), "sin tráfico no hay resolución")
}

func TestOptimizer_Run_KeywordListingFailureAborts(t *testing.T) {
	traffic, directory := campaignFixture()
	directory.listErr = errors.New("permission denied")

	o := optimizer.New(
		optimizer.Config{},
		traffic, directory, nil, nil, nil,
		testEngine(t, "cpa"),
	)

	_, err := o.Run(context.Background(), "campaign-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list enabled keywords")
}

func TestOptimizer_Run_SinkFailureDoesNotAbort(t *testing.T) {
	traffic, directory := campaignFixture()
	sink := &fakeSink{err: errors.New("disk full")}

	o := optimizer.New(
		optimizer.Config{ConversionTags: []string{"registr"}, DryRun: true},
		traffic, directory, nil, sink, nil,
		testEngine(t, "manual"),
	)

	run, err := o.Run(context.Background(), "campaign-1")
	require.NoError(t, err)
	assert.NotEmpty(t, run.Decisions)
}

func TestOptimizer_Run_ManualStrategyProposesNoBids(t *testing.T) {
	traffic, directory := campaignFixture()
	applier := newFakeApplier()

	o := optimizer.New(
		optimizer.Config{ConversionTags: []string{"registr"}},
		traffic, directory, applier, nil, nil,
		testEngine(t, "manual"),
	)

	run, err := o.Run(context.Background(), "campaign-1")
	require.NoError(t, err)

	// review no ajusta pujas, pero clicks sin conversiones sí baja
	assert.Equal(t, domain.ActionReview, run.Decisions["running shoes"].Action)
	assert.Equal(t, 0.0, run.Decisions["running shoes"].NewBid)
	assert.Equal(t, domain.ActionPauseOrLower, run.Decisions["trail boots"].Action)
	assert.NotContains(t, applier.applied, "customers/1/adGroupCriteria/10~11")
}
