package usecase_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/vellum-crm/vellum/pkg/domain/model/metadoc"
	"github.com/vellum-crm/vellum/pkg/domain/types"
)

// collectSink gathers exported payloads keyed by tenant/path. Tenants export
// concurrently, so access is guarded.
type collectSink struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func newCollectSink() *collectSink {
	return &collectSink{docs: make(map[string][]byte)}
}

func (s *collectSink) Put(_ context.Context, tenant types.TenantID, path types.SourcePath, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[string(tenant)+"/"+string(path)] = data
	return nil
}

type failSink struct{}

func (failSink) Put(context.Context, types.TenantID, types.SourcePath, []byte) error {
	return goerr.New("sink is full")
}

func TestExport_AllTenants(t *testing.T) {
	ctx := context.Background()
	uc := newUseCases()

	_, err := uc.Metadata.Replace(ctx, "acme", "account/tier/options", tierDocument())
	gt.NoError(t, err).Required()
	_, err = uc.Metadata.Replace(ctx, "acme", "contact/status/options", tierDocument())
	gt.NoError(t, err).Required()
	_, err = uc.Metadata.Replace(ctx, "globex", "deal/stage/options", tierDocument())
	gt.NoError(t, err).Required()

	sink := newCollectSink()
	summary, err := uc.Export(ctx, sink)
	gt.NoError(t, err).Required()
	gt.Value(t, summary.Tenants).Equal(2)
	gt.Value(t, summary.Documents).Equal(3)

	gt.Map(t, sink.docs).HasKey("acme/account/tier/options")
	gt.Map(t, sink.docs).HasKey("acme/contact/status/options")
	gt.Map(t, sink.docs).HasKey("globex/deal/stage/options")
}

func TestExport_WireShapeRoundTrips(t *testing.T) {
	ctx := context.Background()
	uc := newUseCases()

	_, err := uc.Metadata.Replace(ctx, "acme", "account/tier/options", tierDocument())
	gt.NoError(t, err).Required()

	sink := newCollectSink()
	_, err = uc.Export(ctx, sink)
	gt.NoError(t, err).Required()

	data := sink.docs["acme/account/tier/options"]
	gt.Bool(t, len(data) > 0).True()

	// Scalar leaves stay one-element string arrays in the exported file
	gt.Bool(t, strings.Contains(string(data), `"label":["Gold"]`)).True()

	// An exported file is a valid wire payload, so it can be PUT back as-is
	doc, err := metadoc.Decode(data)
	gt.NoError(t, err).Required()
	gt.Value(t, doc.Root).Equal(metadoc.DefaultRoot)
	gt.Array(t, doc.Rows).Length(2)
	gt.Value(t, doc.Rows[0].Label).Equal("Gold")
	gt.Value(t, doc.Rows[1].Label).Equal("Silver")
}

func TestExport_NoDocuments(t *testing.T) {
	ctx := context.Background()
	uc := newUseCases()

	sink := newCollectSink()
	summary, err := uc.Export(ctx, sink)
	gt.NoError(t, err).Required()
	gt.Value(t, summary.Tenants).Equal(2)
	gt.Value(t, summary.Documents).Equal(0)
	gt.Value(t, len(sink.docs)).Equal(0)
}

func TestExport_SinkErrorAborts(t *testing.T) {
	ctx := context.Background()
	uc := newUseCases()

	_, err := uc.Metadata.Replace(ctx, "acme", "account/tier/options", tierDocument())
	gt.NoError(t, err).Required()

	_, err = uc.Export(ctx, failSink{})
	gt.Error(t, err)
}
