package cli

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelichko/fabplan/internal/domain"
	"github.com/avelichko/fabplan/internal/teatest"
	"github.com/avelichko/fabplan/internal/testutil"
)

func catalogClient(n int) *testutil.FakeClient {
	client := testutil.NewFakeClient(&testutil.FakeBackend{})
	for i := 0; i < n; i++ {
		client.Catalog = append(client.Catalog, &domain.NomenclatureItem{
			ID:          fmt.Sprintf("nom-%03d", i),
			Name:        fmt.Sprintf("Bracket %03d", i),
			Designation: fmt.Sprintf("АБВГ.%03d", i),
			Unit:        "pcs",
		})
	}
	return client
}

func newNomDriver(t *testing.T, client *testutil.FakeClient) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newNomApp(newTestApp(t, client)), teatest.WithSize(100, 30))
	d.DrainInit()
	return d
}

func TestNomenclatureListsFirstPage(t *testing.T) {
	d := newNomDriver(t, catalogClient(3))

	view := d.View()
	assert.Contains(t, view, "Bracket 000")
	assert.Contains(t, view, "АБВГ.002")
	// Three items fit on one page, so no pagination footer. The "n/p: page"
	// key hint still renders, so match the footer shape, not the word.
	assert.NotContains(t, view, "page 1/")
}

func TestNomenclaturePaging(t *testing.T) {
	d := newNomDriver(t, catalogClient(45))

	view := d.View()
	assert.Contains(t, view, "Bracket 000")
	assert.Contains(t, view, "page 1/3 (45 items)")

	d.PressKey('n')
	view = d.View()
	assert.Contains(t, view, "Bracket 020")
	assert.Contains(t, view, "page 2/3")

	d.PressKey('p')
	assert.Contains(t, d.View(), "page 1/3")
}

func TestNomenclatureSearchResetsToFirstPage(t *testing.T) {
	d := newNomDriver(t, catalogClient(45))
	d.PressKey('n')

	d.PressKey('/')
	d.Type("Bracket 042")
	d.PressEnter()

	view := d.View()
	assert.Contains(t, view, "Bracket 042")
	assert.NotContains(t, view, "Bracket 000")
}

func TestSpecificationAddAndRemoveFlow(t *testing.T) {
	client := threeStageClient()
	client.Catalog = append(client.Catalog, &domain.NomenclatureItem{
		ID: "nom-1", Name: "Bolt M8", Unit: "pcs",
	})
	client.Specs["prod1"] = []*domain.SpecificationLine{
		{ID: "line-1", ProductID: "prod1", NomenclatureID: "nom-1",
			Name: "Bolt M8", Quantity: 4, Unit: "pcs"},
	}

	d := newBoardDriver(t, client)
	d.PressDown() // product row
	d.PressEnter()

	view := d.View()
	assert.Contains(t, view, "Bolt M8")
	assert.Contains(t, view, "4 pcs")

	// Remove the line through the confirm dialog.
	d.PressKey('x')
	d.PressKey('y')

	require.Empty(t, client.Specs["prod1"])
	assert.Contains(t, d.View(), "specification is empty")
}
