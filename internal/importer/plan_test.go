package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelichko/fabplan/internal/domain"
)

func TestParseTableSniffsDelimiter(t *testing.T) {
	commas, err := ParseTable("name,unit\nBolt,pcs\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "unit"}, commas.Headers)

	semis, err := ParseTable("\uFEFFname;unit\nBolt;pcs\n\n;\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "unit"}, semis.Headers)
	require.Len(t, semis.Rows, 1, "blank rows are dropped")
	assert.Equal(t, []string{"Bolt", "pcs"}, semis.Rows[0])
}

func TestParseTableEmpty(t *testing.T) {
	_, err := ParseTable("   \n")
	assert.Error(t, err)
}

func catalogFixture() []*domain.NomenclatureItem {
	return []*domain.NomenclatureItem{
		{ID: "n1", Designation: "АБВГ.123456.001", Name: "Болт М8х40"},
		{ID: "n2", Name: "Гайка М8"},
	}
}

func TestBuildPlanSeparatesNewAndDuplicates(t *testing.T) {
	table, err := ParseTable(
		"Обозначение;Наименование;Ед. изм.\n" +
			"АБВГ.123456.001;Болт особый;шт\n" + // tier 1: designation hit
			";гайка  м8;шт\n" + // tier 2: normalized name hit
			"АБВГ.999999.001;Шайба 8;шт\n" + // new
			";;шт\n") // invalid: no name
	require.NoError(t, err)

	plan, err := BuildPlan(table, catalogFixture())
	require.NoError(t, err)

	require.Len(t, plan.New, 1)
	assert.Equal(t, "Шайба 8", plan.New[0].Name)
	assert.Equal(t, "шт", plan.New[0].Unit)

	require.Len(t, plan.Duplicates, 2)
	assert.Equal(t, TierDesignation, plan.Duplicates[0].Tier)
	assert.Equal(t, "n1", plan.Duplicates[0].Existing.ID)
	assert.Equal(t, 1, plan.Duplicates[0].Row)
	assert.Equal(t, TierName, plan.Duplicates[1].Tier)
	assert.Equal(t, "n2", plan.Duplicates[1].Existing.ID)

	require.Len(t, plan.Errors, 1)
	assert.Equal(t, 4, plan.Errors[0].Row)
}

func TestBuildPlanDesignationOutranksName(t *testing.T) {
	// A row matching an existing designation is reported as tier 1 even
	// when its name also collides.
	table, err := ParseTable("Обозначение,Наименование\n\"АБВГ.123456.001\",\"Гайка М8\"\n")
	require.NoError(t, err)

	plan, err := BuildPlan(table, catalogFixture())
	require.NoError(t, err)
	require.Len(t, plan.Duplicates, 1)
	assert.Equal(t, TierDesignation, plan.Duplicates[0].Tier)
}

func TestBuildPlanDetectsInFileDuplicates(t *testing.T) {
	table, err := ParseTable("Наименование\nВинт М4\nвинт  м4\n")
	require.NoError(t, err)

	plan, err := BuildPlan(table, nil)
	require.NoError(t, err)
	require.Len(t, plan.New, 1)
	require.Len(t, plan.Duplicates, 1)
	assert.Equal(t, 2, plan.Duplicates[0].Row)
	assert.Equal(t, TierName, plan.Duplicates[0].Tier)
}

func TestBuildPlanShortRows(t *testing.T) {
	// Rows shorter than the header are padded by mapping lookups, not
	// rejected by the csv reader.
	table, err := ParseTable("Наименование,Артикул\nВтулка\n")
	require.NoError(t, err)

	plan, err := BuildPlan(table, nil)
	require.NoError(t, err)
	require.Len(t, plan.New, 1)
	assert.Equal(t, "Втулка", plan.New[0].Name)
	assert.Empty(t, plan.New[0].Article)
}
