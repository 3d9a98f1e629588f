package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobad-insights/internal/domain/jobad"
)

func TestFilterContracts(t *testing.T) {
	raws := []jobad.Raw{
		{Link: "a", ContractType: "Feste Anstellung", WorkType: "Vollzeit, Home Office möglich"},
		{Link: "b", ContractType: "Befristeter Vertrag", WorkType: "Vollzeit"},
		{Link: "c", ContractType: "Trainee", WorkType: "Teilzeit"},
		{Link: "d", ContractType: "feste anstellung"},
	}

	got := FilterContracts(raws)
	require.Len(t, got, 2)

	assert.Equal(t, "a", got[0].Link)
	assert.True(t, got[0].PermanentEmployment)
	assert.False(t, got[0].Trainee)
	assert.True(t, got[0].FullTime)
	assert.False(t, got[0].PartTime)
	assert.True(t, got[0].HomeOfficePossible)

	assert.Equal(t, "c", got[1].Link)
	assert.True(t, got[1].Trainee)
	assert.True(t, got[1].PartTime)
	assert.False(t, got[1].HomeOfficePossible)
}

func TestFilterContracts_NormalizesTitle(t *testing.T) {
	decomposed := "Ku\u0308nstliche Intelligenz Entwickler"
	got := FilterContracts([]jobad.Raw{{Link: "a", Title: decomposed, ContractType: "Feste Anstellung"}})
	require.Len(t, got, 1)

	assert.Equal(t, "Künstliche Intelligenz Entwickler", got[0].Title)
	assert.Equal(t, jobad.TitleMLEngineer, ClassifyTitle(got[0].Title))
}
