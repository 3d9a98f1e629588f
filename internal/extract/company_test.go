package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCompanySize(t *testing.T) {
	assert.Equal(t, "0-50", *NormalizeCompanySize("11-50"))
	assert.Equal(t, "251-500", *NormalizeCompanySize("201-500 Mitarbeiter"))
	assert.Equal(t, "501-1000", *NormalizeCompanySize("501-1000"))
	assert.Nil(t, NormalizeCompanySize(" "))
}

func TestMainIndustry(t *testing.T) {
	assert.Equal(t, "IT & Internet", *MainIndustry("IT & Internet|Beratung"))
	assert.Nil(t, MainIndustry(""))
}

func TestSizeGroup(t *testing.T) {
	assert.Equal(t, SizeSmall, SizeGroup(NormalizeCompanySize("1-10")))
	assert.Equal(t, SizeMedium, SizeGroup(NormalizeCompanySize("1000+")))
	assert.Equal(t, SizeBig, SizeGroup(NormalizeCompanySize("10,001+")))
	assert.Empty(t, SizeGroup(nil))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "kunstliche intelligenz", Fold(" Künstliche Intelligenz "))
}
