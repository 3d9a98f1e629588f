package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirementRulesCompile(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range RequirementRules {
		_, err := r.Compile()
		require.NoError(t, err, r.Name)
		assert.False(t, seen[r.Name], "duplicate rule %s", r.Name)
		seen[r.Name] = true
	}
	assert.GreaterOrEqual(t, len(RequirementRules), 100)

	names := DefaultExtractor().Names()
	assert.Equal(t, len(RequirementRules)+1, len(names))
	assert.Equal(t, DegreeNoDegreeInfo, names[len(names)-1])
}

func TestExtractLanguages(t *testing.T) {
	tests := []struct {
		name    string
		content string
		present []string
		absent  []string
	}{
		{"python and sql", "Du hast Erfahrung mit Python und SQL.", []string{"python", "sql"}, []string{"r", "java"}},
		{"nosql is not sql", "Kenntnisse in NoSQL Datenbanken", nil, []string{"sql"}},
		{"java is not javascript", "Erfahrung mit JavaScript", []string{"javascript"}, []string{"java"}},
		{"c++ and c# are not c", "Kenntnisse in C++ und C#", []string{"c++", "c#"}, []string{"c"}},
		{"bare c", "Programmierung in C und Python", []string{"c", "python"}, nil},
		{"r as a word", "Statistik mit R oder Python", []string{"r"}, nil},
		{"golang", "Wir nutzen Golang im Backend", []string{"go"}, nil},
		{"go is case sensitive", "ready to go further", nil, []string{"go"}},
		{"excel is case sensitive", "excellent communication", []string{"communication"}, []string{"excel"}},
		{"excel", "sehr gute Excel Kenntnisse", []string{"excel"}, nil},
	}

	e := DefaultExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := e.Extract(tt.content)
			for _, name := range tt.present {
				assert.True(t, flags[name], name)
			}
			for _, name := range tt.absent {
				assert.False(t, flags[name], name)
			}
		})
	}
}

func TestExtractDegreePrecedence(t *testing.T) {
	tests := []struct {
		content  string
		bachelor bool
		master   bool
		phd      bool
		none     bool
	}{
		{"Abgeschlossenes Studium (Bachelor oder Master)", false, true, false, false},
		{"Bachelor in Informatik", true, false, false, false},
		{"Promotion in Physik", false, false, true, false},
		{"Keine Angaben", false, false, false, true},
	}

	e := DefaultExtractor()
	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			flags := e.Extract(tt.content)
			assert.Equal(t, tt.bachelor, flags[DegreeBachelor], "bachelor")
			assert.Equal(t, tt.master, flags[DegreeMaster], "master")
			assert.Equal(t, tt.phd, flags[DegreePhD], "phd")
			assert.Equal(t, tt.none, flags[DegreeNoDegreeInfo], "no_degree_info")
		})
	}
}

func TestExtractDegreeFlagsConsistent(t *testing.T) {
	contents := []string{
		"Master oder Diplom, alternativ Bachelor",
		"PhD or master's degree",
		"studies in computer science",
		"",
		"Promotion und Studium",
	}
	e := DefaultExtractor()
	for _, c := range contents {
		flags := e.Extract(c)
		assert.False(t, flags[DegreeBachelor] && flags[DegreeMaster], c)
		assert.Equal(t, !flags[DegreeBachelor] && !flags[DegreeMaster] && !flags[DegreePhD], flags[DegreeNoDegreeInfo], c)
	}
}

func TestExtractMajorsAndSkills(t *testing.T) {
	flags := DefaultExtractor().Extract("Studium der Informatik, Erfahrung mit scikit-learn, Tensorflow und Zeitreihen. Teamfähigkeit und Kommunikationsstärke.")
	for _, name := range []string{"computer_science", "scikit-learn", "tensorflow/keras", "forecasting", "teamwork", "communication"} {
		assert.True(t, flags[name], name)
	}
	assert.False(t, flags["pytorch"])
}

func TestCategories(t *testing.T) {
	cats := DefaultExtractor().Categories()
	assert.Equal(t, CategoryLanguages, cats["sql"])
	assert.Equal(t, CategoryDegree, cats[DegreeNoDegreeInfo])
	assert.Equal(t, CategorySoftSkills, cats["initiative"])
}

func TestRuleKindString(t *testing.T) {
	assert.Equal(t, "lookaround", Lookaround.String())
	assert.Equal(t, "RuleKind(9)", RuleKind(9).String())
}
