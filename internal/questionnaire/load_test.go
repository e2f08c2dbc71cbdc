package questionnaire

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Validates(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	assert.Len(t, s.OperationalContext.Questions, 5)
	assert.Equal(t, []string{"foundations", "components", "documentation", "governance", "distribution", "adoption"},
		s.StructuralMaturity.Dimensions)
	for _, d := range s.StructuralMaturity.Dimensions {
		assert.Len(t, s.QuestionsFor(d), 3, "dimension %s", d)
	}
}

func TestDefault_ContextOptionsScoreOneToFour(t *testing.T) {
	s := MustDefault()
	for _, q := range s.OperationalContext.Questions {
		require.Len(t, q.Options, 4, q.ID)
		for i, o := range q.Options {
			assert.Equal(t, i+1, o.Score, "%s option %d", q.ID, i)
		}
	}
	q, ok := s.ContextQuestion("aiUsage")
	require.True(t, ok)
	assert.Equal(t, "By default, for most new UI", q.OptionLabel(4))
	assert.Empty(t, q.OptionLabel(9))
}

func TestValidate_DuplicateIDAcrossSections(t *testing.T) {
	s := MustDefault()
	s.StructuralMaturity.Questions[0].ID = "teamSize"

	err := s.Validate()
	require.ErrorIs(t, err, ErrInvalidSchema)
	assert.Contains(t, err.Error(), `duplicate question id "teamSize"`)
}

func TestValidate_UndeclaredDimension(t *testing.T) {
	s := MustDefault()
	s.StructuralMaturity.Questions[0].Dimension = "tooling"

	err := s.Validate()
	require.ErrorIs(t, err, ErrInvalidSchema)
	assert.Contains(t, err.Error(), "undeclared dimension")
}

func TestValidate_DimensionMatchIsCaseInsensitive(t *testing.T) {
	s := MustDefault()
	s.StructuralMaturity.Questions[0].Dimension = "Foundations"
	assert.NoError(t, s.Validate())
}

func TestValidate_OptionScoreOutOfRange(t *testing.T) {
	s := MustDefault()
	s.OperationalContext.Questions[0].Options[0].Score = 5

	assert.ErrorIs(t, s.Validate(), ErrInvalidSchema)
}

func TestValidate_ScoringLabelOutOfRange(t *testing.T) {
	s := MustDefault()
	s.StructuralMaturity.Questions[0].ScoringLabels = map[int]string{0: "no", 4: "beyond"}

	assert.ErrorIs(t, s.Validate(), ErrInvalidSchema)
}

func TestValidate_NoDimensions(t *testing.T) {
	s := MustDefault()
	s.StructuralMaturity.Dimensions = nil

	assert.ErrorIs(t, s.Validate(), ErrInvalidSchema)
}

func TestLoadFile_YAMLAndJSON(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "q.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
operationalContext:
  questions:
    - id: teamSize
      prompt: Team size?
      options: [{ label: small, score: 1 }, { label: huge, score: 4 }]
structuralMaturity:
  dimensions: [Governance]
  questions:
    - id: g1
      dimension: governance
      prompt: Owned?
      scoringLabels: { 0: no, 3: yes }
`), 0o644))

	s, err := LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "yes", s.StructuralMaturity.Questions[0].ScoringLabels[3])

	jsonPath := filepath.Join(dir, "q.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{
  "operationalContext": {"questions": []},
  "structuralMaturity": {
    "dimensions": ["docs"],
    "questions": [{"id": "d1", "dimension": "docs", "prompt": "Written?", "scoringLabels": {"0": "no", "3": "yes"}}]
  }
}`), 0o644))

	s, err = LoadFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "no", s.StructuralMaturity.Questions[0].ScoringLabels[0])
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConstraints_DeclaresSchema(t *testing.T) {
	assert.Contains(t, Constraints(), "#Schema")
}
