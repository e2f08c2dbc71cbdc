package questionnaire

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

//go:embed schema.cue
var schemaCUE string

var ErrInvalidSchema = errors.New("invalid questionnaire schema")

// Default returns the built-in design system questionnaire.
func Default() (Schema, error) {
	return Parse(defaultYAML)
}

// MustDefault panics if the embedded questionnaire does not validate.
// That can only happen through a bad edit of default.yaml.
func MustDefault() Schema {
	s, err := Default()
	if err != nil {
		panic(err)
	}
	return s
}

// Parse decodes a YAML questionnaire and validates it.
func Parse(data []byte) (Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Schema{}, fmt.Errorf("questionnaire: parse yaml: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Schema{}, err
	}
	return s, nil
}

// LoadFile reads a questionnaire from disk. Files ending in .json are decoded
// as JSON, everything else as YAML.
func LoadFile(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Schema{}, fmt.Errorf("questionnaire: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		var s Schema
		if err := json.Unmarshal(data, &s); err != nil {
			return Schema{}, fmt.Errorf("questionnaire: parse json: %w", err)
		}
		if err := s.Validate(); err != nil {
			return Schema{}, err
		}
		return s, nil
	}
	return Parse(data)
}

// Constraints returns the CUE definition every questionnaire is unified with.
func Constraints() string { return schemaCUE }

// Validate checks structure against the CUE constraints, then the
// cross-references CUE cannot express: unique question IDs across both
// sections and behavioral dimensions that match a declared dimension.
func (s Schema) Validate() error {
	if err := validateCUE(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	ids := map[string]struct{}{}
	claim := func(id string) error {
		if _, dup := ids[id]; dup {
			return fmt.Errorf("%w: duplicate question id %q", ErrInvalidSchema, id)
		}
		ids[id] = struct{}{}
		return nil
	}

	for _, q := range s.OperationalContext.Questions {
		if err := claim(q.ID); err != nil {
			return err
		}
	}

	dims := make(map[string]struct{}, len(s.StructuralMaturity.Dimensions))
	for _, d := range s.StructuralMaturity.Dimensions {
		key := strings.ToLower(d)
		if _, dup := dims[key]; dup {
			return fmt.Errorf("%w: duplicate dimension %q", ErrInvalidSchema, d)
		}
		dims[key] = struct{}{}
	}

	for _, q := range s.StructuralMaturity.Questions {
		if err := claim(q.ID); err != nil {
			return err
		}
		if _, ok := dims[strings.ToLower(q.Dimension)]; !ok {
			return fmt.Errorf("%w: question %q references undeclared dimension %q", ErrInvalidSchema, q.ID, q.Dimension)
		}
		for score := range q.ScoringLabels {
			if score < 0 || score > 3 {
				return fmt.Errorf("%w: question %q has scoring label for %d (want 0..3)", ErrInvalidSchema, q.ID, score)
			}
		}
	}
	return nil
}

func validateCUE(s Schema) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	ctx := cuecontext.New()
	def := ctx.CompileString(schemaCUE).LookupPath(cue.ParsePath("#Schema"))
	if err := def.Err(); err != nil {
		return err
	}
	doc := ctx.CompileBytes(data)
	if err := doc.Err(); err != nil {
		return err
	}
	return def.Unify(doc).Validate(cue.Concrete(true))
}
