package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mind-engage/mindengage-diagnostic/internal/assessment"
	"github.com/mind-engage/mindengage-diagnostic/internal/diagnostic"
)

// answersFile is the on-disk answer format. JSON files parse too.
type answersFile struct {
	Context  map[string]any `yaml:"context"`
	Maturity map[string]any `yaml:"maturity"`
}

func readAnswers(path string) (answersFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return answersFile{}, err
	}
	var f answersFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return answersFile{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return f, nil
}

// sanitize runs the answers through the same checks the API applies on save.
func sanitize(svc *assessment.Service, f answersFile) (answers, maturity diagnostic.Responses, err error) {
	c, err := svc.SanitizeContext(f.Context)
	if err != nil {
		return nil, nil, err
	}
	m, err := svc.SanitizeMaturity(f.Maturity)
	if err != nil {
		return nil, nil, err
	}
	return c, m, nil
}
