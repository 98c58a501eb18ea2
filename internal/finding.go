package internal

import (
	"strings"
)

// Finding is one vulnerability on one artifact, as handed to policies and
// the rescoring pipeline.
type Finding struct {
	ID           string
	Title        string
	Description  string
	ArtifactName string
	PkgName      string
	Class        string
	Vector       string
	Score        float64
}

func (f Finding) ArtifactNameShort() string {
	return strings.SplitN(f.ArtifactName, ":", 2)[0]
}

func (f Finding) DisplayTitle() string {
	if f.Title != "" {
		return f.Title
	}
	if f.Description != "" {
		return StringAbbreviate(f.Description, 40)
	}
	return f.ID
}
