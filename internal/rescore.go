package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/ChrisRimondi/cvss-updater/internal/cvss"
)

type Rescore struct {
	logger Logger
	config Config
	stores []Store
	dryRun bool
}

func NewRescore(logger Logger, config Config, stores []Store, dryRun bool) Rescore {
	return Rescore{
		logger: logger,
		config: config,
		stores: stores,
		dryRun: dryRun,
	}
}

func (r *Rescore) EvaluateMatchingPolicies(finding Finding) []ConfigPolicy {
	result := []ConfigPolicy{}
	for _, p := range r.config.Policies {
		if p.Match.IsMatch(finding) {
			result = append(result, p)
		}
	}
	return result
}

// PolicyAdjustments folds the adjustments of the given policies in order,
// later policies overriding earlier ones on the same metric.
func PolicyAdjustments(policies []ConfigPolicy) (cvss.Adjustments, string) {
	adjustments := cvss.Adjustments{}
	comments := []string{}
	for _, p := range policies {
		for k, v := range p.Adjust {
			adjustments[k] = v
		}
		if c := strings.TrimSpace(p.Comment); c != "" {
			comments = append(comments, c)
		}
	}
	return adjustments, strings.Join(comments, "\n")
}

func (r *Rescore) ProcessFinding(ctx context.Context, finding Finding) (*AdjustmentRecord, error) {
	title := finding.DisplayTitle()
	matchingPolicies := r.EvaluateMatchingPolicies(finding)
	if len(matchingPolicies) == 0 {
		r.logger.Debug.Printf("Skipped %s %q [no matching policy]\n", finding.ID, title)
		observeRescore("skipped")
		return nil, nil
	}
	if finding.Vector == "" {
		r.logger.Debug.Printf("Skipped %s %q [no cvss v3 vector]\n", finding.ID, title)
		observeRescore("skipped")
		return nil, nil
	}

	adjustments, rationale := PolicyAdjustments(matchingPolicies)
	record, err := Adjust(finding.ID, finding.ArtifactName, finding.Vector, adjustments, rationale)
	if err != nil {
		var cvssErr *cvss.Error
		if errors.As(err, &cvssErr) && !errors.Is(err, cvss.ErrInvalidAdjustment) {
			r.logger.Warn.Printf("Skipped %s %q [%v]\n", finding.ID, title, cvssErr)
			observeRescore("skipped")
			return nil, nil
		}
		observeRescore("failed")
		return nil, err
	}
	if finding.Score > 0 && math.Abs(finding.Score-record.OriginalScore) >= 0.1 {
		r.logger.Warn.Printf("Published score %.1f of %s differs from computed score %.1f\n", finding.Score, finding.ID, record.OriginalScore)
	}

	logDetails := func(logger *log.Logger) {
		logger.Printf("ID: %s\n", finding.ID)
		logger.Printf("Title: %s\n", title)
		if finding.ArtifactName != "" {
			logger.Printf("Artifact: %s\n", finding.ArtifactName)
		}
		if finding.PkgName != "" {
			logger.Printf("Package: %s\n", finding.PkgName)
		}
		logger.Printf("Original: %s (%.1f)\n", record.OriginalVector, record.OriginalScore)
		logger.Printf("Adjusted: %s (%.1f)\n", record.AdjustedVector, record.AdjustedScore)
		for _, p := range matchingPolicies {
			if p.Comment != "" {
				logger.Printf("Policy: %s\n", StringSanitize(strings.ReplaceAll(p.Comment, "\n", " ")))
			}
		}
	}

	if r.dryRun {
		r.logger.Info.Printf("Skipped saving %s %q [dry run]\n", finding.ID, title)
		logDetails(r.logger.CloneNested().Info)
		observeRescore("dry_run")
		observeScoreDelta(record)
		return record, nil
	}

	locations := []string{}
	for _, s := range r.stores {
		location, err := s.Save(ctx, *record)
		if err != nil {
			observeRescore("failed")
			return nil, fmt.Errorf("unable to save adjustment of %s: %w", finding.ID, err)
		}
		locations = append(locations, location)
	}
	r.logger.Info.Printf("Adjusted %s %q %.1f -> %.1f\n", finding.ID, title, record.OriginalScore, record.AdjustedScore)
	nested := r.logger.CloneNested()
	logDetails(nested.Debug)
	for _, l := range locations {
		nested.Info.Printf("Saved: %s\n", l)
	}
	observeRescore("adjusted")
	observeScoreDelta(record)
	return record, nil
}

// ProcessFindings adjusts every finding, grouped by the short artifact name.
func (r *Rescore) ProcessFindings(ctx context.Context, findings []Finding) ([]AdjustmentRecord, error) {
	groups := map[string][]Finding{}
	for _, f := range findings {
		groups[f.ArtifactNameShort()] = append(groups[f.ArtifactNameShort()], f)
	}
	groupNames := []string{}
	for name := range groups {
		groupNames = append(groupNames, name)
	}
	sort.Strings(groupNames)

	result := []AdjustmentRecord{}
	for _, name := range groupNames {
		if name != "" {
			r.logger.Info.Printf("Rescoring artifact group %s ...\n", name)
		}
		unnest := r.logger.Nest()
		for _, f := range groups[name] {
			if err := ctx.Err(); err != nil {
				unnest()
				return nil, err
			}
			record, err := r.ProcessFinding(ctx, f)
			if err != nil {
				unnest()
				return nil, err
			}
			if record != nil {
				result = append(result, *record)
			}
		}
		unnest()
	}
	return result, nil
}
