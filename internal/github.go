package internal

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ChrisRimondi/cvss-updater/internal/cvss"
	"github.com/google/go-github/v48/github"
	"golang.org/x/oauth2"
)

var _ Store = (*GithubStore)(nil)

// GithubStore keeps one issue per adjusted finding in a GitHub repository.
type GithubStore struct {
	logger Logger
	config ConfigGithub
	client *github.Client
}

func NewGithubStore(ctx context.Context, logger Logger, config ConfigGithub) *GithubStore {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: config.Token},
	)
	tc := oauth2.NewClient(ctx, ts)
	return &GithubStore{
		logger: logger,
		config: config,
		client: github.NewClient(tc),
	}
}

func (s *GithubStore) Save(ctx context.Context, record AdjustmentRecord) (string, error) {
	footer := githubIssueFooter(record)

	existingIssues, _, err := s.client.Issues.ListByRepo(ctx, s.config.IssueRepoOwner, s.config.IssueRepoName, &github.IssueListByRepoOptions{
		Labels: []string{record.Identifier},
		State:  "all",
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	})
	if err != nil {
		return "", err
	}
	var existingIssue *github.Issue
	for _, ei := range existingIssues {
		if ei.Body != nil && strings.Contains(*ei.Body, footer) {
			existingIssue = ei
			break
		}
	}

	title := RenderGithubIssueTitle(record)
	body := RenderGithubIssueBody(record)
	state := "open"
	var currentLabels []*github.Label
	if existingIssue != nil {
		currentLabels = existingIssue.Labels
	}
	labels := githubLabelNames(s.renderGithubLabels(currentLabels, record))
	issue := github.IssueRequest{
		Title:  &title,
		Body:   &body,
		Labels: &labels,
		State:  &state,
	}

	if existingIssue == nil {
		issueRes, _, err := s.client.Issues.Create(ctx, s.config.IssueRepoOwner, s.config.IssueRepoName, &issue)
		if err != nil {
			return "", err
		}
		s.logger.Info.Printf("Created issue %q (#%d)\n", title, *issueRes.Number)
		return issueRes.GetHTMLURL(), nil
	}

	if compareGithubIssues(*existingIssue, issue) {
		s.logger.Debug.Printf("Issue %q (#%d) is up to date\n", title, *existingIssue.Number)
		return existingIssue.GetHTMLURL(), nil
	}
	_, _, err = s.client.Issues.Edit(ctx, s.config.IssueRepoOwner, s.config.IssueRepoName, *existingIssue.Number, &issue)
	if err != nil {
		return "", err
	}
	s.logger.Info.Printf("Updated issue %q (#%d)\n", title, *existingIssue.Number)
	return existingIssue.GetHTMLURL(), nil
}

func (s *GithubStore) renderGithubLabels(current []*github.Label, record AdjustmentRecord) []*github.Label {
	prefix := s.config.LabelPrefix
	kept := current
	if prefix != "" {
		kept = filterGithubLabels(current, func(name string) bool {
			return !strings.HasPrefix(name, prefix)
		})
	} else {
		kept = removeGithubLabels(current, string(cvss.SeverityNone), string(cvss.SeverityLow), string(cvss.SeverityMedium), string(cvss.SeverityHigh), string(cvss.SeverityCritical))
	}
	asset := ""
	if record.Asset != "" {
		asset = strings.SplitN(record.Asset, ":", 2)[0]
	}
	return addGithubLabels(kept, record.Identifier, asset, prefix+string(record.AdjustedSeverity()))
}

func githubIssueFooter(record AdjustmentRecord) string {
	return fmt.Sprintf("<!-- cvss-updater-id=%s -->", record.Key())
}

func RenderGithubIssueTitle(record AdjustmentRecord) string {
	title := fmt.Sprintf("%s: %.1f -> %.1f", record.Identifier, record.OriginalScore, record.AdjustedScore)
	if record.Asset != "" {
		title = title + " on " + record.Asset
	}
	return title
}

func RenderGithubIssueBody(record AdjustmentRecord) string {
	asset := record.Asset
	if asset == "" {
		asset = "-"
	}
	table := StringSanitize(fmt.Sprintf(`
| Key | Value
|---|---
| ID | %s
| Asset | %s
| Original CVSS Score | %s (%.1f)
| Original CVSS Vector | %s
| Adjusted CVSS Score | %s (%.1f)
| Adjusted CVSS Vector | %s
`, record.Identifier, asset, record.OriginalSeverity(), record.OriginalScore, record.OriginalVector, record.AdjustedSeverity(), record.AdjustedScore, record.AdjustedVector))

	changes := "### Adjusted metrics\n\n"
	original, err1 := cvss.Parse(record.OriginalVector)
	adjusted, err2 := cvss.Parse(record.AdjustedVector)
	if err1 == nil && err2 == nil {
		for _, k := range cvss.Keys {
			if original.Get(k) != adjusted.Get(k) {
				changes = changes + fmt.Sprintf("- %s: %s -> %s\n", k.Name(), k.ValueName(original.Get(k)), k.ValueName(adjusted.Get(k)))
			}
		}
	}
	changes = StringSanitize(changes)

	rationale := StringSanitize(fmt.Sprintf(`
### Rationale

%s
`, record.Rationale))

	return strings.Join([]string{table, changes, rationale, githubIssueFooter(record)}, "\n\n")
}

func addGithubLabels(labels []*github.Label, labelNames ...string) []*github.Label {
	result := []*github.Label{}
	for _, l := range labels {
		name := *l.Name
		result = append(result, &github.Label{Name: &name})
	}
	for _, l := range labelNames {
		if l == "" {
			continue
		}
		duplicate := false
		for _, l2 := range result {
			if l == *l2.Name {
				duplicate = true
				break
			}
		}
		if !duplicate {
			name := l
			result = append(result, &github.Label{Name: &name})
		}
	}
	return result
}

func removeGithubLabels(labels []*github.Label, labelNames ...string) []*github.Label {
	return filterGithubLabels(labels, func(name string) bool {
		return !StringsContain(labelNames, name)
	})
}

func filterGithubLabels(labels []*github.Label, fn func(string) bool) []*github.Label {
	result := []*github.Label{}
	for _, l := range labels {
		name := *l.Name
		if fn(name) {
			result = append(result, &github.Label{Name: &name})
		}
	}
	return result
}

func githubLabelNames(labels []*github.Label) []string {
	result := []string{}
	for _, l := range labels {
		if l.Name != nil {
			result = append(result, *l.Name)
		}
	}
	return StringsUnique(result)
}

func compareGithubIssues(i1 github.Issue, i2 github.IssueRequest) bool {
	cmpTitle := i1.GetTitle() == stringPtrValue(i2.Title)
	cmpBody := i1.GetBody() == stringPtrValue(i2.Body)
	cmpState := i1.GetState() == stringPtrValue(i2.State)

	i1Labels := githubLabelNames(i1.Labels)
	sort.Strings(i1Labels)
	i2Labels := []string{}
	if i2.Labels != nil {
		i2Labels = append(i2Labels, *i2.Labels...)
	}
	sort.Strings(i2Labels)
	cmpLabels := len(i1Labels) == len(i2Labels)
	if cmpLabels {
		for i := range i1Labels {
			if i1Labels[i] != i2Labels[i] {
				cmpLabels = false
				break
			}
		}
	}

	return cmpTitle && cmpBody && cmpLabels && cmpState
}

func stringPtrValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
