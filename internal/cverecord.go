package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	ErrCVENotFound     = errors.New("cve not found")
	ErrCVSSNotFound    = errors.New("cvss v3 data not found")
	cveIDRegex         = regexp.MustCompile(`^CVE-(\d{4})-\d{4,}$`)
	cveRecordLanguages = []string{"en", "en-US", "en-us"}
)

// CVERecord is the part of a cvelistV5 record the rescoring pipeline needs.
type CVERecord struct {
	ID          string
	Description string
	Vector      string
	BaseScore   float64
}

func (r CVERecord) Finding() Finding {
	return Finding{
		ID:          r.ID,
		Description: r.Description,
		Vector:      r.Vector,
		Score:       r.BaseScore,
	}
}

type cveRecordJSON struct {
	CVEMetadata struct {
		CVEID string `json:"cveId"`
	} `json:"cveMetadata"`
	Containers struct {
		CNA struct {
			Descriptions []struct {
				Lang  string `json:"lang"`
				Value string `json:"value"`
			} `json:"descriptions"`
			Metrics []map[string]json.RawMessage `json:"metrics"`
		} `json:"cna"`
	} `json:"containers"`
}

type cveRecordCVSSJSON struct {
	VectorString *string  `json:"vectorString"`
	BaseScore    *float64 `json:"baseScore"`
}

// FindCVEFile looks up <id>.json below <repoPath>/<year>, the layout of
// https://github.com/CVEProject/cvelistV5.
func FindCVEFile(repoPath string, id string) (string, error) {
	match := cveIDRegex.FindStringSubmatch(id)
	if match == nil {
		return "", fmt.Errorf("%q is not a valid CVE id", id)
	}
	yearDir := filepath.Join(repoPath, match[1])
	if _, err := os.Stat(yearDir); err != nil {
		return "", fmt.Errorf("%w: %s", ErrCVENotFound, id)
	}
	files, err := FileList(yearDir, []regexp.Regexp{*regexp.MustCompile(`/` + regexp.QuoteMeta(id) + `\.json$`)})
	if err != nil {
		return "", fmt.Errorf("unable to search %s: %w", yearDir, err)
	}
	if len(files) == 0 {
		return "", fmt.Errorf("%w: %s", ErrCVENotFound, id)
	}
	return files[0], nil
}

func LoadCVERecord(file string) (*CVERecord, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("unable to read cve record %s: %w", file, err)
	}
	raw := cveRecordJSON{}
	if err := json.Unmarshal(bytes, &raw); err != nil {
		return nil, fmt.Errorf("unable to parse cve record %s: %w", file, err)
	}

	record := CVERecord{ID: raw.CVEMetadata.CVEID}
	for _, d := range raw.Containers.CNA.Descriptions {
		if StringsContain(cveRecordLanguages, d.Lang) {
			record.Description = StringSanitize(d.Value)
			break
		}
	}

	for _, m := range raw.Containers.CNA.Metrics {
		data, ok := m["cvssV3_1"]
		if !ok {
			data, ok = m["cvssV3_0"]
		}
		if !ok {
			continue
		}
		c := cveRecordCVSSJSON{}
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("unable to parse cvss data of %s: %w", record.ID, err)
		}
		if c.VectorString == nil || c.BaseScore == nil {
			return nil, fmt.Errorf("cvss data of %s lacks vectorString or baseScore", record.ID)
		}
		record.Vector = strings.TrimSpace(*c.VectorString)
		record.BaseScore = *c.BaseScore
		return &record, nil
	}
	return nil, fmt.Errorf("%w in %s", ErrCVSSNotFound, record.ID)
}

func LookupCVE(repoPath string, id string) (*CVERecord, error) {
	file, err := FindCVEFile(repoPath, id)
	if err != nil {
		return nil, err
	}
	return LoadCVERecord(file)
}
