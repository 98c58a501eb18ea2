package internal

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testCVERecord = `{
  "dataType": "CVE_RECORD",
  "dataVersion": "5.0",
  "cveMetadata": {
    "cveId": "CVE-2021-44228",
    "state": "PUBLISHED"
  },
  "containers": {
    "cna": {
      "descriptions": [
        {"lang": "de", "value": "Beschreibung"},
        {"lang": "en", "value": "Apache Log4j2 JNDI features do not protect against attacker controlled LDAP endpoints.  "}
      ],
      "metrics": [
        {"format": "other", "other": {"type": "unknown"}},
        {
          "cvssV3_1": {
            "version": "3.1",
            "vectorString": "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:C/C:H/I:H/A:H",
            "baseScore": 10.0,
            "baseSeverity": "CRITICAL"
          }
        }
      ]
    }
  }
}`

func setupCVERepo(t *testing.T) string {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "2021", "44xxx", "CVE-2021-44228.json"), testCVERecord)
	writeTestFile(t, filepath.Join(dir, "2021", "44xxx", "CVE-2021-442281.json"), testCVERecord)
	writeTestFile(t, filepath.Join(dir, "2021", "45xxx", "CVE-2021-45046.json"), `{
  "cveMetadata": {"cveId": "CVE-2021-45046"},
  "containers": {"cna": {
    "descriptions": [{"lang": "en-US", "value": "Incomplete fix."}],
    "metrics": [{"cvssV3_0": {"vectorString": "CVSS:3.0/AV:N/AC:H/PR:N/UI:N/S:C/C:H/I:H/A:H", "baseScore": 9.0}}]
  }}
}`)
	writeTestFile(t, filepath.Join(dir, "2021", "45xxx", "CVE-2021-45105.json"), `{
  "cveMetadata": {"cveId": "CVE-2021-45105"},
  "containers": {"cna": {"metrics": [{"cvssV2_0": {"vectorString": "AV:N/AC:M/Au:N/C:N/I:N/A:P"}}]}}
}`)
	writeTestFile(t, filepath.Join(dir, "2021", "45xxx", "CVE-2021-45999.json"), `{
  "cveMetadata": {"cveId": "CVE-2021-45999"},
  "containers": {"cna": {"metrics": [{"cvssV3_1": {"vectorString": "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H"}}]}}
}`)
	return dir
}

func TestFindCVEFile(t *testing.T) {
	dir := setupCVERepo(t)

	t.Run("Found", func(t *testing.T) {
		file, err := FindCVEFile(dir, "CVE-2021-44228")
		if assert.NoError(t, err) {
			assert.Equal(t, filepath.Join(dir, "2021", "44xxx", "CVE-2021-44228.json"), file)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := FindCVEFile(dir, "CVE-2021-4422")
		assert.ErrorIs(t, err, ErrCVENotFound)
		_, err = FindCVEFile(dir, "CVE-2019-0001")
		assert.ErrorIs(t, err, ErrCVENotFound)
	})

	t.Run("InvalidID", func(t *testing.T) {
		_, err := FindCVEFile(dir, "../2021/44xxx/CVE-2021-44228")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrCVENotFound)
	})
}

func TestLoadCVERecord(t *testing.T) {
	dir := setupCVERepo(t)

	t.Run("V31", func(t *testing.T) {
		record, err := LookupCVE(dir, "CVE-2021-44228")
		if assert.NoError(t, err) {
			assert.Equal(t, CVERecord{
				ID:          "CVE-2021-44228",
				Description: "Apache Log4j2 JNDI features do not protect against attacker controlled LDAP endpoints.",
				Vector:      "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:C/C:H/I:H/A:H",
				BaseScore:   10.0,
			}, *record)
			assert.Equal(t, Finding{
				ID:          "CVE-2021-44228",
				Description: record.Description,
				Vector:      record.Vector,
				Score:       10.0,
			}, record.Finding())
		}
	})

	t.Run("V30", func(t *testing.T) {
		record, err := LookupCVE(dir, "CVE-2021-45046")
		if assert.NoError(t, err) {
			assert.Equal(t, "Incomplete fix.", record.Description)
			assert.Equal(t, "CVSS:3.0/AV:N/AC:H/PR:N/UI:N/S:C/C:H/I:H/A:H", record.Vector)
			assert.Equal(t, 9.0, record.BaseScore)
		}
	})

	t.Run("NoCVSSV3", func(t *testing.T) {
		_, err := LookupCVE(dir, "CVE-2021-45105")
		assert.ErrorIs(t, err, ErrCVSSNotFound)
	})

	t.Run("NoBaseScore", func(t *testing.T) {
		_, err := LookupCVE(dir, "CVE-2021-45999")
		assert.Error(t, err)
	})

	t.Run("Malformed", func(t *testing.T) {
		file := filepath.Join(dir, "malformed.json")
		writeTestFile(t, file, "[")
		_, err := LoadCVERecord(file)
		assert.Error(t, err)
	})
}
