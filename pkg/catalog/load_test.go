package catalog

import (
	"reflect"
	"strings"
	"testing"
)

const testKB = `{
  "book": [
    {
      "title": "Remote code execution via teacher role",
      "cve": "CVE-2020-14432",
      "description": "The book module allowed teachers to inject executable content.",
      "severity": "Critical",
      "affected_moodle_versions": ["3.7", "3.8", "3.9"],
      "references": ["https://nvd.nist.gov/vuln/detail/CVE-2020-14432"],
      "remediation": "Update to 3.9.1 or later."
    }
  ],
  "quizaccess_seb": [
    {
      "title": "Safe Exam Browser config key bypass",
      "cve": "CVE-2020-25701",
      "description": "Quiz access rule could be bypassed before the fixed build.",
      "severity": "High",
      "affected_moodle_versions": ["All versions before 2020102601"],
      "references": [],
      "remediation": "Update to build 2020102601."
    }
  ]
}`

func TestParse(t *testing.T) {
	cat, err := Parse([]byte(testKB))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got := cat.Count(); got != 2 {
		t.Errorf("Count() got = %d, want 2", got)
	}

	advs := cat.Advisories("book")
	if len(advs) != 1 {
		t.Fatalf("Advisories(book) got %d records, want 1", len(advs))
	}

	adv := advs[0]
	if adv.CVE != "CVE-2020-14432" {
		t.Errorf("CVE got = %s, want CVE-2020-14432", adv.CVE)
	}
	if adv.Severity != SeverityCritical {
		t.Errorf("Severity got = %s, want Critical", adv.Severity)
	}
	if len(adv.Constraints) == 0 {
		t.Errorf("constraints were not parsed at load")
	}

	if got := cat.Advisories("BOOK"); !reflect.DeepEqual(got, advs) {
		t.Errorf("Advisories() lookup is not case-insensitive")
	}

	if got := cat.Advisories("unrelated_plugin"); got != nil {
		t.Errorf("Advisories(unrelated_plugin) got = %v, want nil", got)
	}

	if got := cat.Plugins(); !reflect.DeepEqual(got, []string{"book", "quizaccess_seb"}) {
		t.Errorf("Plugins() got = %v", got)
	}

	if len(cat.Warnings()) != 0 {
		t.Errorf("Warnings() got = %v, want none", cat.Warnings())
	}
}

func TestParseKeyNormalization(t *testing.T) {
	kb := `{"Book": [{"title": "t", "cve": "CVE-2020-14432",
		"severity": "Low", "affected_moodle_versions": ["3.9"]}]}`

	cat, err := Parse([]byte(kb))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cat.Advisories("book") == nil {
		t.Errorf("key was not lowercased on load")
	}
}

func TestParseFatal(t *testing.T) {
	type args struct {
		data string
	}

	tests := []struct {
		name string
		args args
	}{
		{
			name: "invalidJSON",
			args: args{data: `{"book": [`},
		},
		{
			name: "rootNotObject",
			args: args{data: `["book"]`},
		},
		{
			name: "duplicateKeys",
			args: args{data: `{"book": [], "book": []}`},
		},
		{
			name: "duplicateAfterNormalization",
			args: args{data: `{"Book": [], "book": []}`},
		},
		{
			name: "pluginNotArray",
			args: args{data: `{"book": {"cve": "CVE-2020-14432"}}`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.args.data)); err == nil {
				t.Errorf("Parse() expected error, got none")
			}
		})
	}
}

func TestParseSchemaWarnings(t *testing.T) {
	kb := `{
	  "book": [
	    {"title": "no identifier", "severity": "High",
	     "affected_moodle_versions": ["3.9"]},
	    {"title": "bad severity", "cve": "CVE-2021-0001", "severity": "Severe",
	     "affected_moodle_versions": ["3.9"]},
	    {"cve": "CVE-2021-0002", "severity": "High",
	     "affected_moodle_versions": ["3.9"]},
	    {"title": "no versions", "cve": "CVE-2021-0003", "severity": "High",
	     "affected_moodle_versions": []},
	    {"title": "survives", "cve": "CVE-2021-0004", "severity": "High",
	     "affected_moodle_versions": ["3.9"]}
	  ]
	}`

	cat, err := Parse([]byte(kb))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	advs := cat.Advisories("book")
	if len(advs) != 1 {
		t.Fatalf("Advisories(book) got %d records, want 1", len(advs))
	}
	if advs[0].CVE != "CVE-2021-0004" {
		t.Errorf("surviving advisory got = %s, want CVE-2021-0004", advs[0].CVE)
	}

	if len(cat.Warnings()) != 4 {
		t.Errorf("Warnings() got %d entries, want 4: %v", len(cat.Warnings()), cat.Warnings())
	}

	for _, w := range cat.Warnings() {
		if !strings.Contains(w, "skipped") {
			t.Errorf("warning %q does not say the record was skipped", w)
		}
	}
}

func TestParseDetections(t *testing.T) {
	data := `[{"plugin": "book", "version": "3.9"},
	          {"plugin": "quizaccess_seb", "version": ""}]`

	got, err := ParseDetections([]byte(data))
	if err != nil {
		t.Fatalf("ParseDetections() error = %v", err)
	}

	want := []Detected{
		{PluginID: "book", Version: "3.9"},
		{PluginID: "quizaccess_seb", Version: ""},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseDetections() got = %v, want %v", got, want)
	}
}

func TestParseDetectionsErrors(t *testing.T) {
	type args struct {
		data string
	}

	tests := []struct {
		name string
		args args
	}{
		{
			name: "invalidJSON",
			args: args{data: `[{`},
		},
		{
			name: "notArray",
			args: args{data: `{"plugin": "book"}`},
		},
		{
			name: "missingPlugin",
			args: args{data: `[{"version": "3.9"}]`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseDetections([]byte(tt.args.data)); err == nil {
				t.Errorf("ParseDetections() expected error, got none")
			}
		})
	}
}
