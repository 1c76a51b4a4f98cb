package catalog

import "testing"

func TestLoadEmbeddedDefault(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Types()) == 0 {
		t.Fatal("expected embedded catalog to have entries")
	}
	ded, ok := c.Deduction("Incorrect Data Entry")
	if !ok {
		t.Fatal("expected Incorrect Data Entry in default catalog")
	}
	if ded != 25 {
		t.Fatalf("deduction = %d, want 25", ded)
	}
}

func TestDeductionUnknownLabel(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ded, ok := c.Deduction("No Such Defect")
	if ok || ded != 0 {
		t.Fatalf("unknown label: got (%d, %v), want (0, false)", ded, ok)
	}
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{
			name: "empty",
			raw:  "error_types: []",
		},
		{
			name: "negative_deduction",
			raw: `
error_types:
  - label: "X"
    deduction: -1
    category: fatal
`,
		},
		{
			name: "unknown_category",
			raw: `
error_types:
  - label: "X"
    deduction: 1
    category: cosmic
`,
		},
		{
			name: "duplicate_label",
			raw: `
error_types:
  - label: "X"
    deduction: 1
    category: fatal
  - label: "X"
    deduction: 2
    category: source
`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.raw)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
