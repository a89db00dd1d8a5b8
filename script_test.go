package lox

import (
	"bytes"
	"os"
	"testing"

	"gopkg.in/yaml.v3"
)

// scriptCase is one golden end-to-end fixture: a source unit, its expected
// print output, and the expected diagnostic headers in order.
type scriptCase struct {
	Name   string   `yaml:"name"`
	Source string   `yaml:"source"`
	Output string   `yaml:"output"`
	Diags  []string `yaml:"diags"`
}

func Test_Scripts_Golden(t *testing.T) {
	data, err := os.ReadFile("testdata/scripts.yaml")
	if err != nil {
		t.Fatalf("read fixtures: %v", err)
	}
	var cases []scriptCase
	if err := yaml.Unmarshal(data, &cases); err != nil {
		t.Fatalf("decode fixtures: %v", err)
	}
	if len(cases) == 0 {
		t.Fatal("no fixtures decoded")
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			var buf bytes.Buffer
			diags := Run(tc.Source, &buf)

			if got := buf.String(); got != tc.Output {
				t.Errorf("output:\nwant %q\ngot  %q", tc.Output, got)
			}
			if len(diags) != len(tc.Diags) {
				t.Fatalf("diagnostics:\nwant %v\ngot  %v", tc.Diags, diags)
			}
			for i, want := range tc.Diags {
				if got := diags[i].Error(); got != want {
					t.Errorf("diag %d:\nwant %q\ngot  %q", i, want, got)
				}
			}
		})
	}
}
