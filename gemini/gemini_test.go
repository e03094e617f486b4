package gemini

import (
	"strings"
	"testing"

	"github.com/etnz/misfondos"
)

func TestPrompt(t *testing.T) {
	f := &misfondos.Fund{ISIN: "LU0996182563", Name: "DWS Concept Kaldemorgen"}
	got := Prompt(f)

	for _, want := range []string{
		"LU0996182563",
		"DWS Concept Kaldemorgen",
		"### JSON_START ###",
		"### JSON_END ###",
		"annual_performance",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Prompt missing %q", want)
		}
	}
}
