package report

import (
	"slices"
	"testing"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(nil, "")

	tests := []struct {
		title string
		want  string
	}{
		{"Panorama de Ações para 2024", "Ações"},
		{"RENDA FIXA: o que esperar", "Renda Fixa"},
		{"renda fixa e multimercados", "Multimercados"},
		{"Ações e Renda Fixa", "Renda Fixa"},
		{"Crédito privado vale a pena?", "Crédito Privado"},
		{"CRIs high yield", "CRIs"},
		{"knri11 relatório", "KNRI11"},
		{"KFOF11 e KEVE11", "KFOF11"},
		{"keve11", "KEVE11"},
		{"Renda Fixa CRIs update", "Renda Fixa"},
		{"Mercado em alta hoje", "Outros"},
		{"Live de sexta", "Outros"},
		{"", "Outros"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := c.Classify(tt.title); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestClassifyUnicodeCase(t *testing.T) {
	c := NewClassifier(nil, "")

	if got := c.Classify("AÇÕES EM ALTA"); got != "Ações" {
		t.Errorf("Classify() = %q, want Ações", got)
	}
	if got := c.Classify("CRÉDITO PRIVADO"); got != "Crédito Privado" {
		t.Errorf("Classify() = %q, want Crédito Privado", got)
	}
}

func TestClassifierCustomGroups(t *testing.T) {
	c := NewClassifier([]string{"Beta", "Alpha"}, "Misc")

	if got := c.Classify("alpha and beta"); got != "Beta" {
		t.Errorf("Classify() = %q, want Beta (list order wins)", got)
	}
	if got := c.Classify("gamma"); got != "Misc" {
		t.Errorf("Classify() = %q, want Misc", got)
	}
	if c.Fallback() != "Misc" {
		t.Errorf("Fallback() = %q", c.Fallback())
	}
}

func TestClassifierGroupsIsCopy(t *testing.T) {
	c := NewClassifier(nil, "")

	groups := c.Groups()
	if !slices.Equal(groups, DefaultGroups) {
		t.Fatalf("Groups() = %v", groups)
	}
	groups[0] = "changed"
	if c.Groups()[0] != "Multimercados" {
		t.Error("Groups() exposes internal slice")
	}
}
