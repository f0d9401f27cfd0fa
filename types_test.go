package corpora

import "testing"

func TestParseRef(t *testing.T) {
	tests := []struct {
		ref    string
		name   string
		config string
	}{
		{ref: "iwslt2017", name: "iwslt2017", config: ""},
		{ref: "iwslt2017/iwslt2017_de-en", name: "iwslt2017", config: "iwslt2017_de-en"},
		{ref: "medal", name: "medal", config: ""},
		{ref: "", name: "", config: ""},
	}

	for _, tt := range tests {
		name, config := ParseRef(tt.ref)
		if name != tt.name || config != tt.config {
			t.Errorf("ParseRef(%q) = (%q, %q), want (%q, %q)", tt.ref, name, config, tt.name, tt.config)
		}
	}
}

func TestDatasetInfoRef(t *testing.T) {
	info := DatasetInfo{Name: "iwslt2017"}
	if got := info.Ref(); got != "iwslt2017" {
		t.Errorf("Ref() = %q, want %q", got, "iwslt2017")
	}

	info.Config = "iwslt2017_de-en"
	if got := info.Ref(); got != "iwslt2017/iwslt2017_de-en" {
		t.Errorf("Ref() = %q, want %q", got, "iwslt2017/iwslt2017_de-en")
	}
}

func TestSplitString(t *testing.T) {
	if SplitTrain.String() != "train" || SplitValidation.String() != "validation" || SplitTest.String() != "test" {
		t.Error("split constants have unexpected names")
	}
}
