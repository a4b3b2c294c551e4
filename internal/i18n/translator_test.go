package i18n

import (
	"errors"
	"testing"

	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	cases := []struct {
		in   string
		want language.Tag
	}{
		{"", language.English},
		{"en", language.English},
		{"tr", language.Turkish},
		{"tr_TR.UTF-8", language.Turkish},
		{"TR", language.Turkish},
		{"Türkçe", language.Turkish},
		{"English", language.English},
		{"de", language.English},
		{"not a language", language.English},
	}
	for _, tc := range cases {
		if got := Match(tc.in); got != tc.want {
			t.Errorf("Match(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestTranslatorStaticMessages(t *testing.T) {
	en := MustNew("en")
	tr := MustNew("tr")

	if got := en.T(KeySortingStarted); got != "Sorting started..." {
		t.Fatalf("unexpected english message %q", got)
	}
	if got := tr.T(KeySortingCompleted); got != "Sıralama tamamlandı!" {
		t.Fatalf("unexpected turkish message %q", got)
	}
	if got := tr.T(KeySelectFolders); got != "Lütfen kaynak ve hedef klasörleri seçin!" {
		t.Fatalf("unexpected turkish warning %q", got)
	}
	if got := en.T(Key("no_such_key")); got != "no_such_key" {
		t.Fatalf("unknown key should render as itself, got %q", got)
	}
}

func TestTranslatorFormattedMessages(t *testing.T) {
	en := MustNew("en")
	if got := en.T(KeyMoved, "a.jpg", "a_1.jpg", "/dest/2021-01"); got != "Moved a.jpg → a_1.jpg in /dest/2021-01" {
		t.Fatalf("unexpected moved line %q", got)
	}
	if got := en.T(KeyFailed, "a.jpg", errors.New("permission denied")); got != "Could not move a.jpg: permission denied" {
		t.Fatalf("unexpected failed line %q", got)
	}
	if got := en.T(KeyFound, 1); got != "Found 1 file to sort" {
		t.Fatalf("unexpected singular %q", got)
	}
	if got := en.T(KeyFound, 3); got != "Found 3 files to sort" {
		t.Fatalf("unexpected plural %q", got)
	}

	tr := MustNew("tr")
	if got := tr.T(KeyFound, 3); got != "Sıralanacak 3 dosya bulundu" {
		t.Fatalf("unexpected turkish count %q", got)
	}
}

func TestTranslatorUpperUsesLanguageRules(t *testing.T) {
	if got := MustNew("tr").Upper("iptal"); got != "İPTAL" {
		t.Fatalf("expected dotted capital I, got %q", got)
	}
	if got := MustNew("en").Upper("iptal"); got != "IPTAL" {
		t.Fatalf("unexpected english upper %q", got)
	}
}

func TestTranslatorName(t *testing.T) {
	if got := MustNew("tr").Name(); got != "Türkçe" {
		t.Fatalf("unexpected name %q", got)
	}
}
