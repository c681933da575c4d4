package prompt

import (
	"strings"
	"testing"
	"time"

	"github.com/telliex/ai-swift/internal/model/chat"
	"github.com/telliex/ai-swift/internal/model/literature"
)

func fixedComposer() *Composer {
	return &Composer{Now: func() time.Time {
		return time.Date(2024, 6, 1, 15, 4, 5, 0, time.UTC)
	}}
}

func TestComposeUnknownLanguageFallsBack(t *testing.T) {
	c := fixedComposer()
	rc := RequestContext{Timezone: "UTC"}

	got := c.Compose(chat.Language("fr"), rc, nil)
	want := c.Compose(chat.LanguageEnglish, rc, nil)

	if got != want {
		t.Fatalf("unknown language should use default persona:\ngot  %q\nwant %q", got, want)
	}
}

func TestComposeInterpolatesContext(t *testing.T) {
	c := fixedComposer()
	rc := RequestContext{Country: "US", Region: "CA", City: "San Francisco", Timezone: "UTC"}

	got := c.Compose(chat.LanguageEnglish, rc, nil)

	if !strings.Contains(got, "User location is San Francisco, CA, US.") {
		t.Errorf("prompt missing location line:\n%s", got)
	}
	if !strings.Contains(got, "The current time is 6/1/2024, 3:04:05 PM.") {
		t.Errorf("prompt missing time line:\n%s", got)
	}
	if !strings.HasPrefix(got, "- You are Swift") {
		t.Errorf("prompt missing persona identity:\n%s", got)
	}
}

func TestComposeChinesePersona(t *testing.T) {
	c := fixedComposer()

	got := c.Compose(chat.LanguageTraditionalChinese, RequestContext{Timezone: "UTC"}, nil)

	if !strings.Contains(got, "你是 Swift") {
		t.Errorf("expected zh-TW persona, got:\n%s", got)
	}
	if !strings.Contains(got, "用戶位置是 unknown。") {
		t.Errorf("expected unknown location placeholder, got:\n%s", got)
	}
}

func TestComposeNoRecordsByteIdentical(t *testing.T) {
	c := fixedComposer()
	rc := RequestContext{Timezone: "UTC"}

	plain := c.Compose(chat.LanguageEnglish, rc, nil)
	empty := c.Compose(chat.LanguageEnglish, rc, []literature.Record{})

	if plain != empty {
		t.Fatal("nil and empty record slices must produce byte-identical prompts")
	}
	if strings.Contains(plain, "Referenced research") {
		t.Fatal("unaugmented prompt must not contain a reference block")
	}
}

func TestComposeReferenceBlock(t *testing.T) {
	c := fixedComposer()
	long := strings.Repeat("a", 250)

	records := []literature.Record{
		{Title: "Second study", PubDate: "2024 Feb", Abstract: long},
		{Title: "First study", PubDate: "2023 Dec", Abstract: "short abstract"},
	}

	got := c.Compose(chat.LanguageEnglish, RequestContext{Timezone: "UTC"}, records)

	first := strings.Index(got, `1. "Second study" (2024 Feb)`)
	second := strings.Index(got, `2. "First study" (2023 Dec)`)
	if first < 0 || second < 0 || second < first {
		t.Fatalf("reference block out of order or missing:\n%s", got)
	}

	if !strings.Contains(got, "Key findings: "+strings.Repeat("a", 200)+"...") {
		t.Errorf("long abstract should truncate to 200 chars:\n%s", got)
	}
	if !strings.Contains(got, "Key findings: short abstract...") {
		t.Errorf("short abstract should be kept whole:\n%s", got)
	}
}

func TestComposeAugmentationIsPureSuffix(t *testing.T) {
	c := fixedComposer()
	rc := RequestContext{Timezone: "UTC"}

	plain := c.Compose(chat.LanguageEnglish, rc, nil)
	augmented := c.Compose(chat.LanguageEnglish, rc, []literature.Record{{Title: "T", PubDate: "2024"}})

	if !strings.HasPrefix(augmented, plain) {
		t.Fatal("augmentation must only append to the base prompt")
	}
}

func TestLocationRequiresAllSignals(t *testing.T) {
	tests := []struct {
		name string
		rc   RequestContext
		want string
	}{
		{"all present", RequestContext{Country: "US", Region: "NY", City: "New York"}, "New York, NY, US"},
		{"missing country", RequestContext{Region: "NY", City: "New York"}, "unknown"},
		{"missing region", RequestContext{Country: "US", City: "New York"}, "unknown"},
		{"missing city", RequestContext{Country: "US", Region: "NY"}, "unknown"},
		{"only country", RequestContext{Country: "US"}, "unknown"},
		{"only region", RequestContext{Region: "NY"}, "unknown"},
		{"only city", RequestContext{City: "New York"}, "unknown"},
		{"none", RequestContext{}, "unknown"},
	}

	for _, test := range tests {
		if got := test.rc.Location(); got != test.want {
			t.Errorf("%s: Location() = %q, want %q", test.name, got, test.want)
		}
	}
}

func TestLocalTimeUsesRequestedZone(t *testing.T) {
	now := time.Date(2024, 6, 1, 15, 4, 5, 0, time.UTC)

	rc := RequestContext{Timezone: "UTC"}
	if got := rc.LocalTime(now); got != "6/1/2024, 3:04:05 PM" {
		t.Errorf("LocalTime in UTC = %q", got)
	}
}

func TestLocalTimeBadZoneFallsBack(t *testing.T) {
	now := time.Date(2024, 6, 1, 15, 4, 5, 0, time.UTC)
	rc := RequestContext{Timezone: "Not/AZone"}

	got := rc.LocalTime(now)
	want := now.In(time.Local).Format("1/2/2006, 3:04:05 PM")
	if got != want {
		t.Errorf("LocalTime with bad zone = %q, want server-local %q", got, want)
	}
}
