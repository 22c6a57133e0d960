package prompt

import "testing"

func TestClassifyContentType(t *testing.T) {
	cases := []struct {
		keyword string
		want    string
	}{
		{"dental implant cost korea", ContentTypePricing},
		{"how much is rhinoplasty in seoul", ContentTypePricing},
		{"임플란트 가격", ContentTypePricing},
		{"lasik vs smile korea", ContentTypeComparison},
		{"best hair transplant clinic seoul", ContentTypeComparison},
		{"how to prepare for a health checkup", ContentTypeProcedural},
		{"rhinoplasty recovery timeline", ContentTypeProcedural},
		{"is it safe to get veneers in korea", ContentTypeFAQ},
		{"what is skin booster treatment", ContentTypeFAQ},
		{"medical tourism korea guide", ContentTypeGuide},
		{"gangnam dermatology clinics", ContentTypeInformational},
		{"", ContentTypeInformational},
	}
	for _, tc := range cases {
		if got := ClassifyContentType(tc.keyword); got != tc.want {
			t.Errorf("ClassifyContentType(%q) = %q, want %q", tc.keyword, got, tc.want)
		}
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	// Contains both a pricing marker and a comparison marker; the pricing
	// rule is evaluated first.
	if got := ClassifyContentType("implant cost vs crown cost"); got != ContentTypePricing {
		t.Fatalf("got %q, want %q", got, ContentTypePricing)
	}
}

func TestSearchIntent(t *testing.T) {
	if got := SearchIntent(ContentTypePricing); got != "cost research intent" {
		t.Fatalf("pricing intent = %q", got)
	}
	if got := SearchIntent("unknown-type"); got != "general research intent" {
		t.Fatalf("unknown type should fall back, got %q", got)
	}
}

func TestTemplateFallbacks(t *testing.T) {
	if CategoryKnowledge("dental") == CategoryKnowledge("nonexistent-category") {
		t.Fatalf("known category returned the fallback block")
	}
	if CategoryKnowledge("nonexistent-category") != defaultCategoryKnowledge {
		t.Fatalf("unknown category should use the default block")
	}
	if LocaleGuidelines("xx") != defaultLocaleGuidelines {
		t.Fatalf("unknown locale should use the default guidelines")
	}
	if LocaleGuidelines("KO") != localeGuidelines["ko"] {
		t.Fatalf("locale lookup should be case-insensitive")
	}
}
