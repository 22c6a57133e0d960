package prompt

import "strings"

// Content-type labels attached to generation metadata. Presentational only;
// they steer article structure, not safety behavior.
const (
	ContentTypePricing       = "pricing"
	ContentTypeComparison    = "comparison"
	ContentTypeProcedural    = "procedural"
	ContentTypeFAQ           = "faq"
	ContentTypeGuide         = "guide"
	ContentTypeInformational = "informational"
)

type keywordRule struct {
	contentType string
	markers     []string
}

// Ordered checks, first match wins. Pricing outranks comparison so that
// "implant cost vs crown" still reads as a pricing piece.
var keywordRules = []keywordRule{
	{ContentTypePricing, []string{"cost", "price", "how much", "cheap", "가격", "비용", "费用", "价格", "料金", "費用"}},
	{ContentTypeComparison, []string{" vs ", " vs. ", "versus", "compare", "comparison", "best", " top ", "비교", "对比", "比較"}},
	{ContentTypeProcedural, []string{"how to", "procedure", "process", "steps", "recovery", "before and after", "방법", "과정", "회복"}},
	{ContentTypeFAQ, []string{"what is", "what are", "why ", "is it", "can i", "can you", "safe", "faq"}},
	{ContentTypeGuide, []string{"guide", "tips", "checklist", "everything", "complete", "가이드", "총정리"}},
}

var searchIntents = map[string]string{
	ContentTypePricing:       "cost research intent",
	ContentTypeComparison:    "comparison shopping intent",
	ContentTypeProcedural:    "procedure planning intent",
	ContentTypeFAQ:           "question answering intent",
	ContentTypeGuide:         "in-depth research intent",
	ContentTypeInformational: "general research intent",
}

// ClassifyContentType maps a target keyword to a content-type label using
// substring matching against the rule table above.
func ClassifyContentType(keyword string) string {
	k := " " + strings.ToLower(strings.TrimSpace(keyword)) + " "
	for _, rule := range keywordRules {
		for _, m := range rule.markers {
			if strings.Contains(k, m) {
				return rule.contentType
			}
		}
	}
	return ContentTypeInformational
}

// SearchIntent returns the intent label paired with a content type.
func SearchIntent(contentType string) string {
	if intent, ok := searchIntents[contentType]; ok {
		return intent
	}
	return searchIntents[ContentTypeInformational]
}
