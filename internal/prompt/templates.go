package prompt

import "strings"

// Editorial knowledge per treatment category. Opaque template text; the
// bridge only decides whether and where a block appears.
var categoryKnowledge = map[string]string{
	"dental": "Korean dental clinics quote all-in package prices (implant fixture, abutment, crown). " +
		"Mention same-week treatment timelines and that most Gangnam clinics have in-house labs.",
	"plastic-surgery": "Korean plastic surgery pricing is consultation-dependent; always give ranges, not fixed prices. " +
		"Note that revision rates and board certification (KSPRS) are the main trust signals for foreign patients.",
	"dermatology": "Skin clinics in Korea sell treatment packages (e.g. 3 or 5 sessions). " +
		"Popular procedures for visitors are laser toning, skin boosters and rejuran; downtime is usually under 48 hours.",
	"checkup": "Comprehensive health checkups in Korea are same-day with English-language reports available at " +
		"international clinics. Emphasize package tiers (basic, premium, executive) and fasting requirements.",
	"fertility": "Fertility treatment in Korea is regulated; IVF for foreigners requires a marriage certificate. " +
		"Costs run well below US prices and clinics commonly assign international coordinators.",
	"ophthalmology": "LASIK/LASEK/SMILE in Korea is high-volume and same-day; visitors typically need a 3 to 4 day " +
		"stay for pre-op exam and one follow-up.",
}

const defaultCategoryKnowledge = "Korea is a leading medical tourism destination offering advanced care at " +
	"30-70% below US prices. Most major hospitals run international patient centers with interpreter support."

// Cultural and tonal guidance per audience locale.
var localeGuidelines = map[string]string{
	"en": "Write for US/European readers comparing against home-country prices. Use USD alongside KRW, " +
		"imperial and metric units, and a direct, benefit-first tone.",
	"ko": "국내 독자를 위한 정중한 존댓말을 사용하고, 건강보험 적용 여부와 비급여 항목을 명확히 구분해 주세요.",
	"zh": "面向中国读者，强调中文协调员服务、支付宝/微信支付的可用性，以及签证和行程安排的便利性。",
	"ja": "日本の読者向けに丁寧語で書き、日本との価格差や飛行時間の短さ、日本語対応スタッフの有無を明記してください。",
	"th": "เขียนสำหรับผู้อ่านชาวไทย เน้นความสะดวกในการเดินทาง บริการล่าม และราคาเมื่อเทียบกับโรงพยาบาลเอกชนในไทย",
	"vi": "Viết cho độc giả Việt Nam, nhấn mạnh dịch vụ phiên dịch, thủ tục visa y tế và mức giá so với bệnh viện quốc tế tại Việt Nam.",
}

const defaultLocaleGuidelines = "Write for an international audience researching treatment in Korea. " +
	"Keep medical claims conservative and always recommend an in-person consultation."

// CategoryKnowledge returns the editorial notes for a category, falling back
// to the generic medical-tourism block for unknown categories.
func CategoryKnowledge(category string) string {
	if text, ok := categoryKnowledge[strings.ToLower(strings.TrimSpace(category))]; ok {
		return text
	}
	return defaultCategoryKnowledge
}

// LocaleGuidelines returns the cultural writing guidance for a locale.
func LocaleGuidelines(locale string) string {
	if text, ok := localeGuidelines[strings.ToLower(strings.TrimSpace(locale))]; ok {
		return text
	}
	return defaultLocaleGuidelines
}
