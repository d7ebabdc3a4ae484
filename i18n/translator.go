package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "variants").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var tmpl string
	switch t.lang {
	case "ja":
		switch code {
		case "type_mismatch":
			tmpl = "型が不正です ({expected} が必要ですが {actual} でした)"
		case "missing_required_field":
			tmpl = "必須フィールドが不足しています"
		case "unresolvable_union":
			tmpl = "{union} のどのバリアントにも一致しません ({variants})"
		case "consistency_violation":
			tmpl = "整合性違反です"
		case "duplicate_key":
			tmpl = "キーが重複しています"
		case "parse_error":
			tmpl = "解析エラー"
		case "truncated":
			tmpl = "打ち切られました"
		case "deprecated_field":
			tmpl = "旧形式のフィールドです ({replacement} を使用してください)"
		case "duplicate_document":
			tmpl = "単一であるべきドキュメントが重複しています (最初: {first})"
		case "canceled":
			tmpl = "キャンセルされました"
		}
	default: // "en"
		switch code {
		case "type_mismatch":
			tmpl = "expected {expected}, got {actual}"
		case "missing_required_field":
			tmpl = "required field missing"
		case "unresolvable_union":
			tmpl = "value matches no {union} variant (attempted {variants})"
		case "consistency_violation":
			tmpl = "consistency violation"
		case "duplicate_key":
			tmpl = "duplicate key"
		case "parse_error":
			tmpl = "parse error"
		case "truncated":
			tmpl = "truncated"
		case "deprecated_field":
			tmpl = "legacy field accepted; use {replacement}"
		case "duplicate_document":
			tmpl = "singleton document supplied more than once (first: {first})"
		case "canceled":
			tmpl = "canceled before validation"
		}
	}
	if tmpl == "" {
		return code
	}
	return expand(tmpl, data)
}

func expand(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
