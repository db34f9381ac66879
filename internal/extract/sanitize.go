package extract

import (
	"regexp"
	"strings"
)

var reTag = regexp.MustCompile(`<[^>]*>`)

// entities - фиксированный набор именованных сущностей, которые встречаются
// в описаниях service.bund.de. Прочие сущности остаются как есть.
// strings.Replacer работает за один проход, поэтому "&amp;auml;" даёт "&auml;",
// а не "ä".
var entities = strings.NewReplacer(
	"&auml;", "ä",
	"&uuml;", "ü",
	"&ouml;", "ö",
	"&Auml;", "Ä",
	"&Uuml;", "Ü",
	"&Ouml;", "Ö",
	"&szlig;", "ß",
	"&nbsp;", " ",
	"&amp;", "&",
	"\u00a0", " ",
)

// Sanitize превращает HTML-описание в плоский текст:
// теги заменяются пробелами, декодируются сущности из фиксированного набора,
// последовательности пробельных символов схлопываются, края обрезаются.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}

	text := reTag.ReplaceAllString(html, " ")
	text = entities.Replace(text)

	return strings.Join(strings.Fields(text), " ")
}
