package extract

import (
	"net/url"
	"strings"
)

// trackingSuffix - фрагмент, который service.bund.de добавляет к ссылкам из RSS.
const trackingSuffix = "#track=feed-callforbids"

// CanonicalURL убирает трекинговый суффикс и пробелы по краям.
// Остальная часть ссылки не меняется: она служит ключом уникальности.
func CanonicalURL(link string) string {
	return strings.TrimSuffix(strings.TrimSpace(link), trackingSuffix)
}

// validTenderURL проверяет, что ссылка - абсолютный http(s) URL с хостом.
func validTenderURL(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
