package extract

import (
	"regexp"
	"strings"
)

// locationPatterns - метки места исполнения; группа 1 - текст до следующего тега.
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`Erfüllungsort:\s*(?:<[^>]*>\s*)*([^<]+)`),
}

// rePostalPlace - почтовый индекс и следующее за ним название с заглавной буквы
// (несколько слов подряд, каждое с заглавной: "Bad Homburg").
var rePostalPlace = regexp.MustCompile(`\b\d{5}\s+([A-ZÄÖÜ][a-zäöüß-]+(?:\s+[A-ZÄÖÜ][a-zäöüß-]+)*)`)

// regions - земли и крупные города. Порядок значим: побеждает первое
// совпадение-подстрока, пересечения ("Sachsen" / "Sachsen-Anhalt") не разрешаются.
var regions = []string{
	"Berlin", "Hamburg", "München", "Köln", "Frankfurt", "Stuttgart",
	"Düsseldorf", "Leipzig", "Dortmund", "Dresden", "Hannover",
	"Nordrhein-Westfalen", "Bayern", "Baden-Württemberg", "Niedersachsen",
	"Hessen", "Rheinland-Pfalz", "Sachsen", "Thüringen", "Brandenburg",
	"Sachsen-Anhalt", "Schleswig-Holstein", "Mecklenburg-Vorpommern",
	"Saarland", "Bremen",
}

// Location возвращает текст после метки "Erfüllungsort:".
func Location(description string) (string, bool) {
	for _, re := range locationPatterns {
		m := re.FindStringSubmatch(description)
		if m == nil {
			continue
		}

		if loc := strings.TrimSpace(m[1]); loc != "" {
			return loc, true
		}
	}

	return "", false
}

// Region выводит регион из текста места исполнения:
//  1. "PLZ Ort" -> Ort;
//  2. первая земля/город из списка, встречающиеся как подстрока;
//  3. иначе - false.
func Region(location string) (string, bool) {
	if m := rePostalPlace.FindStringSubmatch(location); m != nil {
		return m[1], true
	}

	for _, r := range regions {
		if strings.Contains(location, r) {
			return r, true
		}
	}

	return "", false
}
