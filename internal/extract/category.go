package extract

import (
	"regexp"
	"strings"

	"github.com/pribylovaa/go-tender-aggregator/internal/models"
)

// categoryRule - категория и её ключевые слова.
type categoryRule struct {
	Category models.Category
	Keywords []string

	substrings []string
	re         *regexp.Regexp // аббревиатуры, только целым словом
}

// categoryRules - упорядоченная таблица классификации. При совпадении ключевых
// слов нескольких категорий побеждает более ранняя ("Beratung" есть и у
// Dienstleistungen, и у Planung & Beratung -> Dienstleistungen).
var categoryRules = compileCategoryRules([]categoryRule{
	{Category: models.CategoryIT, Keywords: []string{"IT", "Software", "Hardware", "Systeme", "Datenbank", "Netzwerk", "Digital"}},
	{Category: models.CategoryConstruction, Keywords: []string{"Bau", "Sanierung", "Renovierung", "Modernisierung", "Neubau", "Umbau"}},
	{Category: models.CategoryServices, Keywords: []string{"Dienstleistung", "Service", "Beratung", "Wartung", "Pflege", "Reinigung"}},
	{Category: models.CategorySupplies, Keywords: []string{"Lieferung", "Beschaffung", "Ausstattung", "Möbel", "Material"}},
	{Category: models.CategoryPlanning, Keywords: []string{"Planung", "Konzept", "Studie", "Gutachten", "Beratung"}},
	{Category: models.CategoryInfrastructure, Keywords: []string{"Straße", "Kanal", "Verkehr", "Infrastruktur", "Netz"}},
	{Category: models.CategoryFacility, Keywords: []string{"Facility", "Gebäude", "Instandhaltung", "Wartung", "Betrieb"}},
})

// compileCategoryRules приводит ключевые слова к нижнему регистру.
// Ключевое слово ищется как подстрока, поэтому работают немецкие составные
// слова: "sanierung" в "straßensanierung", "möbel" в "büromöbel".
// Исключение - аббревиатуры короче трёх символов ("it"): как подстрока они
// встречаются почти в любом тексте ("mit", "kita"), поэтому должны быть
// отдельным словом.
func compileCategoryRules(rules []categoryRule) []categoryRule {
	for i := range rules {
		var words []string
		for _, kw := range rules[i].Keywords {
			kw = strings.ToLower(kw)
			if len([]rune(kw)) < 3 {
				words = append(words, regexp.QuoteMeta(kw))
				continue
			}
			rules[i].substrings = append(rules[i].substrings, kw)
		}
		if len(words) > 0 {
			rules[i].re = regexp.MustCompile(`\b(?:` + strings.Join(words, "|") + `)\b`)
		}
	}

	return rules
}

func (r categoryRule) matches(text string) bool {
	for _, kw := range r.substrings {
		if strings.Contains(text, kw) {
			return true
		}
	}

	return r.re != nil && r.re.MatchString(text)
}

// Category классифицирует тендер по заголовку и очищенному описанию.
func Category(title, cleanDescription string) (models.Category, bool) {
	text := strings.ToLower(title + " " + cleanDescription)

	for _, rule := range categoryRules {
		if rule.matches(text) {
			return rule.Category, true
		}
	}

	return "", false
}
