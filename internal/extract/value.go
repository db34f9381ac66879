package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// thousandsUnit - маркеры «в тысячах». Суммы в евро без такого маркера
// (например, "50.000 €") не распознаются.
const thousandsUnit = `(?:Tausend|Tsd\.?|T€|T\s*EUR|k€|k\s*EUR)`

// valuePatterns - упорядоченный список шаблонов оценочной стоимости.
// Группа 1 - число не более чем с одним разделителем; и ".", и ","
// считаются десятичной точкой ("1.5 Tsd." и "1,5 Tsd." - 1500 €).
// Суммы с разделителем разрядов ("1.250,5 T€") не распознаются.
var valuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:geschätztes|voraussichtliches)\s*Auftragsvolumen:?\s*(\d+(?:[.,]\d+)?)\s*` + thousandsUnit),
	regexp.MustCompile(`(?i)(?:geschätzter|voraussichtlicher)\s*Wert:?\s*(\d+(?:[.,]\d+)?)\s*` + thousandsUnit),
	regexp.MustCompile(`(?i)Auftragswert:?\s*(\d+(?:[.,]\d+)?)\s*` + thousandsUnit),
}

// EstimatedValue извлекает оценочную стоимость в евро (не в тысячах).
func EstimatedValue(cleanText string) (float64, bool) {
	for _, re := range valuePatterns {
		m := re.FindStringSubmatch(cleanText)
		if m == nil {
			continue
		}

		v, ok := parseDecimal(m[1])
		if !ok {
			continue
		}

		return v * 1000, true
	}

	return 0, false
}

// parseDecimal разбирает "1,5" и "1.5" -> 1.5.
func parseDecimal(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}

	return v, true
}
