package extract

import (
	"regexp"
	"time"
)

// deadlinePatterns - упорядоченный список шаблонов срока подачи.
// Группа 1 - дата DD.MM.YYYY, группа 2 (необязательная) - время HH:MM.
// Между меткой и датой допускается разметка (<strong> в исходной ленте).
var deadlinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`Angebotsfrist:\s*(?:<[^>]*>\s*)*(\d{2}\.\d{2}\.\d{4})(?:\s*(\d{2}:\d{2}))?`),
}

// Deadline ищет срок подачи предложений в описании.
//
// Дата трактуется как календарная дата в loc; без времени - конец дня (23:59:59).
// Возвращает false, если метка не найдена или дата невалидна (например, 31.02.2025).
func Deadline(text string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}

	for _, re := range deadlinePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		day, err := time.ParseInLocation("02.01.2006", m[1], loc)
		if err != nil {
			return time.Time{}, false
		}

		if m[2] == "" {
			return time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, loc), true
		}

		clock, err := time.Parse("15:04", m[2])
		if err != nil {
			return time.Time{}, false
		}

		return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, loc), true
	}

	return time.Time{}, false
}

// DefaultDeadline - срок по умолчанию: ровно now + d, без округления
// до конца дня. На это опираются уже сохранённые тендеры; см. DESIGN.md.
func DefaultDeadline(now time.Time, d time.Duration) time.Time {
	return now.Add(d)
}
