package postgres

import (
	"fmt"
	"strings"

	"github.com/pribylovaa/go-tender-aggregator/internal/models"
)

const tenderColumns = `id, title, description, publication_date, deadline, category, region,
	estimated_value, tender_url, source, source_url, status, is_bookmarked, created_at`

// sortColumns - allow-list полей сортировки. Имена колонок никогда
// не берутся из пользовательского ввода напрямую.
var sortColumns = map[models.SortField]string{
	models.SortByPublicationDate: "publication_date",
	models.SortByDeadline:        "deadline",
	models.SortByEstimatedValue:  "estimated_value",
}

// whereClause собирает условие фильтрации и аргументы для него.
// Пустые фильтры не применяются; поиск - ILIKE по title и description.
func whereClause(opts models.ListOptions) (string, []any) {
	var (
		conds []string
		args  []any
	)

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if s := strings.TrimSpace(opts.Search); s != "" {
		args = append(args, "%"+escapeLike(s)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", n, n))
	}
	if opts.Category != "" {
		add("category = $%d", opts.Category)
	}
	if opts.Region != "" {
		add("region = $%d", opts.Region)
	}
	if opts.Status != "" {
		add("status = $%d", opts.Status)
	}

	if len(conds) == 0 {
		return "", nil
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

// orderClause возвращает ORDER BY для допустимого поля; ok == false - поле вне allow-list.
// NULL-значения всегда в конце, id - тай-брейк для стабильной пагинации.
func orderClause(field models.SortField, order models.SortOrder) (string, bool) {
	col, ok := sortColumns[field]
	if !ok {
		return "", false
	}

	dir := "ASC"
	switch order {
	case models.SortDesc:
		dir = "DESC"
	case models.SortAsc, "":
	default:
		return "", false
	}

	return fmt.Sprintf("ORDER BY %s %s NULLS LAST, id %s", col, dir, dir), true
}

// escapeLike экранирует спецсимволы шаблона LIKE.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
