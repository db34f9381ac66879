package feed

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"github.com/pribylovaa/go-tender-aggregator/internal/models"
	"golang.org/x/net/html/charset"
)

// ErrParse - лента не является разбираемым XML.
var ErrParse = errors.New("feed parse failed")

// Parse разбирает RSS 2.0 документ в упорядоченный список элементов.
//
// Особенности:
//   - порядок элементов совпадает с порядком в ленте;
//   - пустой документ, отсутствие channel или item - пустой результат без ошибки;
//   - кодировки из XML-пролога (ISO-8859-1, windows-1252, ...) перекодируются в UTF-8;
//   - пустой link заменяется на guid, если тот является абсолютным http(s) URL.
func Parse(raw []byte) ([]models.FeedItem, error) {
	const op = "feed.Parse"

	if len(bytes.TrimSpace(raw)) == 0 {
		return []models.FeedItem{}, nil
	}

	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.CharsetReader = charset.NewReaderLabel

	var doc rss
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrParse, err)
	}

	if doc.Channel == nil {
		return []models.FeedItem{}, nil
	}

	output := make([]models.FeedItem, 0, len(doc.Channel.Items))
	for _, it := range doc.Channel.Items {
		link := strings.TrimSpace(it.Link)
		if link == "" {
			if g := strings.TrimSpace(it.GUID); strings.HasPrefix(g, "http://") || strings.HasPrefix(g, "https://") {
				link = g
			}
		}

		output = append(output, models.FeedItem{
			Title:       strings.TrimSpace(it.Title),
			Description: it.Description,
			PubDate:     strings.TrimSpace(it.PubDate),
			Link:        link,
		})
	}

	return output, nil
}
