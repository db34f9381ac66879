// feed реализует загрузку и разбор RSS 2.0 ленты тендеров.
package feed

// rss - корневая структура RSS-ленты.
type rss struct {
	Channel *channel `xml:"channel"`
}

// channel - RSS-канал со списком объявлений.
type channel struct {
	Items []item `xml:"item"`
}

// item описывает одно объявление в ленте.
type item struct {
	// Title - заголовок объявления.
	Title string `xml:"title"`
	// Link - ссылка на объявление, обычно с трекинговым фрагментом.
	Link string `xml:"link"`
	// GUID - fallback для Link, если издатель положил URL только сюда.
	GUID string `xml:"guid"`
	// PubDate - дата публикации в строковом виде (RFC 822/1123).
	PubDate string `xml:"pubDate"`
	// Description - HTML-описание: Angebotsfrist, Erfüllungsort и т.п. внутри <strong>.
	Description string `xml:"description"`
}
