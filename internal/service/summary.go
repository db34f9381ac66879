package service

import (
	"time"
)

// RunState - состояние прогона конвейера.
type RunState string

const (
	RunIdle            RunState = "idle"
	RunFetching        RunState = "fetching"
	RunParsing         RunState = "parsing"
	RunProcessingItems RunState = "processing_items"
	RunDone            RunState = "done"
	RunAborted         RunState = "aborted"
)

// ItemState - состояние обработки одного элемента ленты.
type ItemState string

const (
	ItemExtracting        ItemState = "extracting"
	ItemCheckingDuplicate ItemState = "checking_duplicate"
	ItemSkipped           ItemState = "skipped"
	ItemWriting           ItemState = "writing"
	ItemWritten           ItemState = "written"
	ItemFailed            ItemState = "failed"
)

// ItemFailure - элемент, обработка которого завершилась ошибкой.
// Stage - состояние, в котором произошла ошибка.
type ItemFailure struct {
	Index int       `json:"index"`
	Title string    `json:"title"`
	Link  string    `json:"link"`
	Stage ItemState `json:"stage"`
	Error string    `json:"error"`
	Err   error     `json:"-"`
}

// Summary - итог прогона. Формируется всегда, в том числе при прерывании:
// счётчики отражают прогресс до момента прерывания.
type Summary struct {
	RunID       string        `json:"run_id"`
	State       RunState      `json:"state"`
	StartedAt   time.Time     `json:"started_at"`
	FinishedAt  time.Time     `json:"finished_at"`
	Items       int           `json:"items"`
	Written     int           `json:"written"`
	Skipped     int           `json:"skipped"`
	Failed      int           `json:"failed"`
	Failures    []ItemFailure `json:"failures,omitempty"`
	AbortReason string        `json:"abort_reason,omitempty"`
	// ArchiveKey - ключ снимка ленты в архиве, если архив включён.
	ArchiveKey string `json:"archive_key,omitempty"`
	// Err - причина прерывания (*FetchError, *ParseError или ошибка контекста).
	Err error `json:"-"`
}

// Duration - длительность прогона.
func (s Summary) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}

	return s.FinishedAt.Sub(s.StartedAt)
}

// Aborted сообщает, что прогон прерван.
func (s Summary) Aborted() bool { return s.State == RunAborted }
