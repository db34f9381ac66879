package service

import (
	"errors"
	"fmt"

	"github.com/pribylovaa/go-tender-aggregator/internal/storage"
)

var (
	// ErrNotFound - сущность отсутствует.
	// Транспорт: 404.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument - некорректные входные аргументы.
	// Транспорт: 400.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Ошибки конвейера загрузки.
//
// FetchError и ParseError прерывают прогон целиком; ExtractionError,
// DuplicateCheckError и WriteError прерывают только обработку одного элемента.
// Все типы поддерживают errors.As и errors.Unwrap.

// FetchError - сеть, таймаут или HTTP-статус >= 400 при загрузке ленты.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch %s: %v", e.URL, e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// ParseError - лента не разбирается как XML.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse feed: %v", e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// ExtractionError - из элемента не удалось получить обязательные поля.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string { return fmt.Sprintf("extract item: %v", e.Err) }
func (e *ExtractionError) Unwrap() error { return e.Err }

// DuplicateCheckError - хранилище не ответило на проверку существования.
// Это не «записи нет»: элемент не пишется.
type DuplicateCheckError struct {
	TenderURL string
	Err       error
}

func (e *DuplicateCheckError) Error() string {
	return fmt.Sprintf("check duplicate %s: %v", e.TenderURL, e.Err)
}
func (e *DuplicateCheckError) Unwrap() error { return e.Err }

// WriteError - ошибка вставки записи.
type WriteError struct {
	TenderURL string
	Err       error
}

func (e *WriteError) Error() string { return fmt.Sprintf("write %s: %v", e.TenderURL, e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }

// Benign сообщает, что запись уже вставлена другим процессом
// между проверкой и вставкой: такой элемент считается дубликатом.
func (e *WriteError) Benign() bool { return errors.Is(e.Err, storage.ErrAlreadyExists) }
