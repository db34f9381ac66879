// storage определяет контракты доступа к хранилищу тендеров.
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-tender-aggregator/internal/models"
)

var (
	// ErrNotFound - сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists - нарушение уникальности tender_url при вставке.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidArgument - параметры выборки не прошли проверку хранилища.
	ErrInvalidArgument = errors.New("invalid argument")
)

// TenderWriter - операции конвейера загрузки.
type TenderWriter interface {
	// TenderExists сообщает, есть ли запись с данным каноническим URL.
	// Ошибка поиска возвращается как ошибка и никогда не означает «нет записи».
	TenderExists(ctx context.Context, tenderURL string) (bool, error)
	// InsertTender вставляет одну запись одной атомарной операцией.
	// При нарушении уникальности tender_url - ErrAlreadyExists.
	// ID и CreatedAt присваиваются хранилищем, если не заданы.
	InsertTender(ctx context.Context, t models.Tender) error
}

// TenderReader - операции выдачи для внешних потребителей.
type TenderReader interface {
	// ListTenders возвращает страницу тендеров с общим количеством.
	// Поле сортировки должно входить в allow-list models.SortField,
	// иначе ErrInvalidArgument.
	ListTenders(ctx context.Context, opts models.ListOptions) (*models.Page, error)
	// TenderByID возвращает тендер по идентификатору или ErrNotFound.
	TenderByID(ctx context.Context, id uuid.UUID) (*models.Tender, error)
	// Filters возвращает различные значения категорий и регионов.
	Filters(ctx context.Context) (models.Filters, error)
}

// Storage задаёт контракт доступа к хранилищу для tender-сервиса.
type Storage interface {
	TenderWriter
	TenderReader
	Close()
}
