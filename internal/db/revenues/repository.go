package revenues

import (
	"errors"

	"gorm.io/gorm"

	"bancarella/revenue-tracker/internal/apperrors"
)

// Repository is the durable store of revenue records. All operations are
// immediately visible to subsequent calls within the process.
type Repository interface {
	Exists(date, city string) (bool, error)
	Insert(record *Record) (uint, error)
	GetByID(id uint) (*Record, error)
	GetByDate(date string) ([]Record, error)
	GetAll() ([]Record, error)
	GetLast(n int) ([]Record, error)
	DeleteByID(id uint) (int64, error)
	DeleteByDateCity(date, city string) (int64, error)
	ClearAll() error
}

type RevenueSQLRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &RevenueSQLRepository{db: db}
}

func (r *RevenueSQLRepository) Exists(date, city string) (bool, error) {
	var count int64
	err := r.db.Model(&Record{}).Where("date = ? AND city = ?", date, city).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert commits the record and returns its assigned id. A unique-index
// violation on (date, city) surfaces as *apperrors.DuplicateError, so two
// concurrent writers cannot both insert the same pair.
func (r *RevenueSQLRepository) Insert(record *Record) (uint, error) {
	if err := r.db.Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, &apperrors.DuplicateError{Date: record.Date, City: record.City}
		}
		return 0, err
	}
	return record.ID, nil
}

func (r *RevenueSQLRepository) GetByID(id uint) (*Record, error) {
	var record Record
	if err := r.db.First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// GetByDate returns every record for the date across cities, newest id
// first.
func (r *RevenueSQLRepository) GetByDate(date string) ([]Record, error) {
	var records []Record
	if err := r.db.Where("date = ?", date).Order("id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *RevenueSQLRepository) GetAll() ([]Record, error) {
	var records []Record
	if err := r.db.Order("date DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// GetLast returns the n most recently inserted records, newest first.
func (r *RevenueSQLRepository) GetLast(n int) ([]Record, error) {
	var records []Record
	if err := r.db.Order("id DESC").Limit(n).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *RevenueSQLRepository) DeleteByID(id uint) (int64, error) {
	result := r.db.Delete(&Record{}, id)
	return result.RowsAffected, result.Error
}

func (r *RevenueSQLRepository) DeleteByDateCity(date, city string) (int64, error) {
	result := r.db.Where("date = ? AND city = ?", date, city).Delete(&Record{})
	return result.RowsAffected, result.Error
}

// ClearAll removes every record. The table itself stays in place.
func (r *RevenueSQLRepository) ClearAll() error {
	return r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Record{}).Error
}
