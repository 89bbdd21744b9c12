package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/campus_management/internal/models"
)

// PaymentRepository 定义了缴费记录数据仓库的接口
type PaymentRepository interface {
	Create(record *models.PaymentRecord) (*models.PaymentRecord, error)
	GetByID(id int64) (*models.PaymentRecord, error)
	List(page, limit int, status, method string) ([]models.PaymentRecord, int64, error)
	ListByStudent(studentID int64) ([]models.PaymentRecord, error)
	Update(id int64, updates map[string]interface{}) (*models.PaymentRecord, error)
	Delete(id int64) error
	Stats() (*models.PaymentStats, error)
}

// gormPaymentRepository 是 PaymentRepository 的 GORM 实现
type gormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository 创建一个新的 gormPaymentRepository 实例
func NewGormPaymentRepository(db *gorm.DB) PaymentRepository {
	return &gormPaymentRepository{db: db}
}

// Create 在数据库中创建一条缴费记录
func (r *gormPaymentRepository) Create(record *models.PaymentRecord) (*models.PaymentRecord, error) {
	if err := r.db.Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// GetByID 根据主键查询缴费记录
func (r *gormPaymentRepository) GetByID(id int64) (*models.PaymentRecord, error) {
	var record models.PaymentRecord
	if err := r.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

// List 分页查询缴费记录，支持按状态、支付方式筛选
func (r *gormPaymentRepository) List(page, limit int, status, method string) ([]models.PaymentRecord, int64, error) {
	query := r.db.Model(&models.PaymentRecord{})

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if method != "" {
		query = query.Where("method = ?", method)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.PaymentRecord
	offset := (page - 1) * limit
	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListByStudent 查询某学生的全部缴费记录
func (r *gormPaymentRepository) ListByStudent(studentID int64) ([]models.PaymentRecord, error) {
	var records []models.PaymentRecord
	err := r.db.Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Update 按字段更新缴费记录并返回最新记录
func (r *gormPaymentRepository) Update(id int64, updates map[string]interface{}) (*models.PaymentRecord, error) {
	result := r.db.Model(&models.PaymentRecord{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete 软删除一条缴费记录
func (r *gormPaymentRepository) Delete(id int64) error {
	result := r.db.Delete(&models.PaymentRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// statusAggregate 是按状态分组聚合的中间结果
type statusAggregate struct {
	Status string
	Count  int64
	Sum    int64
}

// Stats 统计缴费记录的总量与按状态分组的金额合计
func (r *gormPaymentRepository) Stats() (*models.PaymentStats, error) {
	var rows []statusAggregate
	err := r.db.Model(&models.PaymentRecord{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS sum").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &models.PaymentStats{}
	for _, row := range rows {
		stats.TotalRecords += row.Count
		stats.TotalAmount += row.Sum
		switch row.Status {
		case models.PaymentStatusPaid:
			stats.PaidCount = row.Count
			stats.PaidAmount = row.Sum
		case models.PaymentStatusUnpaid:
			stats.UnpaidCount = row.Count
			stats.UnpaidAmount = row.Sum
		case models.PaymentStatusRefunded:
			stats.RefundedCount = row.Count
			stats.RefundedAmount = row.Sum
		}
	}
	return stats, nil
}
