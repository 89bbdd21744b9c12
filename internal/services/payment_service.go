package services

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/campus_management/internal/models"
	"github.com/campus_management/internal/repositories"
)

// ErrPaymentNotFound 表示缴费记录未找到
var ErrPaymentNotFound = errors.New("缴费记录未找到")

// ErrInvalidAmount 表示金额不合法
var ErrInvalidAmount = errors.New("金额必须大于0")

// ErrAlreadyPaid 表示记录已缴费，不能重复缴费
var ErrAlreadyPaid = errors.New("该记录已缴费")

// ErrNotRefundable 表示只有已缴费的记录才能退费
var ErrNotRefundable = errors.New("只有已缴费的记录才能退费")

// UpdatePaymentPayload 定义了更新缴费记录时允许修改的字段
type UpdatePaymentPayload struct {
	ItemName *string `json:"itemName,omitempty" binding:"omitempty,max=128"`
	Amount   *int64  `json:"amount,omitempty" binding:"omitempty,min=1"`
	Remark   *string `json:"remark,omitempty" binding:"omitempty,max=255"`
}

// PaymentService 定义了缴费服务的接口
type PaymentService interface {
	CreatePayment(record *models.PaymentRecord) (*models.PaymentRecord, error)
	GetPaymentByID(id int64) (*models.PaymentRecord, error)
	GetPayments(page, limit int, status, method string) ([]models.PaymentRecord, int64, error)
	GetPaymentsByStudent(studentID int64) ([]models.PaymentRecord, error)
	UpdatePayment(id int64, payload UpdatePaymentPayload) (*models.PaymentRecord, error)
	DeletePayment(id int64) error
	MarkPaid(id int64, method string) (*models.PaymentRecord, error)
	Refund(id int64) (*models.PaymentRecord, error)
	Stats() (*models.PaymentStats, error)
}

// paymentService 是 PaymentService 的实现
type paymentService struct {
	payments repositories.PaymentRepository
	students repositories.StudentRepository
}

// NewPaymentService 创建一个新的 paymentService 实例
func NewPaymentService(payments repositories.PaymentRepository, students repositories.StudentRepository) PaymentService {
	return &paymentService{payments: payments, students: students}
}

// CreatePayment 处理创建缴费记录的业务逻辑，交易流水号由服务端生成
func (s *paymentService) CreatePayment(record *models.PaymentRecord) (*models.PaymentRecord, error) {
	if record.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	// 学生必须存在
	if _, err := s.students.GetByID(record.StudentID); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	record.TransactionNo = uuid.NewString()
	if record.Status == "" {
		record.Status = models.PaymentStatusUnpaid
	}
	return s.payments.Create(record)
}

// GetPaymentByID 根据主键获取缴费记录
func (s *paymentService) GetPaymentByID(id int64) (*models.PaymentRecord, error) {
	record, err := s.payments.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return record, nil
}

// GetPayments 分页获取缴费记录列表
func (s *paymentService) GetPayments(page, limit int, status, method string) ([]models.PaymentRecord, int64, error) {
	return s.payments.List(page, limit, status, method)
}

// GetPaymentsByStudent 获取某学生的全部缴费记录，学生不存在时返回 ErrStudentNotFound
func (s *paymentService) GetPaymentsByStudent(studentID int64) ([]models.PaymentRecord, error) {
	if _, err := s.students.GetByID(studentID); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return s.payments.ListByStudent(studentID)
}

// UpdatePayment 处理更新缴费记录的业务逻辑
func (s *paymentService) UpdatePayment(id int64, payload UpdatePaymentPayload) (*models.PaymentRecord, error) {
	updates := make(map[string]interface{})
	if payload.ItemName != nil {
		updates["item_name"] = *payload.ItemName
	}
	if payload.Amount != nil {
		if *payload.Amount <= 0 {
			return nil, ErrInvalidAmount
		}
		updates["amount"] = *payload.Amount
	}
	if payload.Remark != nil {
		updates["remark"] = *payload.Remark
	}

	if len(updates) == 0 {
		return nil, ErrNoUpdatableFields
	}

	updated, err := s.payments.Update(id, updates)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return updated, nil
}

// DeletePayment 删除一条缴费记录，不存在时返回 ErrPaymentNotFound
func (s *paymentService) DeletePayment(id int64) error {
	if err := s.payments.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrPaymentNotFound
		}
		return err
	}
	return nil
}

// MarkPaid 把一条待缴记录标记为已缴费并记录支付方式和时间
func (s *paymentService) MarkPaid(id int64, method string) (*models.PaymentRecord, error) {
	record, err := s.GetPaymentByID(id)
	if err != nil {
		return nil, err
	}
	if record.Status == models.PaymentStatusPaid {
		return nil, ErrAlreadyPaid
	}

	now := time.Now()
	updated, err := s.payments.Update(id, map[string]interface{}{
		"status":  models.PaymentStatusPaid,
		"method":  method,
		"paid_at": &now,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Refund 退费：只允许 Paid → Refunded 的状态迁移
func (s *paymentService) Refund(id int64) (*models.PaymentRecord, error) {
	record, err := s.GetPaymentByID(id)
	if err != nil {
		return nil, err
	}
	if record.Status != models.PaymentStatusPaid {
		return nil, ErrNotRefundable
	}

	updated, err := s.payments.Update(id, map[string]interface{}{
		"status": models.PaymentStatusRefunded,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Stats 返回缴费统计聚合
func (s *paymentService) Stats() (*models.PaymentStats, error) {
	return s.payments.Stats()
}
