package models

import (
	"time"

	"gorm.io/gorm"
)

// 缴费状态常量
const (
	PaymentStatusUnpaid   = "Unpaid"   // 待缴费
	PaymentStatusPaid     = "Paid"     // 已缴费
	PaymentStatusRefunded = "Refunded" // 已退费
)

// PaymentRecord 对应于数据库中的 payment_records 表。
// 金额以"分"为单位存储，避免浮点误差。
type PaymentRecord struct {
	ID            int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	TransactionNo string         `json:"transactionNo" gorm:"column:transaction_no;unique;not null;size:64"` // 交易流水号
	StudentID     int64          `json:"studentId" gorm:"column:student_id;not null;index"`
	ItemName      string         `json:"itemName" gorm:"column:item_name;not null;size:128"` // 缴费项目，例如 学费/住宿费
	Amount        int64          `json:"amount" gorm:"column:amount;not null"`               // 单位：分
	Method        *string        `json:"method,omitempty" gorm:"column:method;size:32"`      // 支付方式
	Status        string         `json:"status" gorm:"column:status;not null;default:'Unpaid';size:32"`
	PaidAt        *time.Time     `json:"paidAt,omitempty" gorm:"column:paid_at"`
	Remark        *string        `json:"remark,omitempty" gorm:"column:remark;size:255"`
	CreatedAt     time.Time      `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt     time.Time      `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// TableName 指定 PaymentRecord 结构体对应的数据库表名
func (PaymentRecord) TableName() string {
	return "payment_records"
}

// PaymentStats 是缴费统计的聚合结果
type PaymentStats struct {
	TotalRecords   int64 `json:"totalRecords"`
	TotalAmount    int64 `json:"totalAmount"`    // 全部记录金额合计（分）
	PaidAmount     int64 `json:"paidAmount"`     // 已缴金额合计（分）
	UnpaidAmount   int64 `json:"unpaidAmount"`   // 待缴金额合计（分）
	RefundedAmount int64 `json:"refundedAmount"` // 已退金额合计（分）
	PaidCount      int64 `json:"paidCount"`
	UnpaidCount    int64 `json:"unpaidCount"`
	RefundedCount  int64 `json:"refundedCount"`
}
