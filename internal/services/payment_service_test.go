package services

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/campus_management/internal/models"
	"github.com/campus_management/internal/repositories"
)

func newTestPaymentService(t *testing.T) (PaymentService, *gorm.DB) {
	t.Helper()
	gormDB := setupTestDB(t)
	svc := NewPaymentService(
		repositories.NewGormPaymentRepository(gormDB),
		repositories.NewGormStudentRepository(gormDB),
	)
	return svc, gormDB
}

func createTestStudent(t *testing.T, gormDB *gorm.DB, studentNo string) *models.Student {
	t.Helper()
	student := &models.Student{
		StudentNo: studentNo,
		Name:      "张三",
		Grade:     "2024",
		Status:    models.StudentStatusEnrolled,
	}
	if err := gormDB.Create(student).Error; err != nil {
		t.Fatalf("create student: %v", err)
	}
	return student
}

func createTuitionRecord(t *testing.T, svc PaymentService, studentID int64, amount int64) *models.PaymentRecord {
	t.Helper()
	record, err := svc.CreatePayment(&models.PaymentRecord{
		StudentID: studentID,
		ItemName:  "学费",
		Amount:    amount,
	})
	if err != nil {
		t.Fatalf("CreatePayment failed: %v", err)
	}
	return record
}

func TestCreatePayment(t *testing.T) {
	svc, gormDB := newTestPaymentService(t)
	student := createTestStudent(t, gormDB, "S20240001")

	record := createTuitionRecord(t, svc, student.ID, 580000)
	if record.TransactionNo == "" {
		t.Error("expected a server-generated transaction no")
	}
	if record.Status != models.PaymentStatusUnpaid {
		t.Errorf("status = %q, want Unpaid", record.Status)
	}
}

func TestCreatePaymentInvalidAmount(t *testing.T) {
	svc, gormDB := newTestPaymentService(t)
	student := createTestStudent(t, gormDB, "S20240001")

	if _, err := svc.CreatePayment(&models.PaymentRecord{
		StudentID: student.ID,
		ItemName:  "学费",
		Amount:    0,
	}); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("err = %v, want ErrInvalidAmount", err)
	}
}

func TestCreatePaymentUnknownStudent(t *testing.T) {
	svc, _ := newTestPaymentService(t)
	if _, err := svc.CreatePayment(&models.PaymentRecord{
		StudentID: 9999,
		ItemName:  "学费",
		Amount:    100,
	}); !errors.Is(err, ErrStudentNotFound) {
		t.Fatalf("err = %v, want ErrStudentNotFound", err)
	}
}

func TestMarkPaidAndRefund(t *testing.T) {
	svc, gormDB := newTestPaymentService(t)
	student := createTestStudent(t, gormDB, "S20240001")
	record := createTuitionRecord(t, svc, student.ID, 580000)

	// 待缴费的记录不能退费
	if _, err := svc.Refund(record.ID); !errors.Is(err, ErrNotRefundable) {
		t.Fatalf("refund unpaid: err = %v, want ErrNotRefundable", err)
	}

	paid, err := svc.MarkPaid(record.ID, "alipay")
	if err != nil {
		t.Fatalf("MarkPaid failed: %v", err)
	}
	if paid.Status != models.PaymentStatusPaid {
		t.Errorf("status = %q, want Paid", paid.Status)
	}
	if paid.PaidAt == nil {
		t.Error("expected paidAt to be set")
	}
	if paid.Method == nil || *paid.Method != "alipay" {
		t.Errorf("method = %v, want alipay", paid.Method)
	}

	// 已缴费不可重复缴费
	if _, err := svc.MarkPaid(record.ID, "wechat"); !errors.Is(err, ErrAlreadyPaid) {
		t.Fatalf("double pay: err = %v, want ErrAlreadyPaid", err)
	}

	refunded, err := svc.Refund(record.ID)
	if err != nil {
		t.Fatalf("Refund failed: %v", err)
	}
	if refunded.Status != models.PaymentStatusRefunded {
		t.Errorf("status = %q, want Refunded", refunded.Status)
	}

	// 已退费不可再次退费
	if _, err := svc.Refund(record.ID); !errors.Is(err, ErrNotRefundable) {
		t.Fatalf("double refund: err = %v, want ErrNotRefundable", err)
	}
}

func TestPaymentStats(t *testing.T) {
	svc, gormDB := newTestPaymentService(t)
	student := createTestStudent(t, gormDB, "S20240001")

	r1 := createTuitionRecord(t, svc, student.ID, 100)
	createTuitionRecord(t, svc, student.ID, 200)
	r3 := createTuitionRecord(t, svc, student.ID, 300)

	if _, err := svc.MarkPaid(r1.ID, "alipay"); err != nil {
		t.Fatalf("MarkPaid failed: %v", err)
	}
	if _, err := svc.MarkPaid(r3.ID, "alipay"); err != nil {
		t.Fatalf("MarkPaid failed: %v", err)
	}
	if _, err := svc.Refund(r3.ID); err != nil {
		t.Fatalf("Refund failed: %v", err)
	}

	stats, err := svc.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalRecords != 3 {
		t.Errorf("totalRecords = %d, want 3", stats.TotalRecords)
	}
	if stats.TotalAmount != 600 {
		t.Errorf("totalAmount = %d, want 600", stats.TotalAmount)
	}
	if stats.PaidCount != 1 || stats.PaidAmount != 100 {
		t.Errorf("paid = (%d, %d), want (1, 100)", stats.PaidCount, stats.PaidAmount)
	}
	if stats.UnpaidCount != 1 || stats.UnpaidAmount != 200 {
		t.Errorf("unpaid = (%d, %d), want (1, 200)", stats.UnpaidCount, stats.UnpaidAmount)
	}
	if stats.RefundedCount != 1 || stats.RefundedAmount != 300 {
		t.Errorf("refunded = (%d, %d), want (1, 300)", stats.RefundedCount, stats.RefundedAmount)
	}
}

func TestGetPaymentsByStudentUnknown(t *testing.T) {
	svc, _ := newTestPaymentService(t)
	if _, err := svc.GetPaymentsByStudent(9999); !errors.Is(err, ErrStudentNotFound) {
		t.Fatalf("err = %v, want ErrStudentNotFound", err)
	}
}

func TestDeletePaymentNotFound(t *testing.T) {
	svc, _ := newTestPaymentService(t)
	if err := svc.DeletePayment(9999); !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("err = %v, want ErrPaymentNotFound", err)
	}
}

func TestUpdatePaymentNoFields(t *testing.T) {
	svc, _ := newTestPaymentService(t)
	if _, err := svc.UpdatePayment(1, UpdatePaymentPayload{}); !errors.Is(err, ErrNoUpdatableFields) {
		t.Fatalf("err = %v, want ErrNoUpdatableFields", err)
	}
}
