package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus_management/internal/models"
	"github.com/campus_management/internal/services"
	"github.com/campus_management/pkg/utils"
)

// PaymentHandler 封装了缴费相关的 HTTP 处理逻辑
type PaymentHandler struct {
	service services.PaymentService
}

// NewPaymentHandler 创建一个新的 PaymentHandler 实例
func NewPaymentHandler(service services.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// CreatePaymentPayload 定义了创建缴费记录请求的 JSON 结构体，金额单位为分
type CreatePaymentPayload struct {
	StudentID int64   `json:"studentId" binding:"required"`
	ItemName  string  `json:"itemName" binding:"required,max=128"`
	Amount    int64   `json:"amount" binding:"required,min=1"`
	Remark    *string `json:"remark,omitempty" binding:"omitempty,max=255"`
}

// MarkPaidPayload 定义了缴费确认请求的 JSON 结构体
type MarkPaidPayload struct {
	Method string `json:"method" binding:"required,max=32"`
}

// PagedPaymentsData 定义了缴费记录列表的分页响应结构
type PagedPaymentsData struct {
	Records []models.PaymentRecord `json:"records"`
	PaginationInfo
}

// CreatePayment godoc
// @Summary 新增一条缴费记录
// @Description 交易流水号由服务端生成，初始状态为待缴费
// @Tags Payments
// @Accept json
// @Produce json
// @Param payment body CreatePaymentPayload true "缴费记录信息"
// @Success 201 {object} utils.SuccessResponse{data=models.PaymentRecord} "创建成功的缴费记录"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 403 {object} utils.APIErrorResponse "当前角色无权访问"
// @Failure 404 {object} utils.APIErrorResponse "学生未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /payments/records [post]
// @Security BearerAuth
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var payload CreatePaymentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	recordToCreate := &models.PaymentRecord{
		StudentID: payload.StudentID,
		ItemName:  payload.ItemName,
		Amount:    payload.Amount,
		Remark:    payload.Remark,
	}

	created, err := h.service.CreatePayment(recordToCreate)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStudentNotFound):
			utils.RespondNotFoundError(c, "学生")
		case errors.Is(err, services.ErrInvalidAmount):
			utils.RespondValidationError(c, err.Error())
		default:
			utils.RespondInternalServerError(c, "创建缴费记录失败", err.Error())
		}
		return
	}

	utils.RespondSuccess(c, http.StatusCreated, created, "缴费记录创建成功")
}

// GetPayments godoc
// @Summary 获取缴费记录列表
// @Description 分页获取缴费记录，支持按状态、支付方式筛选
// @Tags Payments
// @Produce json
// @Param page query int false "页码" default(1)
// @Param size query int false "每页数量" default(10)
// @Param status query string false "状态筛选 ('Unpaid'/'Paid'/'Refunded')"
// @Param method query string false "支付方式筛选"
// @Success 200 {object} utils.SuccessResponse{data=PagedPaymentsData} "成功响应，包含缴费记录列表和分页信息"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /payments/records [get]
// @Security BearerAuth
func (h *PaymentHandler) GetPayments(c *gin.Context) {
	type GetPaymentsQuery struct {
		Page   int    `form:"page,default=1"`
		Size   int    `form:"size,default=10"`
		Status string `form:"status" binding:"omitempty,oneof=Unpaid Paid Refunded"`
		Method string `form:"method"`
	}

	var queryParams GetPaymentsQuery
	if err := c.ShouldBindQuery(&queryParams); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	page, size := NormalizePageParams(queryParams.Page, queryParams.Size)
	records, totalItems, err := h.service.GetPayments(page, size, queryParams.Status, queryParams.Method)
	if err != nil {
		utils.RespondInternalServerError(c, "获取缴费记录失败", err.Error())
		return
	}
	if records == nil {
		records = []models.PaymentRecord{}
	}

	pagedData := PagedPaymentsData{
		Records:        records,
		PaginationInfo: BuildPagination(totalItems, page, size),
	}
	utils.RespondSuccess(c, http.StatusOK, pagedData, "缴费记录获取成功")
}

// GetPaymentByID godoc
// @Summary 获取指定缴费记录详情
// @Tags Payments
// @Produce json
// @Param id path int true "缴费记录ID"
// @Success 200 {object} utils.SuccessResponse{data=models.PaymentRecord} "缴费记录详情"
// @Failure 400 {object} utils.APIErrorResponse "无效的缴费记录ID"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 404 {object} utils.APIErrorResponse "缴费记录未找到"
// @Router /payments/records/{id} [get]
// @Security BearerAuth
func (h *PaymentHandler) GetPaymentByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondValidationError(c, "无效的缴费记录ID")
		return
	}

	record, err := h.service.GetPaymentByID(id)
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			utils.RespondNotFoundError(c, "缴费记录")
		} else {
			utils.RespondInternalServerError(c, "获取缴费记录失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, record, "缴费记录获取成功")
}

// GetPaymentsByStudent godoc
// @Summary 获取某学生的全部缴费记录
// @Tags Payments
// @Produce json
// @Param studentId path int true "学生ID"
// @Success 200 {object} utils.SuccessResponse{data=[]models.PaymentRecord} "缴费记录列表"
// @Failure 400 {object} utils.APIErrorResponse "无效的学生ID"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 404 {object} utils.APIErrorResponse "学生未找到"
// @Router /payments/records/student/{studentId} [get]
// @Security BearerAuth
func (h *PaymentHandler) GetPaymentsByStudent(c *gin.Context) {
	studentID, err := parseIDParam(c, "studentId")
	if err != nil {
		utils.RespondValidationError(c, "无效的学生ID")
		return
	}

	records, err := h.service.GetPaymentsByStudent(studentID)
	if err != nil {
		if errors.Is(err, services.ErrStudentNotFound) {
			utils.RespondNotFoundError(c, "学生")
		} else {
			utils.RespondInternalServerError(c, "获取学生缴费记录失败", err.Error())
		}
		return
	}
	if records == nil {
		records = []models.PaymentRecord{}
	}
	utils.RespondSuccess(c, http.StatusOK, records, "学生缴费记录获取成功")
}

// UpdatePayment godoc
// @Summary 更新指定缴费记录
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path int true "缴费记录ID"
// @Param paymentUpdate body services.UpdatePaymentPayload true "要更新的字段"
// @Success 200 {object} utils.SuccessResponse{data=models.PaymentRecord} "更新后的缴费记录"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 404 {object} utils.APIErrorResponse "缴费记录未找到"
// @Router /payments/records/{id} [put]
// @Security BearerAuth
func (h *PaymentHandler) UpdatePayment(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondValidationError(c, "无效的缴费记录ID")
		return
	}

	var payload services.UpdatePaymentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	updated, err := h.service.UpdatePayment(id, payload)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentNotFound):
			utils.RespondNotFoundError(c, "缴费记录")
		case errors.Is(err, services.ErrInvalidAmount):
			utils.RespondValidationError(c, err.Error())
		case errors.Is(err, services.ErrNoUpdatableFields):
			utils.RespondAPIError(c, http.StatusBadRequest, err.Error(), nil)
		default:
			utils.RespondInternalServerError(c, "更新缴费记录失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, updated, "缴费记录更新成功")
}

// DeletePayment godoc
// @Summary 删除指定缴费记录
// @Description 删除不存在的记录返回 404
// @Tags Payments
// @Produce json
// @Param id path int true "缴费记录ID"
// @Success 200 {object} utils.SuccessResponse "删除成功"
// @Failure 400 {object} utils.APIErrorResponse "无效的缴费记录ID"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 404 {object} utils.APIErrorResponse "缴费记录未找到"
// @Router /payments/records/{id} [delete]
// @Security BearerAuth
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondValidationError(c, "无效的缴费记录ID")
		return
	}

	if err := h.service.DeletePayment(id); err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			utils.RespondNotFoundError(c, "缴费记录")
		} else {
			utils.RespondInternalServerError(c, "删除缴费记录失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "缴费记录删除成功")
}

// MarkPaid godoc
// @Summary 确认缴费
// @Description 把待缴记录标记为已缴费，记录支付方式和时间；重复缴费返回 409
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path int true "缴费记录ID"
// @Param payment body MarkPaidPayload true "支付方式"
// @Success 200 {object} utils.SuccessResponse{data=models.PaymentRecord} "更新后的缴费记录"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 404 {object} utils.APIErrorResponse "缴费记录未找到"
// @Failure 409 {object} utils.APIErrorResponse "该记录已缴费"
// @Router /payments/records/{id}/pay [post]
// @Security BearerAuth
func (h *PaymentHandler) MarkPaid(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondValidationError(c, "无效的缴费记录ID")
		return
	}

	var payload MarkPaidPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	updated, err := h.service.MarkPaid(id, payload.Method)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentNotFound):
			utils.RespondNotFoundError(c, "缴费记录")
		case errors.Is(err, services.ErrAlreadyPaid):
			utils.RespondConflictError(c, services.ErrAlreadyPaid.Error())
		default:
			utils.RespondInternalServerError(c, "缴费确认失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, updated, "缴费成功")
}

// Refund godoc
// @Summary 退费
// @Description 只有已缴费的记录才能退费
// @Tags Payments
// @Produce json
// @Param id path int true "缴费记录ID"
// @Success 200 {object} utils.SuccessResponse{data=models.PaymentRecord} "更新后的缴费记录"
// @Failure 400 {object} utils.APIErrorResponse "无效的缴费记录ID"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 404 {object} utils.APIErrorResponse "缴费记录未找到"
// @Failure 409 {object} utils.APIErrorResponse "只有已缴费的记录才能退费"
// @Router /payments/records/{id}/refund [post]
// @Security BearerAuth
func (h *PaymentHandler) Refund(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondValidationError(c, "无效的缴费记录ID")
		return
	}

	updated, err := h.service.Refund(id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentNotFound):
			utils.RespondNotFoundError(c, "缴费记录")
		case errors.Is(err, services.ErrNotRefundable):
			utils.RespondConflictError(c, services.ErrNotRefundable.Error())
		default:
			utils.RespondInternalServerError(c, "退费失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, updated, "退费成功")
}

// GetStats godoc
// @Summary 缴费统计
// @Description 返回缴费记录总量与按状态分组的金额合计
// @Tags Payments
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=models.PaymentStats} "缴费统计"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /payments/records/stats [get]
// @Security BearerAuth
func (h *PaymentHandler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats()
	if err != nil {
		utils.RespondInternalServerError(c, "获取缴费统计失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, stats, "缴费统计获取成功")
}
