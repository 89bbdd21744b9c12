package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus_management/internal/models"
	"github.com/campus_management/internal/services"
	"github.com/campus_management/pkg/utils"
)

// StudentHandler 封装了学生相关的 HTTP 处理逻辑
type StudentHandler struct {
	service services.StudentService
}

// NewStudentHandler 创建一个新的 StudentHandler 实例
func NewStudentHandler(service services.StudentService) *StudentHandler {
	return &StudentHandler{service: service}
}

// CreateStudentPayload 定义了创建学生请求的 JSON 结构体
type CreateStudentPayload struct {
	StudentNo  string  `json:"studentNo" binding:"required,max=32"`
	Name       string  `json:"name" binding:"required,max=64"`
	Gender     *string `json:"gender,omitempty" binding:"omitempty,oneof=M F"`
	Grade      string  `json:"grade" binding:"required,max=32"`
	ClassName  *string `json:"className,omitempty" binding:"omitempty,max=64"`
	Phone      *string `json:"phone,omitempty" binding:"omitempty,max=20"`
	Email      *string `json:"email,omitempty" binding:"omitempty,email"`
	Address    *string `json:"address,omitempty" binding:"omitempty,max=255"`
	EnrolledAt *string `json:"enrolledAt,omitempty" binding:"omitempty"` // YYYY-MM-DD
}

// PagedStudentsData 定义了学生列表的分页响应结构
type PagedStudentsData struct {
	Records []models.Student `json:"records"`
	PaginationInfo
}

// CreateStudent godoc
// @Summary 新增一个学生
// @Description 从请求体绑定数据并验证，学号需唯一
// @Tags Students
// @Accept json
// @Produce json
// @Param student body CreateStudentPayload true "学生信息"
// @Success 201 {object} utils.SuccessResponse{data=models.Student} "创建成功的学生对象"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误或数据校验失败"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 409 {object} utils.APIErrorResponse "学号已存在"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /students [post]
// @Security BearerAuth
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var payload CreateStudentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	studentToCreate := &models.Student{
		StudentNo: payload.StudentNo,
		Name:      payload.Name,
		Gender:    payload.Gender,
		Grade:     payload.Grade,
		ClassName: payload.ClassName,
		Phone:     payload.Phone,
		Email:     payload.Email,
		Address:   payload.Address,
	}
	if payload.EnrolledAt != nil && *payload.EnrolledAt != "" {
		enrolled, err := utils.ParseDate(*payload.EnrolledAt)
		if err != nil {
			utils.RespondValidationError(c, err.Error())
			return
		}
		studentToCreate.EnrolledAt = &enrolled
	}

	created, err := h.service.CreateStudent(studentToCreate)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStudentNoTaken):
			utils.RespondConflictError(c, services.ErrStudentNoTaken.Error())
		case errors.Is(err, utils.ErrInvalidEmailFormat):
			utils.RespondValidationError(c, err.Error())
		default:
			utils.RespondInternalServerError(c, "创建学生失败", err.Error())
		}
		return
	}

	utils.RespondSuccess(c, http.StatusCreated, created, "学生创建成功")
}

// GetStudents godoc
// @Summary 获取学生列表
// @Description 分页获取学生，支持按关键词（姓名/学号）、年级、学籍状态筛选
// @Tags Students
// @Produce json
// @Param page query int false "页码" default(1)
// @Param size query int false "每页数量" default(10)
// @Param keyword query string false "搜索关键词 (匹配姓名、学号)"
// @Param grade query string false "年级筛选"
// @Param status query string false "学籍状态筛选 ('Enrolled'/'Suspended'/'Graduated')"
// @Success 200 {object} utils.SuccessResponse{data=PagedStudentsData} "成功响应，包含学生列表和分页信息"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /students [get]
// @Security BearerAuth
func (h *StudentHandler) GetStudents(c *gin.Context) {
	type GetStudentsQuery struct {
		Page    int    `form:"page,default=1"`
		Size    int    `form:"size,default=10"`
		Keyword string `form:"keyword"`
		Grade   string `form:"grade"`
		Status  string `form:"status" binding:"omitempty,oneof=Enrolled Suspended Graduated"`
	}

	var queryParams GetStudentsQuery
	if err := c.ShouldBindQuery(&queryParams); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	page, size := NormalizePageParams(queryParams.Page, queryParams.Size)
	students, totalItems, err := h.service.GetStudents(page, size, queryParams.Keyword, queryParams.Grade, queryParams.Status)
	if err != nil {
		utils.RespondInternalServerError(c, "获取学生列表失败", err.Error())
		return
	}
	if students == nil {
		students = []models.Student{}
	}

	pagedData := PagedStudentsData{
		Records:        students,
		PaginationInfo: BuildPagination(totalItems, page, size),
	}
	utils.RespondSuccess(c, http.StatusOK, pagedData, "学生列表获取成功")
}

// GetStudentByID godoc
// @Summary 获取指定学生详情
// @Tags Students
// @Produce json
// @Param id path int true "学生ID"
// @Success 200 {object} utils.SuccessResponse{data=models.Student} "学生详情"
// @Failure 400 {object} utils.APIErrorResponse "无效的学生ID"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 404 {object} utils.APIErrorResponse "学生未找到"
// @Router /students/{id} [get]
// @Security BearerAuth
func (h *StudentHandler) GetStudentByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondValidationError(c, "无效的学生ID")
		return
	}

	student, err := h.service.GetStudentByID(id)
	if err != nil {
		if errors.Is(err, services.ErrStudentNotFound) {
			utils.RespondNotFoundError(c, "学生")
		} else {
			utils.RespondInternalServerError(c, "获取学生详情失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, student, "学生详情获取成功")
}

// UpdateStudent godoc
// @Summary 更新指定学生信息
// @Tags Students
// @Accept json
// @Produce json
// @Param id path int true "学生ID"
// @Param studentUpdate body models.UpdateStudentPayload true "要更新的学生字段"
// @Success 200 {object} utils.SuccessResponse{data=models.Student} "更新后的学生对象"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误或数据校验失败"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 404 {object} utils.APIErrorResponse "学生未找到"
// @Router /students/{id} [put]
// @Security BearerAuth
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondValidationError(c, "无效的学生ID")
		return
	}

	var payload models.UpdateStudentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	updated, err := h.service.UpdateStudent(id, payload)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStudentNotFound):
			utils.RespondNotFoundError(c, "学生")
		case errors.Is(err, utils.ErrInvalidEmailFormat):
			utils.RespondValidationError(c, err.Error())
		case errors.Is(err, services.ErrNoUpdatableFields):
			utils.RespondAPIError(c, http.StatusBadRequest, err.Error(), nil)
		default:
			utils.RespondInternalServerError(c, "更新学生信息失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, updated, "学生信息更新成功")
}

// DeleteStudent godoc
// @Summary 删除指定学生
// @Description 幂等删除：学生不存在时同样返回成功响应，消息注明"已删除或不存在"
// @Tags Students
// @Produce json
// @Param id path int true "学生ID"
// @Success 200 {object} utils.SuccessResponse "删除成功（或记录本就不存在）"
// @Failure 400 {object} utils.APIErrorResponse "无效的学生ID"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /students/{id} [delete]
// @Security BearerAuth
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondValidationError(c, "无效的学生ID")
		return
	}

	deleted, err := h.service.DeleteStudent(id)
	if err != nil {
		utils.RespondInternalServerError(c, "删除学生失败", err.Error())
		return
	}

	if deleted {
		utils.RespondSuccess(c, http.StatusOK, nil, "学生删除成功")
	} else {
		utils.RespondSuccess(c, http.StatusOK, nil, "学生已删除或不存在")
	}
}

// GetFormOptions godoc
// @Summary 获取学生表单元数据
// @Description 返回性别、年级、学籍状态等下拉框可选值
// @Tags Students
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=services.StudentFormOptions} "表单元数据"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Router /students/form-options [get]
// @Security BearerAuth
func (h *StudentHandler) GetFormOptions(c *gin.Context) {
	utils.RespondSuccess(c, http.StatusOK, h.service.FormOptions(), "表单元数据获取成功")
}
