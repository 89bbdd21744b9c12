package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campus_management/internal/auth"
	"github.com/campus_management/internal/models"
	"github.com/campus_management/internal/services"
	"github.com/campus_management/pkg/utils"
)

// ClassroomHandler 封装了教室相关的 HTTP 处理逻辑
type ClassroomHandler struct {
	service services.ClassroomService
}

// NewClassroomHandler 创建一个新的 ClassroomHandler 实例
func NewClassroomHandler(service services.ClassroomService) *ClassroomHandler {
	return &ClassroomHandler{service: service}
}

// CreateClassroomPayload 定义了创建教室请求的 JSON 结构体
type CreateClassroomPayload struct {
	RoomNo   string `json:"roomNo" binding:"required,max=32"`
	Building string `json:"building" binding:"required,max=64"`
	Floor    int    `json:"floor" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
	RoomType string `json:"roomType" binding:"required,max=32"`
}

// BookClassroomPayload 定义了预订教室请求的 JSON 结构体，时间为 RFC3339 格式
type BookClassroomPayload struct {
	Purpose   string    `json:"purpose" binding:"required,max=255"`
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
}

// PagedClassroomsData 定义了教室列表的分页响应结构
type PagedClassroomsData struct {
	Records []models.Classroom `json:"records"`
	PaginationInfo
}

// CreateClassroom godoc
// @Summary 新增一个教室
// @Description 教室编号需唯一
// @Tags Classrooms
// @Accept json
// @Produce json
// @Param classroom body CreateClassroomPayload true "教室信息"
// @Success 201 {object} utils.SuccessResponse{data=models.Classroom} "创建成功的教室对象"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 403 {object} utils.APIErrorResponse "当前角色无权访问"
// @Failure 409 {object} utils.APIErrorResponse "教室编号已存在"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /v1/classrooms [post]
// @Security BearerAuth
func (h *ClassroomHandler) CreateClassroom(c *gin.Context) {
	var payload CreateClassroomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	classroomToCreate := &models.Classroom{
		RoomNo:   payload.RoomNo,
		Building: payload.Building,
		Floor:    payload.Floor,
		Capacity: payload.Capacity,
		RoomType: payload.RoomType,
	}

	created, err := h.service.CreateClassroom(classroomToCreate)
	if err != nil {
		if errors.Is(err, services.ErrRoomNoTaken) {
			utils.RespondConflictError(c, services.ErrRoomNoTaken.Error())
		} else {
			utils.RespondInternalServerError(c, "创建教室失败", err.Error())
		}
		return
	}

	utils.RespondSuccess(c, http.StatusCreated, created, "教室创建成功")
}

// GetClassrooms godoc
// @Summary 获取教室列表
// @Description 分页获取教室，支持按楼栋、类型、状态筛选
// @Tags Classrooms
// @Produce json
// @Param page query int false "页码" default(1)
// @Param size query int false "每页数量" default(10)
// @Param building query string false "楼栋筛选"
// @Param roomType query string false "教室类型筛选"
// @Param status query string false "状态筛选 ('Available'/'Maintenance'/'Disabled')"
// @Success 200 {object} utils.SuccessResponse{data=PagedClassroomsData} "成功响应，包含教室列表和分页信息"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /v1/classrooms [get]
// @Security BearerAuth
func (h *ClassroomHandler) GetClassrooms(c *gin.Context) {
	type GetClassroomsQuery struct {
		Page     int    `form:"page,default=1"`
		Size     int    `form:"size,default=10"`
		Building string `form:"building"`
		RoomType string `form:"roomType"`
		Status   string `form:"status" binding:"omitempty,oneof=Available Maintenance Disabled"`
	}

	var queryParams GetClassroomsQuery
	if err := c.ShouldBindQuery(&queryParams); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	page, size := NormalizePageParams(queryParams.Page, queryParams.Size)
	classrooms, totalItems, err := h.service.GetClassrooms(page, size, queryParams.Building, queryParams.RoomType, queryParams.Status)
	if err != nil {
		utils.RespondInternalServerError(c, "获取教室列表失败", err.Error())
		return
	}
	if classrooms == nil {
		classrooms = []models.Classroom{}
	}

	pagedData := PagedClassroomsData{
		Records:        classrooms,
		PaginationInfo: BuildPagination(totalItems, page, size),
	}
	utils.RespondSuccess(c, http.StatusOK, pagedData, "教室列表获取成功")
}

// GetAvailableClassrooms godoc
// @Summary 按时间段查询可用教室
// @Description 返回在 [start, end) 时间段内无占用、状态可用且容量满足要求的教室
// @Tags Classrooms
// @Produce json
// @Param start query string true "开始时间 (RFC3339)"
// @Param end query string true "结束时间 (RFC3339)"
// @Param minCapacity query int false "最小容量" default(0)
// @Success 200 {object} utils.SuccessResponse{data=[]models.Classroom} "可用教室列表"
// @Failure 400 {object} utils.APIErrorResponse "时间参数无效"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /v1/classrooms/available [get]
// @Security BearerAuth
func (h *ClassroomHandler) GetAvailableClassrooms(c *gin.Context) {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		utils.RespondValidationError(c, "无效的开始时间，应为 RFC3339 格式")
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		utils.RespondValidationError(c, "无效的结束时间，应为 RFC3339 格式")
		return
	}
	minCapacity, _ := strconv.Atoi(c.DefaultQuery("minCapacity", "0"))

	classrooms, err := h.service.FindAvailable(start, end, minCapacity)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTimeSlot) {
			utils.RespondValidationError(c, err.Error())
		} else {
			utils.RespondInternalServerError(c, "查询可用教室失败", err.Error())
		}
		return
	}
	if classrooms == nil {
		classrooms = []models.Classroom{}
	}
	utils.RespondSuccess(c, http.StatusOK, classrooms, "可用教室查询成功")
}

// GetClassroomByID godoc
// @Summary 获取指定教室详情
// @Tags Classrooms
// @Produce json
// @Param id path int true "教室ID"
// @Success 200 {object} utils.SuccessResponse{data=models.Classroom} "教室详情"
// @Failure 400 {object} utils.APIErrorResponse "无效的教室ID"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 404 {object} utils.APIErrorResponse "教室未找到"
// @Router /v1/classrooms/{id} [get]
// @Security BearerAuth
func (h *ClassroomHandler) GetClassroomByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondValidationError(c, "无效的教室ID")
		return
	}

	classroom, err := h.service.GetClassroomByID(id)
	if err != nil {
		if errors.Is(err, services.ErrClassroomNotFound) {
			utils.RespondNotFoundError(c, "教室")
		} else {
			utils.RespondInternalServerError(c, "获取教室详情失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, classroom, "教室详情获取成功")
}

// UpdateClassroom godoc
// @Summary 更新指定教室信息
// @Tags Classrooms
// @Accept json
// @Produce json
// @Param id path int true "教室ID"
// @Param classroomUpdate body services.UpdateClassroomPayload true "要更新的教室字段"
// @Success 200 {object} utils.SuccessResponse{data=models.Classroom} "更新后的教室对象"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 404 {object} utils.APIErrorResponse "教室未找到"
// @Router /v1/classrooms/{id} [put]
// @Security BearerAuth
func (h *ClassroomHandler) UpdateClassroom(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondValidationError(c, "无效的教室ID")
		return
	}

	var payload services.UpdateClassroomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	updated, err := h.service.UpdateClassroom(id, payload)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrClassroomNotFound):
			utils.RespondNotFoundError(c, "教室")
		case errors.Is(err, services.ErrRoomNoTaken):
			utils.RespondConflictError(c, services.ErrRoomNoTaken.Error())
		case errors.Is(err, services.ErrNoUpdatableFields):
			utils.RespondAPIError(c, http.StatusBadRequest, err.Error(), nil)
		default:
			utils.RespondInternalServerError(c, "更新教室信息失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, updated, "教室信息更新成功")
}

// DeleteClassroom godoc
// @Summary 删除指定教室
// @Description 删除不存在的教室返回 404，不会产生 500
// @Tags Classrooms
// @Produce json
// @Param id path int true "教室ID"
// @Success 200 {object} utils.SuccessResponse "删除成功"
// @Failure 400 {object} utils.APIErrorResponse "无效的教室ID"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 404 {object} utils.APIErrorResponse "教室未找到"
// @Router /v1/classrooms/{id} [delete]
// @Security BearerAuth
func (h *ClassroomHandler) DeleteClassroom(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondValidationError(c, "无效的教室ID")
		return
	}

	if err := h.service.DeleteClassroom(id); err != nil {
		if errors.Is(err, services.ErrClassroomNotFound) {
			utils.RespondNotFoundError(c, "教室")
		} else {
			utils.RespondInternalServerError(c, "删除教室失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "教室删除成功")
}

// BookClassroom godoc
// @Summary 预订教室
// @Description 在指定时间段占用教室，时间段与已有占用冲突时返回 409
// @Tags Classrooms
// @Accept json
// @Produce json
// @Param id path int true "教室ID"
// @Param booking body BookClassroomPayload true "预订信息"
// @Success 201 {object} utils.SuccessResponse{data=models.ClassroomBooking} "创建成功的占用记录"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误或时间段无效"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 404 {object} utils.APIErrorResponse "教室未找到"
// @Failure 409 {object} utils.APIErrorResponse "时间段冲突或教室不可预订"
// @Router /v1/classrooms/{id}/bookings [post]
// @Security BearerAuth
func (h *ClassroomHandler) BookClassroom(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondValidationError(c, "无效的教室ID")
		return
	}

	var payload BookClassroomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	bookedBy, _ := auth.CurrentUsername(c)
	booking, err := h.service.BookClassroom(id, services.BookingRequest{
		Purpose:   payload.Purpose,
		BookedBy:  bookedBy,
		StartTime: payload.StartTime,
		EndTime:   payload.EndTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrClassroomNotFound):
			utils.RespondNotFoundError(c, "教室")
		case errors.Is(err, services.ErrInvalidTimeSlot):
			utils.RespondValidationError(c, err.Error())
		case errors.Is(err, services.ErrTimeSlotConflict):
			utils.RespondConflictError(c, services.ErrTimeSlotConflict.Error())
		case errors.Is(err, services.ErrClassroomUnavailable):
			utils.RespondConflictError(c, services.ErrClassroomUnavailable.Error())
		default:
			utils.RespondInternalServerError(c, "预订教室失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, booking, "教室预订成功")
}

// GetClassroomBookings godoc
// @Summary 获取指定教室的占用记录
// @Tags Classrooms
// @Produce json
// @Param id path int true "教室ID"
// @Success 200 {object} utils.SuccessResponse{data=[]models.ClassroomBooking} "占用记录列表"
// @Failure 400 {object} utils.APIErrorResponse "无效的教室ID"
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 404 {object} utils.APIErrorResponse "教室未找到"
// @Router /v1/classrooms/{id}/bookings [get]
// @Security BearerAuth
func (h *ClassroomHandler) GetClassroomBookings(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondValidationError(c, "无效的教室ID")
		return
	}

	bookings, err := h.service.GetBookings(id)
	if err != nil {
		if errors.Is(err, services.ErrClassroomNotFound) {
			utils.RespondNotFoundError(c, "教室")
		} else {
			utils.RespondInternalServerError(c, "获取占用记录失败", err.Error())
		}
		return
	}
	if bookings == nil {
		bookings = []models.ClassroomBooking{}
	}
	utils.RespondSuccess(c, http.StatusOK, bookings, "占用记录获取成功")
}
