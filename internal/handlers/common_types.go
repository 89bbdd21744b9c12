package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campus_management/pkg/utils"
)

// parseIDParam 解析路径参数中的数字ID，只接受纯十进制数字，
// 带符号或含其他字符的输入一律视为无效。
func parseIDParam(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	if !utils.IsNumeric(raw) {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(raw, 10, 64)
}

// PaginationInfo 定义了通用的分页信息结构，内嵌进各列表响应后与 records 平铺在同一层。
// 页码从1开始。
type PaginationInfo struct {
	Total   int64 `json:"total"`   // 符合条件的记录总数
	Pages   int64 `json:"pages"`   // 总页数
	Current int   `json:"current"` // 当前页码
	Size    int   `json:"size"`    // 每页数量
}

// BuildPagination 根据总数和分页参数计算分页信息
func BuildPagination(totalItems int64, page, limit int) PaginationInfo {
	totalPages := int64(0)
	if limit > 0 {
		totalPages = (totalItems + int64(limit) - 1) / int64(limit)
	}
	if totalPages == 0 && totalItems > 0 {
		totalPages = 1
	}
	return PaginationInfo{
		Total:   totalItems,
		Pages:   totalPages,
		Current: page,
		Size:    limit,
	}
}

// NormalizePageParams 把非法的分页参数归一到默认值，页码始终 >= 1
func NormalizePageParams(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return page, limit
}
