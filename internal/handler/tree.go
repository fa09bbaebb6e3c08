package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"familytree_go/internal/model"
	"familytree_go/internal/service"
)

// TreeHandler 家族树HTTP处理器
//
// 把图存储的操作暴露给界面层，本身不包含任何图算法。
type TreeHandler struct {
	trees  *service.TreeService
	shares *service.ShareService
	logger *slog.Logger
}

// NewTreeHandler 创建家族树处理器实例
func NewTreeHandler(trees *service.TreeService, shares *service.ShareService, logger *slog.Logger) *TreeHandler {
	return &TreeHandler{
		trees:  trees,
		shares: shares,
		logger: logger,
	}
}

// RegisterRoutes 注册全部路由
func (h *TreeHandler) RegisterRoutes(r *gin.Engine) {
	registerValidations()

	r.GET("/healthz", h.Health)

	api := r.Group("/api")
	{
		api.GET("/tree", h.GetTree)
		api.POST("/tree", h.CreateTree)
		api.POST("/tree/import", h.ImportTree)
		api.POST("/tree/merge", h.MergeTree)
		api.GET("/tree/export", h.ExportTree)
		api.POST("/tree/share", h.EncodeShare)
		api.POST("/tree/share/apply", h.ApplyShare)
		api.POST("/tree/undo", h.Undo)
		api.POST("/tree/redo", h.Redo)

		api.POST("/people/:id/relationships", h.AddRelationship)
		api.PUT("/people/:id", h.EditPerson)
		api.DELETE("/people/:id", h.DeletePerson)
		api.GET("/people/search", h.Search)
		api.GET("/people/birthdays", h.Birthdays)
		api.GET("/people/:id/connections", h.Connections)

		api.POST("/navigation/push", h.PushRoot)
		api.POST("/navigation/pop", h.PopRoot)
		api.POST("/navigation/home", h.ResetHome)

		api.GET("/statistics", h.Statistics)
		api.GET("/generations", h.Generations)
		api.GET("/family-unit", h.FamilyUnit)
	}
}

// addRelationshipRequest 添加亲属关系请求
type addRelationshipRequest struct {
	Relationship     model.Relationship   `json:"relationship" binding:"required,oneof=spouse child parent sibling"` // 关系类型
	Form             *model.PersonForm    `json:"form"`                                                              // 基本信息
	Details          *model.PersonDetails `json:"details"`                                                           // 详细信息
	ExistingPersonID string               `json:"existingPersonId"`                                                  // 关联已有成员时的ID
}

// editPersonRequest 编辑成员请求
type editPersonRequest struct {
	Form    model.PersonForm    `json:"form" binding:"required"` // 基本信息
	Details model.PersonDetails `json:"details"`                 // 详细信息
}

// pushRootRequest 下钻导航请求
type pushRootRequest struct {
	ID string `json:"id" binding:"required"` // 目标成员ID
}

// shareApplyRequest 应用分享负载请求
type shareApplyRequest struct {
	Data string `json:"data" binding:"required"` // 压缩编码后的文档
}

// treeResponse 家族树快照响应
type treeResponse struct {
	*model.TreeData
	Version     uint64 `json:"version"`               // 快照版本号
	LastUpdated string `json:"lastUpdated,omitempty"` // 最后变更时间 RFC3339
}

// respondTree 返回当前快照
func (h *TreeHandler) respondTree(c *gin.Context, status int, data *model.TreeData) {
	resp := treeResponse{TreeData: data, Version: h.trees.Version()}
	if updated := h.trees.LastUpdated(); !updated.IsZero() {
		resp.LastUpdated = updated.Format(time.RFC3339)
	}
	c.JSON(status, resp)
}

// respondError 把应用错误映射为HTTP响应
func (h *TreeHandler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var appErr *service.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case service.ErrStructural, service.ErrDanglingReference:
			status = http.StatusBadRequest
		case service.ErrNotFound:
			status = http.StatusNotFound
		case service.ErrPrecondition:
			status = http.StatusConflict
		case service.ErrIO:
			status = http.StatusBadGateway
		}
	}
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err, "path", c.Request.URL.Path)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// Health 健康检查
func (h *TreeHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetTree 获取当前家族树快照
func (h *TreeHandler) GetTree(c *gin.Context) {
	h.respondTree(c, http.StatusOK, h.trees.Snapshot())
}

// CreateTree 引导创建初始家族树
func (h *TreeHandler) CreateTree(c *gin.Context) {
	data, err := h.trees.CreateInitialTree()
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondTree(c, http.StatusCreated, data)
}

// ImportTree 导入并整体替换家族树
func (h *TreeHandler) ImportTree(c *gin.Context) {
	doc, err := service.DecodeDocument(c.Request.Body)
	if err != nil {
		h.respondError(c, err)
		return
	}
	data, err := h.trees.ImportReplace(doc)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondTree(c, http.StatusOK, data)
}

// MergeTree 导入并合并进当前家族树
func (h *TreeHandler) MergeTree(c *gin.Context) {
	doc, err := service.DecodeDocument(c.Request.Body)
	if err != nil {
		h.respondError(c, err)
		return
	}
	data, err := h.trees.MergeImport(doc)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondTree(c, http.StatusOK, data)
}

// ExportTree 导出家族树文档
func (h *TreeHandler) ExportTree(c *gin.Context) {
	data := h.trees.Snapshot()
	raw, err := service.EncodeDocument(data)
	if err != nil {
		h.respondError(c, err)
		return
	}
	fileName := service.ExportFileName(data, time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "application/json", raw)
}

// EncodeShare 生成分享负载
func (h *TreeHandler) EncodeShare(c *gin.Context) {
	payload, err := h.shares.Encode(h.trees.Snapshot())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// ApplyShare 解码分享负载并整体替换家族树
func (h *TreeHandler) ApplyShare(c *gin.Context) {
	var req shareApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	doc, err := h.shares.Decode(req.Data)
	if err != nil {
		h.respondError(c, err)
		return
	}
	data, err := h.trees.ImportReplace(doc)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondTree(c, http.StatusOK, data)
}

// Undo 撤销上一次变更
func (h *TreeHandler) Undo(c *gin.Context) {
	data, err := h.trees.Undo()
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondTree(c, http.StatusOK, data)
}

// Redo 重做被撤销的变更
func (h *TreeHandler) Redo(c *gin.Context) {
	data, err := h.trees.Redo()
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondTree(c, http.StatusOK, data)
}

// AddRelationship 为锚点成员添加亲属关系
func (h *TreeHandler) AddRelationship(c *gin.Context) {
	var req addRelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// 关联已有成员时不需要新成员表单
	if req.ExistingPersonID == "" && req.Form == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "form is required"})
		return
	}

	data, result, err := h.trees.AddRelationship(c.Param("id"), req.Relationship, req.Form, req.Details, req.ExistingPersonID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"tree":   data,
		"result": result,
	})
}

// EditPerson 编辑成员信息
func (h *TreeHandler) EditPerson(c *gin.Context) {
	var req editPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	data, err := h.trees.EditPerson(c.Param("id"), &req.Form, &req.Details)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondTree(c, http.StatusOK, data)
}

// DeletePerson 删除成员
func (h *TreeHandler) DeletePerson(c *gin.Context) {
	data, err := h.trees.DeletePerson(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondTree(c, http.StatusOK, data)
}

// Search 按关键词检索成员
func (h *TreeHandler) Search(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"results": h.trees.Search(c.Query("q"))})
}

// Birthdays 列出指定月份过生日的在世成员，缺省为当前月份
func (h *TreeHandler) Birthdays(c *gin.Context) {
	month := time.Now().Month()
	if raw := c.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be between 1 and 12"})
			return
		}
		month = time.Month(parsed)
	}
	c.JSON(http.StatusOK, gin.H{"results": h.trees.Birthdays(month)})
}

// Connections 返回成员的直接关联集合
func (h *TreeHandler) Connections(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ids": h.trees.Connections(c.Param("id"))})
}

// PushRoot 下钻到指定成员
func (h *TreeHandler) PushRoot(c *gin.Context) {
	var req pushRootRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	data, err := h.trees.PushRoot(req.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondTree(c, http.StatusOK, data)
}

// PopRoot 返回上一级显示根
func (h *TreeHandler) PopRoot(c *gin.Context) {
	h.respondTree(c, http.StatusOK, h.trees.PopRoot())
}

// ResetHome 回到创始人视角
func (h *TreeHandler) ResetHome(c *gin.Context) {
	data, err := h.trees.ResetRootHome()
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondTree(c, http.StatusOK, data)
}

// Statistics 返回统计汇总
func (h *TreeHandler) Statistics(c *gin.Context) {
	c.JSON(http.StatusOK, h.trees.Statistics())
}

// Generations 返回代际映射
func (h *TreeHandler) Generations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"generations": h.trees.Generations()})
}

// FamilyUnit 返回连线两端对应的核心家庭集合
func (h *TreeHandler) FamilyUnit(c *gin.Context) {
	a, b := c.Query("a"), c.Query("b")
	if a == "" || b == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameters a and b are required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ids": h.trees.FamilyUnit(a, b)})
}
