package controller

import (
	"fmt"
	"interviewai_backend/internal/service"
	"interviewai_backend/internal/util"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ProfileController 个人统计、练习题库与导出
type ProfileController struct {
	AnalyticsService *service.AnalyticsService
	InterviewService *service.InterviewService
	ExportService    *service.ExportService
}

func NewProfileController(analytics *service.AnalyticsService, interview *service.InterviewService, export *service.ExportService) *ProfileController {
	return &ProfileController{
		AnalyticsService: analytics,
		InterviewService: interview,
		ExportService:    export,
	}
}

// Summary godoc
// @Summary 作答汇总
// @Tags 个人
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.Summary}
// @Router /api/profile/summary [get]
func (c *ProfileController) Summary(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	data, err := c.AnalyticsService.Summary(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, data)
}

// Progress godoc
// @Summary 得分趋势
// @Tags 个人
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.ProgressPoint}
// @Router /api/profile/progress [get]
func (c *ProfileController) Progress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	data, err := c.AnalyticsService.Progress(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, data)
}

// Accuracy godoc
// @Summary 正确率
// @Tags 个人
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.Accuracy}
// @Router /api/profile/accuracy [get]
func (c *ProfileController) Accuracy(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	data, err := c.AnalyticsService.Accuracy(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, data)
}

// TopicAnalysis godoc
// @Summary 按主题统计
// @Tags 个人
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.TopicAnalysis}
// @Router /api/profile/topic-analysis [get]
func (c *ProfileController) TopicAnalysis(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	data, err := c.AnalyticsService.TopicAnalysis(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, data)
}

// TopicDetails godoc
// @Summary 主题作答明细
// @Description 不区分用户
// @Tags 个人
// @Produce json
// @Security ApiKeyAuth
// @Param topic path string true "主题"
// @Success 200 {object} util.Response{data=[]model.TopicDetail}
// @Router /api/profile/topic-details/{topic} [get]
func (c *ProfileController) TopicDetails(ctx *gin.Context) {
	data, err := c.AnalyticsService.TopicDetails(ctx.Request.Context(), ctx.Param("topic"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, data)
}

// SkillBreakdown godoc
// @Summary 语音分项得分
// @Description 不区分用户
// @Tags 个人
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.SkillBreakdown}
// @Router /api/profile/skill-breakdown [get]
func (c *ProfileController) SkillBreakdown(ctx *gin.Context) {
	data, err := c.AnalyticsService.SkillBreakdown(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, data)
}

// TopicTests godoc
// @Summary 主题下的测试分组
// @Tags 个人
// @Produce json
// @Security ApiKeyAuth
// @Param topic path string true "主题"
// @Success 200 {object} util.Response{data=[]model.TopicTestGroup}
// @Router /api/profile/topic-tests/{topic} [get]
func (c *ProfileController) TopicTests(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	data, err := c.AnalyticsService.TopicTests(ctx.Request.Context(), user.UserID, ctx.Param("topic"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, data)
}

// PracticeLibrary godoc
// @Summary 练习题库
// @Tags 个人
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.PracticeItem}
// @Router /api/profile/practice-library [get]
func (c *ProfileController) PracticeLibrary(ctx *gin.Context) {
	data, err := c.InterviewService.PracticeLibrary(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, data)
}

// QuestionsByTopic godoc
// @Summary 按主题检索题目
// @Tags 个人
// @Produce json
// @Security ApiKeyAuth
// @Param topic path string true "主题关键字"
// @Success 200 {object} util.Response{data=[]model.PracticeItem}
// @Router /api/profile/questions/{topic} [get]
func (c *ProfileController) QuestionsByTopic(ctx *gin.Context) {
	data, err := c.InterviewService.QuestionsByTopic(ctx.Request.Context(), ctx.Param("topic"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, data)
}

// Export godoc
// @Summary 导出作答历史
// @Tags 个人
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Success 200 {file} file
// @Router /api/profile/export [get]
func (c *ProfileController) Export(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	buf, err := c.ExportService.AttemptsWorkbook(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	filename := fmt.Sprintf("interview-attempts-%s.xlsx", time.Now().Format("20060102"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, util.MimeXLSX, buf.Bytes())
}
