package controller

import (
	"interviewai_backend/internal/service"
	"interviewai_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

type TestController struct {
	TestService *service.TestService
}

func NewTestController(testService *service.TestService) *TestController {
	return &TestController{TestService: testService}
}

// SubmitTestAnswerRequest 同时支持表单与 JSON
// swagger:model SubmitTestAnswerRequest
type SubmitTestAnswerRequest struct {
	TestID           string `form:"testId" json:"testId" binding:"required"`
	QuestionText     string `form:"questionText" json:"questionText" binding:"required"`
	Answer           string `form:"answer" json:"answer"`
	TimeTakenSeconds *int64 `form:"timeTakenSeconds" json:"timeTakenSeconds"`
	QuestionNumber   int    `form:"questionNumber" json:"questionNumber"`
}

// Start godoc
// @Summary 开始测试
// @Description 创建一场进行中的测试
// @Tags 测试
// @Produce json
// @Security ApiKeyAuth
// @Param topic query string true "主题"
// @Param difficulty query string false "难度" default(medium)
// @Success 201 {object} util.Response{data=model.InterviewTest}
// @Failure 400 {object} util.Response
// @Router /api/test/start [post]
func (c *TestController) Start(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	topic := strings.TrimSpace(ctx.Query("topic"))
	if topic == "" {
		util.BadRequest(ctx, "topic is required")
		return
	}

	test, err := c.TestService.Start(ctx.Request.Context(), topic, ctx.DefaultQuery("difficulty", "medium"), user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, test)
}

// SubmitAnswer godoc
// @Summary 提交测试答案
// @Description 文本作答评分后追加到测试
// @Tags 测试
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Security ApiKeyAuth
// @Param body body SubmitTestAnswerRequest true "作答"
// @Success 200 {object} util.Response{data=service.TextEvaluation}
// @Failure 400 {object} util.Response "参数错误或测试已结束"
// @Failure 403 {object} util.Response "非测试所有者"
// @Failure 404 {object} util.Response "测试不存在"
// @Router /api/test/answer [post]
func (c *TestController) SubmitAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitTestAnswerRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	eval, err := c.TestService.SubmitAnswer(ctx.Request.Context(), service.SubmitTestAnswerInput{
		TestID:           req.TestID,
		QuestionText:     req.QuestionText,
		Answer:           req.Answer,
		TimeTakenSeconds: req.TimeTakenSeconds,
		QuestionNumber:   req.QuestionNumber,
	}, user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, eval)
}

// Stop godoc
// @Summary 结束测试
// @Description 计算最终得分并关闭测试，重复调用按当前作答重新计算
// @Tags 测试
// @Produce json
// @Security ApiKeyAuth
// @Param testId path string true "测试ID"
// @Success 200 {object} util.Response{data=model.StopResult}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/test/stop/{testId} [post]
func (c *TestController) Stop(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.TestService.Stop(ctx.Request.Context(), ctx.Param("testId"), user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Get godoc
// @Summary 测试详情
// @Tags 测试
// @Produce json
// @Security ApiKeyAuth
// @Param testId path string true "测试ID"
// @Success 200 {object} util.Response{data=model.InterviewTest}
// @Router /api/test/{testId} [get]
func (c *TestController) Get(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	test, err := c.TestService.Get(ctx.Request.Context(), ctx.Param("testId"), user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, test)
}

// Mine godoc
// @Summary 我的测试
// @Tags 测试
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.InterviewTest}
// @Router /api/test/mine [get]
func (c *TestController) Mine(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	tests, err := c.TestService.ListMine(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, tests)
}
