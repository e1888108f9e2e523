package controller

import (
	"interviewai_backend/internal/service"
	"interviewai_backend/internal/util"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
)

type InterviewController struct {
	InterviewService *service.InterviewService
}

func NewInterviewController(interviewService *service.InterviewService) *InterviewController {
	return &InterviewController{InterviewService: interviewService}
}

// swagger:model StartSessionRequest
type StartSessionRequest struct {
	Topic      string `json:"topic" binding:"required"`
	Difficulty string `json:"difficulty"`
}

// swagger:model SubmitAnswerRequest
type SubmitAnswerRequest struct {
	QuestionID       string `json:"questionId" binding:"required"`
	Answer           string `json:"answer"`
	TestID           string `json:"testId"`
	QuestionNumber   int    `json:"questionNumber"`
	TimeTakenSeconds *int64 `json:"timeTakenSeconds"`
}

// StartSession godoc
// @Summary 开始单题练习
// @Description 生成一道题目及参考答案
// @Tags 面试
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body StartSessionRequest true "主题与难度"
// @Success 201 {object} util.Response{data=service.StartSessionResult}
// @Failure 502 {object} util.Response "AI 服务不可用"
// @Router /api/interview/start [post]
func (c *InterviewController) StartSession(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = "medium"
	}

	res, err := c.InterviewService.StartSession(ctx.Request.Context(), req.Topic, req.Difficulty, user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, res)
}

// SubmitAnswer godoc
// @Summary 提交文本答案
// @Tags 面试
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body SubmitAnswerRequest true "作答"
// @Success 200 {object} util.Response{data=service.TextEvaluation}
// @Failure 403 {object} util.Response "非会话所有者"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/interview/answer [post]
func (c *InterviewController) SubmitAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	eval, err := c.InterviewService.SubmitAnswer(ctx.Request.Context(), service.SubmitAnswerInput{
		QuestionID:       req.QuestionID,
		Answer:           req.Answer,
		TestID:           req.TestID,
		QuestionNumber:   req.QuestionNumber,
		TimeTakenSeconds: req.TimeTakenSeconds,
	}, user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, eval)
}

// SubmitVoice godoc
// @Summary 提交语音答案
// @Description 上传录音，转写后评分
// @Tags 面试
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "录音文件"
// @Param questionId formData string true "题目ID"
// @Param testId formData string false "测试ID"
// @Param questionNumber formData int false "题号"
// @Success 200 {object} util.Response{data=service.VoiceResult}
// @Failure 400 {object} util.Response "未检测到语音或文件无效"
// @Failure 502 {object} util.Response "语音识别失败"
// @Router /api/interview/voice [post]
func (c *InterviewController) SubmitVoice(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	questionID := ctx.PostForm("questionId")
	if questionID == "" {
		util.BadRequest(ctx, "questionId is required")
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "audio file is required")
		return
	}
	if fileHeader.Size > util.MaxAudioBytes {
		util.BadRequest(ctx, "audio file too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	detected, _ := util.ValidateMimeType(file, []string{util.MimeAudio, util.MimeVideoWebm})
	if !util.IsAudio(detected) && !util.HasAllowedExtension(fileHeader.Filename, util.AllowedAudioExtensions) {
		util.HandleError(ctx, util.ErrUnsupportedFormat)
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	audio, err := service.ReadAudio(file)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = detected
	}
	questionNumber, _ := strconv.Atoi(ctx.PostForm("questionNumber"))

	result, err := c.InterviewService.SubmitVoice(ctx.Request.Context(), service.SubmitVoiceInput{
		QuestionID:     questionID,
		TestID:         ctx.PostForm("testId"),
		QuestionNumber: questionNumber,
		Audio:          audio,
		Filename:       fileHeader.Filename,
		ContentType:    contentType,
	}, user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
