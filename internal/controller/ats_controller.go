package controller

import (
	"interviewai_backend/internal/service"
	"interviewai_backend/internal/util"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
)

type AtsController struct {
	AtsService   *service.AtsService
	ResumeParser *service.ResumeParser
}

func NewAtsController(atsService *service.AtsService, parser *service.ResumeParser) *AtsController {
	return &AtsController{AtsService: atsService, ResumeParser: parser}
}

// Analyze godoc
// @Summary 简历匹配度分析
// @Description 提取简历与岗位描述中的技能并计算匹配分
// @Tags ATS
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param resume formData file true "简历（pdf/docx）"
// @Param jobDescription formData string true "岗位描述"
// @Success 200 {object} util.Response{data=model.AtsResult}
// @Failure 400 {object} util.Response "文件格式不支持"
// @Router /api/ats/analyze [post]
func (c *AtsController) Analyze(ctx *gin.Context) {
	jobDescription := strings.TrimSpace(ctx.PostForm("jobDescription"))
	if jobDescription == "" {
		util.BadRequest(ctx, "jobDescription is required")
		return
	}

	fileHeader, err := ctx.FormFile("resume")
	if err != nil {
		util.BadRequest(ctx, "resume file is required")
		return
	}
	if fileHeader.Size > util.MaxResumeBytes {
		util.BadRequest(ctx, "resume file too large")
		return
	}
	if !util.HasAllowedExtension(fileHeader.Filename, util.AllowedResumeExtensions) {
		util.HandleError(ctx, util.ErrUnsupportedFormat)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, util.MaxResumeBytes))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	resumeText, err := c.ResumeParser.ExtractText(fileHeader.Filename, data)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	result, err := c.AtsService.Analyze(ctx.Request.Context(), resumeText, jobDescription)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
