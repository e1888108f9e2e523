package app

import (
	"interviewai_backend/docs"
	"interviewai_backend/internal/middleware"
	"interviewai_backend/internal/util"
	"interviewai_backend/pkg/monitoring"
	"interviewai_backend/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	api.Use(middleware.ConfigMiddleware(a.Config))

	// 公共路由
	api.GET("/health", c.health.HealthCheck)
	auth := api.Group("/auth")
	{
		auth.POST("/register", c.auth.Register)
		auth.POST("/login", c.auth.Login)
		auth.POST("/logout", c.auth.Logout)
		auth.GET("/me", middleware.AuthMiddleware(), c.auth.Me)
	}

	authorized := api.Group("")
	authorized.Use(middleware.AuthMiddleware())
	{
		a.registerTestRoutes(authorized, c)
		a.registerInterviewRoutes(authorized, c)
		a.registerProfileRoutes(authorized, c)

		authorized.POST("/ats/analyze", security.MaxBodySize(util.MaxResumeBytes+1<<20), c.ats.Analyze)
	}
}

func (a *App) registerTestRoutes(group *gin.RouterGroup, c *controllers) {
	test := group.Group("/test")
	{
		test.POST("/start", c.test.Start)
		test.POST("/answer", c.test.SubmitAnswer)
		test.POST("/stop/:testId", c.test.Stop)
		test.GET("/mine", c.test.Mine)
		test.GET("/:testId", c.test.Get)
	}
}

func (a *App) registerInterviewRoutes(group *gin.RouterGroup, c *controllers) {
	interview := group.Group("/interview")
	{
		interview.POST("/start", c.interview.StartSession)
		interview.POST("/answer", c.interview.SubmitAnswer)
		interview.POST("/voice", security.MaxBodySize(util.MaxAudioBytes+1<<20), c.interview.SubmitVoice)
	}
}

func (a *App) registerProfileRoutes(group *gin.RouterGroup, c *controllers) {
	profile := group.Group("/profile")
	{
		profile.GET("/summary", c.profile.Summary)
		profile.GET("/progress", c.profile.Progress)
		profile.GET("/accuracy", c.profile.Accuracy)
		profile.GET("/topic-analysis", c.profile.TopicAnalysis)
		profile.GET("/topic-details/:topic", c.profile.TopicDetails)
		profile.GET("/skill-breakdown", c.profile.SkillBreakdown)
		profile.GET("/topic-tests/:topic", c.profile.TopicTests)
		profile.GET("/practice-library", c.profile.PracticeLibrary)
		profile.GET("/questions/:topic", c.profile.QuestionsByTopic)
		profile.GET("/export", c.profile.Export)
	}
}
