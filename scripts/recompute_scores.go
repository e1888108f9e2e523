// 手动重算已结束测试的最终得分
//
// 评分规则调整或手工修正作答数据后使用，只更新 final_score 与 total_time_seconds。
//
// 用法: go run scripts/recompute_scores.go [-config configs] [-dry-run]

package main

import (
	"context"
	"flag"
	"interviewai_backend/internal/config"
	"interviewai_backend/internal/repository"
	"interviewai_backend/internal/service"
	"interviewai_backend/pkg/database"
	"interviewai_backend/pkg/logger"
	"log"
	"time"

	"go.uber.org/zap"
)

func main() {
	configDir := flag.String("config", "configs", "配置文件目录")
	dryRun := flag.Bool("dry-run", false, "只统计已结束测试数量")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	tests := repository.NewInterviewTestRepository(db)
	factory := service.NewAttemptFactory(time.Now)
	// 重算不调用 AI
	svc := service.NewTestService(tests, service.NewEvaluationService(nil), factory, service.NewMemoryLocker())

	ctx := context.Background()
	ids, err := tests.FindStoppedIDs(ctx)
	if err != nil {
		log.Fatalf("查询测试失败: %v", err)
	}
	log.Printf("已结束测试: %d", len(ids))
	if *dryRun {
		return
	}

	updated := 0
	for _, id := range ids {
		changed, err := svc.Recompute(ctx, id)
		if err != nil {
			logger.Log.Error("Recompute failed", zap.String("testId", id), zap.Error(err))
			continue
		}
		if changed {
			updated++
		}
	}
	log.Printf("完成！更新 %d 个测试", updated)
}
