package service

import (
	"context"
	"fmt"
	"interviewai_backend/internal/config"
	"interviewai_backend/internal/util"
	"interviewai_backend/pkg/logger"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageProvider 录音文件存储，objectName 使用 / 分隔
type StorageProvider interface {
	UploadFile(ctx context.Context, objectName string, localPath string, contentType string) (string, error)
	Delete(ctx context.Context, objectName string) error
	GetURL(objectName string) string
}

// LocalStorageProvider 写入本地目录，由 /uploads 静态路由对外提供
type LocalStorageProvider struct {
	Root string
}

func (p *LocalStorageProvider) UploadFile(ctx context.Context, objectName string, localPath string, contentType string) (string, error) {
	dst, err := p.resolve(objectName)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}

	if err := copyFile(localPath, dst); err != nil {
		os.Remove(dst)
		return "", err
	}
	return p.GetURL(objectName), nil
}

func (p *LocalStorageProvider) Delete(ctx context.Context, objectName string) error {
	dst, err := p.resolve(objectName)
	if err != nil {
		return err
	}
	return os.Remove(dst)
}

func (p *LocalStorageProvider) GetURL(objectName string) string {
	return "/uploads/" + strings.TrimPrefix(path.Clean("/"+objectName), "/")
}

// resolve 拒绝跳出存储目录的对象名
func (p *LocalStorageProvider) resolve(objectName string) (string, error) {
	clean := path.Clean("/" + objectName)
	if clean == "/" {
		return "", fmt.Errorf("%w: empty object name", util.ErrValidation)
	}
	return filepath.Join(p.Root, filepath.FromSlash(clean)), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// MinioStorageProvider 上传到 MinIO 桶，启动时确保桶存在
type MinioStorageProvider struct {
	Client   *minio.Client
	Bucket   string
	Endpoint string
	Secure   bool
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioSecure,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}

	return &MinioStorageProvider{
		Client:   client,
		Bucket:   cfg.MinioBucket,
		Endpoint: cfg.MinioEndpoint,
		Secure:   cfg.MinioSecure,
	}, nil
}

func (p *MinioStorageProvider) UploadFile(ctx context.Context, objectName string, localPath string, contentType string) (string, error) {
	_, err := p.Client.FPutObject(ctx, p.Bucket, objectName, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", util.Upstream("minio upload", err)
	}
	return p.GetURL(objectName), nil
}

func (p *MinioStorageProvider) Delete(ctx context.Context, objectName string) error {
	if err := p.Client.RemoveObject(ctx, p.Bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return util.Upstream("minio delete", err)
	}
	return nil
}

func (p *MinioStorageProvider) GetURL(objectName string) string {
	scheme := "http"
	if p.Secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, p.Endpoint, p.Bucket, objectName)
}

// StorageService 按配置选择存储，MinIO 不可用时退回本地
type StorageService struct {
	Provider StorageProvider
}

func NewStorageService(cfg *config.Config) *StorageService {
	if cfg.Storage.Type == util.StorageMinio {
		p, err := NewMinioStorageProvider(&cfg.Storage)
		if err == nil {
			return &StorageService{Provider: p}
		}
		logger.Log.Warn("MinIO unavailable, falling back to local storage", zap.Error(err))
	}
	return &StorageService{Provider: &LocalStorageProvider{Root: cfg.Storage.LocalPath}}
}

func (s *StorageService) UploadFile(ctx context.Context, objectName string, localPath string, contentType string) (string, error) {
	return s.Provider.UploadFile(ctx, objectName, localPath, contentType)
}

func (s *StorageService) Delete(ctx context.Context, objectName string) error {
	return s.Provider.Delete(ctx, objectName)
}

func (s *StorageService) GetURL(objectName string) string {
	return s.Provider.GetURL(objectName)
}
