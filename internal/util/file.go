package util

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
)

// ValidateMimeType 深度校验文件 MIME 类型
// allowedTypes: 允许的 MIME 前缀或完整类型，如 "audio/", "application/pdf"
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, errors.New("invalid file type: " + mimeType)
}

// Ext 返回小写的文件扩展名
func Ext(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// HasAllowedExtension 判断文件扩展名是否在白名单中
func HasAllowedExtension(filename string, allowed []string) bool {
	ext := Ext(filename)
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

// IsAudio 检测是否为音频（浏览器录音常以 video/webm 上报）
func IsAudio(mimeType string) bool {
	return strings.HasPrefix(mimeType, MimeAudio) || mimeType == MimeVideoWebm
}
