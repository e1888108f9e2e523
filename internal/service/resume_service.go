package service

import (
	"bytes"
	"fmt"
	"interviewai_backend/internal/util"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/lu4p/cat/docxtxt"
)

// ResumeParser 提取简历纯文本，支持 .pdf 与 .docx
type ResumeParser struct{}

func NewResumeParser() *ResumeParser {
	return &ResumeParser{}
}

func (p *ResumeParser) ExtractText(filename string, data []byte) (string, error) {
	switch util.Ext(filename) {
	case ".pdf":
		return extractPDFText(data)
	case ".docx":
		return extractDocxText(data)
	default:
		return "", util.ErrUnsupportedFormat
	}
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrValidation, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrValidation, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

// extractDocxText 没有可读文本时视为无效文件
func extractDocxText(data []byte) (string, error) {
	text, err := docxtxt.BytesToStr(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrValidation, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: docx contains no text", util.ErrValidation)
	}
	return text, nil
}
