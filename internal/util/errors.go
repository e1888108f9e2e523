package util

import (
	"errors"
	"fmt"
)

// 输入校验类错误
var (
	ErrValidation         = errors.New("validation failed")
	ErrNoVoiceDetected    = fmt.Errorf("%w: no voice detected, please speak before stopping recording", ErrValidation)
	ErrUnsupportedFormat  = fmt.Errorf("%w: unsupported file format", ErrValidation)
	ErrTestStopped        = fmt.Errorf("%w: test already stopped", ErrValidation)
	ErrEmptyAnswer        = fmt.Errorf("%w: answer must not be empty", ErrValidation)
	ErrEmailRegistered    = fmt.Errorf("%w: email already exists", ErrValidation)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrValidation)
)

// 权限类错误
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrUnauthorizedTest = fmt.Errorf("%w: unauthorized test access", ErrPermissionDenied)
	ErrUnauthorizedSess = fmt.Errorf("%w: unauthorized session access", ErrPermissionDenied)
)

// 资源不存在
var (
	ErrNotFound         = errors.New("not found")
	ErrUserNotFound     = fmt.Errorf("%w: user", ErrNotFound)
	ErrTestNotFound     = fmt.Errorf("%w: test", ErrNotFound)
	ErrQuestionNotFound = fmt.Errorf("%w: question", ErrNotFound)
	ErrSessionNotFound  = fmt.Errorf("%w: session", ErrNotFound)
)

// 外部服务（AI、语音识别、对象存储）失败
var ErrUpstreamFailure = errors.New("upstream failure")

// Upstream 将外部调用错误包装为 ErrUpstreamFailure
func Upstream(operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %v", ErrUpstreamFailure, operation, err)
}

func IsValidation(err error) bool    { return errors.Is(err, ErrValidation) }
func IsAuthorization(err error) bool { return errors.Is(err, ErrPermissionDenied) }
func IsNotFound(err error) bool      { return errors.Is(err, ErrNotFound) }
func IsUpstream(err error) bool      { return errors.Is(err, ErrUpstreamFailure) }
