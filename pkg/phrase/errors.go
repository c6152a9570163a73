package phrase

import (
	"errors"
	"fmt"
	"strings"
)

// 哨兵错误，配合 errors.Is 使用。
var (
	ErrSyntax      = errors.New("phrase: syntax error")
	ErrUnknownKey  = errors.New("phrase: unknown key")
	ErrNilValue    = errors.New("phrase: nil value")
	ErrMissingKeys = errors.New("phrase: missing keys")
	ErrNilTarget   = errors.New("phrase: target must not be nil")
	ErrNilPattern  = errors.New("phrase: pattern must not be nil")
)

// SyntaxError 描述模式串中的语法错误。
type SyntaxError struct {
	// Offset 是出错字符的字节偏移。
	Offset int
	// Char 是出错字符，到达输入末尾时为 eof。
	Char rune
	Msg  string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return "phrase: " + e.Msg
}

// Is 使 errors.Is(err, ErrSyntax) 成立。
func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }

// UnknownKeyError 在绑定模式串中不存在的 key 时返回。
type UnknownKeyError struct {
	Key string
}

// Error implements the error interface.
func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("phrase: invalid key: %s", e.Key)
}

// Is 使 errors.Is(err, ErrUnknownKey) 成立。
func (e *UnknownKeyError) Is(target error) bool { return target == ErrUnknownKey }

// NilValueError 在绑定 nil 值时返回。
type NilValueError struct {
	Key string
}

// Error implements the error interface.
func (e *NilValueError) Error() string {
	return fmt.Sprintf("phrase: nil value for '%s'", e.Key)
}

// Is 使 errors.Is(err, ErrNilValue) 成立。
func (e *NilValueError) Is(target error) bool { return target == ErrNilValue }

// MissingKeysError 在渲染时存在未绑定的 key 时返回。
type MissingKeysError struct {
	// Keys 是全部未绑定的 key，已排序。
	Keys []string
}

// Error implements the error interface.
func (e *MissingKeysError) Error() string {
	return fmt.Sprintf("phrase: missing keys: [%s]", strings.Join(e.Keys, ", "))
}

// Is 使 errors.Is(err, ErrMissingKeys) 成立。
func (e *MissingKeysError) Is(target error) bool { return target == ErrMissingKeys }
