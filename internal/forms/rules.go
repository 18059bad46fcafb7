package forms

import (
	"strings"

	"github.com/spf13/cast"
)

// Values 表单字段值，宽类型存储，读取时做收敛
type Values map[string]interface{}

// Str 读取字符串字段，返回前去掉首尾空白
func (v Values) Str(field string) string {
	return strings.TrimSpace(cast.ToString(v[field]))
}

// Bool 读取布尔字段
func (v Values) Bool(field string) bool {
	return cast.ToBool(v[field])
}

// Int 读取整数字段
func (v Values) Int(field string) int {
	return cast.ToInt(v[field])
}

// Set 写入字段值
func (v Values) Set(field string, value interface{}) {
	v[field] = value
}

// Clone 复制一份表单值
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Rule 一条校验规则：字段、谓词、失败文案
// Check 返回 true 表示通过。创建和编辑共用同一组规则
type Rule struct {
	Field   string
	Message string
	Check   func(v Values) bool
}

// ValidationError 客户端校验失败
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate 依次执行规则，返回第一条失败
func Validate(v Values, rules []Rule) error {
	for _, r := range rules {
		if !r.Check(v) {
			return &ValidationError{Field: r.Field, Message: r.Message}
		}
	}
	return nil
}

// Required 字段必填（去空白后非空）
func Required(field, message string) Rule {
	return Rule{Field: field, Message: message, Check: func(v Values) bool {
		return v.Str(field) != ""
	}}
}

// RequiredIf 当开关字段为 true 时 field 必填，跨字段规则
func RequiredIf(flag, field, message string) Rule {
	return Rule{Field: field, Message: message, Check: func(v Values) bool {
		if !v.Bool(flag) {
			return true
		}
		return v.Str(field) != ""
	}}
}

// MinInt 整数字段下界
func MinInt(field string, min int, message string) Rule {
	return Rule{Field: field, Message: message, Check: func(v Values) bool {
		return v.Int(field) >= min
	}}
}

// OneOf 枚举字段取值限制
func OneOf(field string, allowed []string, message string) Rule {
	return Rule{Field: field, Message: message, Check: func(v Values) bool {
		val := v.Str(field)
		for _, a := range allowed {
			if val == a {
				return true
			}
		}
		return false
	}}
}
