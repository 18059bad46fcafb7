package cache

import (
	"sort"
	"strings"
)

// QueryKey 查询缓存键：资源族 + 序列化后的查询参数
// 同一资源族的所有键共享前缀，变更后按前缀整族失效
type QueryKey struct {
	Resource string
	Params   map[string]string
}

// String 生成确定性的键串，参数按名称排序
func (k QueryKey) String() string {
	var b strings.Builder
	b.WriteString(k.Resource)
	b.WriteString("|")

	names := make([]string, 0, len(k.Params))
	for name := range k.Params {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		if i > 0 {
			b.WriteString("&")
		}
		b.WriteString(name)
		b.WriteString("=")
		b.WriteString(k.Params[name])
	}
	return b.String()
}

// FamilyPrefix 返回资源族的键前缀
func FamilyPrefix(resource string) string {
	return resource + "|"
}
