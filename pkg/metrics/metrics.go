package metrics

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registry = prometheus.NewRegistry()

	// APIRequests 上游 API 请求计数，按方法/资源/结果分类
	APIRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pbxadmin_api_requests_total",
		Help: "Upstream API requests by method, resource and outcome.",
	}, []string{"method", "resource", "outcome"})

	// CacheHits 查询缓存命中次数
	CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pbxadmin_cache_hits_total",
		Help: "Query cache hits.",
	})

	// CacheMisses 查询缓存未命中次数
	CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pbxadmin_cache_misses_total",
		Help: "Query cache misses.",
	})
)

func init() {
	registry.MustRegister(APIRequests, CacheHits, CacheMisses)
}

// Dump 把当前计数写出（pbxadmin stats 命令使用）
func Dump(w io.Writer) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			if _, err := fmt.Fprintf(w, "%s %v\n", name, m.GetCounter().GetValue()); err != nil {
				return err
			}
		}
	}
	return nil
}
