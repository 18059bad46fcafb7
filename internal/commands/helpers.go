package commands

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/code-100-precent/EchoPBX/internal/models"
)

// listOptions 列表类命令共用的分页/搜索/过滤/排序参数
type listOptions struct {
	page      int
	perPage   int
	search    string
	status    string
	sortBy    string
	sortOrder string
}

func addListFlags(cmd *cobra.Command, o *listOptions) {
	cmd.Flags().IntVar(&o.page, "page", 1, "page number")
	cmd.Flags().IntVar(&o.perPage, "per-page", 0, "items per page")
	cmd.Flags().StringVar(&o.search, "search", "", "search term")
	cmd.Flags().StringVar(&o.status, "status", "", "filter by status")
	cmd.Flags().StringVar(&o.sortBy, "sort-by", "", "sort field")
	cmd.Flags().StringVar(&o.sortOrder, "sort-order", "asc", "sort order (asc|desc)")
}

// lister 页面列表侧的设置入口，所有资源页都满足
type lister interface {
	SetPerPage(int)
	SetFilter(name, value string)
	SetSort(by, order string)
	SetSearch(term string)
	FlushSearch()
	SetPage(int)
}

// applyListOptions 把命令行参数灌进页面
// 搜索直接冲洗，命令行一次性执行不需要等防抖
func applyListOptions(l lister, o *listOptions) {
	if o.perPage > 0 {
		l.SetPerPage(o.perPage)
	}
	if o.status != "" {
		l.SetFilter("status", o.status)
	}
	if o.sortBy != "" {
		l.SetSort(o.sortBy, o.sortOrder)
	}
	if o.search != "" {
		l.SetSearch(o.search)
		l.FlushSearch()
	}
	if o.page > 1 {
		l.SetPage(o.page)
	}
}

// renderTable 表格输出
func renderTable(out io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}

// renderMeta 分页脚注
func renderMeta(out io.Writer, meta models.PageMeta) {
	fmt.Fprintf(out, "Page %d of %d (%d total)\n", meta.CurrentPage, meta.LastPage, meta.Total)
}

func boolMark(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
