package pagination

// 默认分页参数
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Params 分页参数（页码从1开始）
type Params struct {
	Page     int
	PageSize int
}

// New 创建并规范化分页参数
func New(page, pageSize int) Params {
	return Params{Page: page, PageSize: pageSize}.Normalize()
}

// Normalize 非法值回退为默认值，PageSize不超过MaxPageSize
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset 计算SQL OFFSET
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PageSize
}

// Limit 计算SQL LIMIT
func (p Params) Limit() int {
	return p.Normalize().PageSize
}
