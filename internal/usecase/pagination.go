package usecase

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// pageWindow converts 1-based page/pageSize into a limit/offset pair with
// sane bounds.
func pageWindow(page, pageSize int) (limit, offset int) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	return pageSize, (page - 1) * pageSize
}
