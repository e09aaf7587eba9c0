package listing

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	// Верхняя граница page_size: один запрос не тянет больше 101 строки.
	MaxPageSize = 100
)

// Page — результат выборки с лимитом FetchLimit(PageSize). Общего числа строк
// нет: HasNext выставляется, если база вернула лишнюю строку сверх PageSize,
// и эта строка в Items не попадает. HasPrev означает лишь Page > 1.
type Page[T any] struct {
	Items    []T
	Page     int
	PageSize int
	HasNext  bool
	HasPrev  bool
}

// Offset — смещение первой строки страницы; page нумеруется с 1.
func Offset(page, pageSize int) int {
	if page <= 0 {
		page = DefaultPage
	}
	return (page - 1) * pageSize
}

// FetchLimit — сколько строк запрашивать из БД: на одну больше размера
// страницы, чтобы узнать, есть ли следующая.
func FetchLimit(pageSize int) int {
	return pageSize + 1
}

// NewPage собирает страницу из строк, выбранных с лимитом FetchLimit(pageSize).
// Лишняя строка отбрасывается и превращается в признак HasNext.
func NewPage[T any](rows []T, page, pageSize int) Page[T] {
	if page <= 0 {
		page = DefaultPage
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	hasNext := len(rows) > pageSize
	if hasNext {
		rows = rows[:pageSize]
	}
	if rows == nil {
		rows = []T{}
	}

	return Page[T]{
		Items:    rows,
		Page:     page,
		PageSize: pageSize,
		HasNext:  hasNext,
		HasPrev:  page > 1,
	}
}
