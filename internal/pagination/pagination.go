package pagination

// Page описывает одну страницу элементов.
type Page[T any] struct {
	Items    []T // элементы на текущей странице
	Page     int // номер страницы (с 1)
	PageSize int
	HasNext  bool
	HasPrev  bool
	Total    int // общее количество элементов
}

// DefaultPageSize используется, когда размер не задан.
const DefaultPageSize = 20

// Paginate возвращает срез items для указанной страницы и метаданные.
// page нумеруется с 1; pageSize <= 0 означает defaultSize (или
// DefaultPageSize, если и он не задан). Страница за пределами данных пустая.
func Paginate[T any](items []T, page, pageSize, defaultSize int) Page[T] {
	total := len(items)

	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	if pageSize <= 0 {
		pageSize = defaultSize
	}
	if page <= 0 {
		page = 1
	}

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}

	end := start + pageSize
	if end > total {
		end = total
	}

	return Page[T]{
		Items:    items[start:end],
		Page:     page,
		PageSize: pageSize,
		HasNext:  end < total,
		HasPrev:  page > 1,
		Total:    total,
	}
}
