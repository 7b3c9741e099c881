package response

// Envelope wraps every successful payload.
type Envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type PaginatedEnvelope struct {
	Success    bool       `json:"success"`
	Data       any        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

func OK(data any) Envelope {
	return Envelope{
		Success: true,
		Data:    data,
	}
}

func Paginated(data any, page, limit int, total int64) PaginatedEnvelope {
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}

	return PaginatedEnvelope{
		Success: true,
		Data:    data,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	}
}
