package api

type Report struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Filters     []string `json:"filters"`
}

type ReportFilters struct {
	Search  *string `json:"search,omitempty"`
	MinDays *int    `json:"min_days,omitempty"`
}

type ReportLinks struct {
	Self     string `json:"self"`
	Previous string `json:"previous,omitempty"`
	Next     string `json:"next,omitempty"`
}

type ReportPage struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Columns  []string      `json:"columns"`
	Rows     [][]string    `json:"rows"`
	Empty    bool          `json:"empty"`
	Filters  ReportFilters `json:"filters"`
	Links    ReportLinks   `json:"links"`
}

type Error struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}
