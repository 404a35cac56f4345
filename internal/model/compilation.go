package model

// Compilation 精選活動合輯
type Compilation struct {
	ID     int64  `json:"id" db:"id"`
	Title  string `json:"title" db:"title"`
	Pinned bool   `json:"pinned" db:"pinned"`

	Events []*Event `json:"events" db:"-"`
}

// UpdateCompilationParams 部分更新參數。EventIDs 非 nil 時整批取代合輯成員。
type UpdateCompilationParams struct {
	Title    *string
	Pinned   *bool
	EventIDs *[]int64
}

// CompilationResponse 合輯回應
type CompilationResponse struct {
	ID     int64                `json:"id"`
	Pinned bool                 `json:"pinned"`
	Title  string               `json:"title"`
	Events []EventShortResponse `json:"events"`
}
