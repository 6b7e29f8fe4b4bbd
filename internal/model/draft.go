package model

type Draft struct {
	Content string `json:"content"`
	Mtime   int64  `json:"mtime"`
}
