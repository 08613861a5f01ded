package domain

import "time"

type CategoryId = int64

type Category struct {
	Id              CategoryId
	Name            string
	Slug            string
	Description     string
	Color           string
	MetaDescription string
	CreatedAt       time.Time
}

type CategoryDraftData struct {
	Name            string
	Description     string
	Color           string
	MetaDescription string
}
