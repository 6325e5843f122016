package models

import (
	"strings"

	"gorm.io/gorm"
)

const (
	JobStatusOpen   = "open"
	JobStatusFilled = "filled"
)

// JobCategories is the fixed set of tags a job can be posted under.
var JobCategories = []string{
	"Gardening",
	"Domestic House Work",
	"Tiling",
	"Painting",
	"Cleaning",
	"Washing",
	"Roof Work",
	"Cabling",
	"Construction Site",
	"General",
}

// @description Job model
type Job struct {
	gorm.Model
	EmployerID      uint    `json:"employer_id" gorm:"index"`
	ReferenceNumber string  `json:"reference_number" gorm:"unique"`
	Category        string  `json:"category"`
	Description     string  `json:"description"`
	Location        string  `json:"location"`
	Date            string  `json:"date"`
	TimeFrom        string  `json:"time_from"`
	TimeTo          string  `json:"time_to"`
	Duration        float64 `json:"duration"`
	Payment         float64 `json:"payment"`
	Currency        string  `json:"currency" gorm:"default:ZAR"`
	Status          string  `json:"status" gorm:"default:open"`
}

func IsValidCategory(category string) bool {
	for _, c := range JobCategories {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

// JoinCategories flattens a tag list into the single comma-joined column
// the jobs table stores. Search matches tags back out by substring.
func JoinCategories(categories []string) string {
	return strings.Join(categories, ",")
}
