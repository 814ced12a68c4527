package controllers

import (
	"testing"
	"time"

	"barnearbeid/models"
)

func testJobs() []models.Job {
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	return []models.Job{
		{
			ID:            1,
			Title:         "Hagearbeid i Frogner",
			Description:   "Klippe gress og fjerne ugress",
			Categories:    models.CategoryList{"grass-cutting", "weed-removal"},
			Price:         250,
			ProviderName:  "Ola Nordmann",
			AverageRating: 4.5,
			CreatedAt:     base,
		},
		{
			ID:            2,
			Title:         "Husarbeid",
			Description:   "Vaske vinduer og rydde",
			Categories:    models.CategoryList{"window-washing", "organizing"},
			Price:         180,
			ProviderName:  "Kari Hansen",
			AverageRating: 3.8,
			CreatedAt:     base.Add(time.Hour),
		},
		{
			ID:            3,
			Title:         "Snømåking",
			Description:   "Måke innkjørselen",
			Categories:    models.CategoryList{"snow-shoveling"},
			Price:         300,
			ProviderName:  "Hage og Hjem AS",
			AverageRating: 5.0,
			CreatedAt:     base.Add(2 * time.Hour),
		},
	}
}

func jobIDs(jobs []models.Job) []uint {
	out := make([]uint, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func equalJobIDs(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterJobs(t *testing.T) {
	jobs := testJobs()

	tests := []struct {
		name     string
		search   string
		category string
		want     []uint
	}{
		{"no filters", "", "", []uint{1, 2, 3}},
		{"search matches title", "hage", "", []uint{1, 3}}, // title hit and provider-name hit
		{"search matches description", "vinduer", "", []uint{2}},
		{"search is case-insensitive", "SNØMÅKING", "", []uint{3}},
		{"search misses", "bilvask", "", nil},
		{"category filter", "", "grass-cutting", []uint{1}},
		{"category all is a no-op", "", "all", []uint{1, 2, 3}},
		{"search and category combined", "hage", "snow-shoveling", []uint{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterJobs(jobs, tt.search, tt.category)
			if !equalJobIDs(jobIDs(got), tt.want) {
				t.Fatalf("filterJobs(%q, %q) = %v, want %v", tt.search, tt.category, jobIDs(got), tt.want)
			}
		})
	}
}

func TestSortJobs(t *testing.T) {
	tests := []struct {
		name   string
		sortBy string
		want   []uint
	}{
		{"rating descending", "rating", []uint{3, 1, 2}},
		{"price ascending", "price-low", []uint{2, 1, 3}},
		{"price descending", "price-high", []uint{3, 1, 2}},
		{"default is newest first", "", []uint{3, 2, 1}},
		{"unknown key falls back to newest first", "bogus", []uint{3, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs := testJobs()
			sortJobs(jobs, tt.sortBy)
			if !equalJobIDs(jobIDs(jobs), tt.want) {
				t.Fatalf("sortJobs(%q) = %v, want %v", tt.sortBy, jobIDs(jobs), tt.want)
			}
		})
	}
}

func TestPaginateJobs(t *testing.T) {
	jobs := make([]models.Job, 25)
	for i := range jobs {
		jobs[i].ID = uint(i + 1)
	}

	tests := []struct {
		name           string
		page, limit    int
		wantLen        int
		wantFirstID    uint
		wantTotalPages int
	}{
		{"first page", 1, 12, 12, 1, 3},
		{"second page", 2, 12, 12, 13, 3},
		{"last partial page", 3, 12, 1, 25, 3},
		{"past the end", 4, 12, 0, 0, 3},
		{"zero page treated as first", 0, 12, 12, 1, 3},
		{"zero limit gets the default", 1, 0, 12, 1, 3},
		{"custom limit", 2, 10, 10, 11, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, totalPages := paginateJobs(jobs, tt.page, tt.limit)
			if len(page) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(page), tt.wantLen)
			}
			if tt.wantLen > 0 && page[0].ID != tt.wantFirstID {
				t.Fatalf("first id = %d, want %d", page[0].ID, tt.wantFirstID)
			}
			if totalPages != tt.wantTotalPages {
				t.Fatalf("totalPages = %d, want %d", totalPages, tt.wantTotalPages)
			}
		})
	}
}

func TestPaginateJobsEmpty(t *testing.T) {
	page, totalPages := paginateJobs(nil, 1, 12)
	if len(page) != 0 || totalPages != 0 {
		t.Fatalf("got len %d, totalPages %d, want 0 and 0", len(page), totalPages)
	}
}
