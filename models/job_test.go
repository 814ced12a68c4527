package models

import (
	"encoding/json"
	"testing"
)

func TestCategoryListUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    CategoryList
		wantErr bool
	}{
		{"array", `["grass-cutting", "weed-removal"]`, CategoryList{"grass-cutting", "weed-removal"}, false},
		{"legacy single string", `"grass-cutting"`, CategoryList{"grass-cutting"}, false},
		{"empty string", `""`, CategoryList{}, false},
		{"empty array", `[]`, CategoryList{}, false},
		{"number", `42`, nil, true},
		{"object", `{"a": 1}`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got CategoryList
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestCategoryListScan(t *testing.T) {
	var c CategoryList
	if err := c.Scan([]byte(`["painting"]`)); err != nil {
		t.Fatalf("Scan bytes: %v", err)
	}
	if !c.Contains("painting") {
		t.Fatalf("got %v, want painting", c)
	}

	if err := c.Scan(`"repair"`); err != nil {
		t.Fatalf("Scan string: %v", err)
	}
	if !c.Contains("repair") {
		t.Fatalf("got %v, want repair", c)
	}

	if err := c.Scan(nil); err != nil {
		t.Fatalf("Scan nil: %v", err)
	}
	if len(c) != 0 {
		t.Fatalf("got %v, want empty", c)
	}

	if err := c.Scan(123); err == nil {
		t.Fatal("expected error for unsupported type")
	}
}

func TestCategoryName(t *testing.T) {
	if got := CategoryName("grass-cutting"); got != "Klippe gress" {
		t.Fatalf("CategoryName(grass-cutting) = %q", got)
	}
	if got := CategoryName("does-not-exist"); got != "Annet" {
		t.Fatalf("CategoryName(unknown) = %q, want Annet", got)
	}
}

func TestValidateAge(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
	}{
		{"seeker at lower bound", User{UserType: UserTypeSeeker, Age: 13}, false},
		{"seeker at upper bound", User{UserType: UserTypeSeeker, Age: 25}, false},
		{"seeker too young", User{UserType: UserTypeSeeker, Age: 12}, true},
		{"seeker too old", User{UserType: UserTypeSeeker, Age: 26}, true},
		{"poster has no upper bound", User{UserType: UserTypePoster, Age: 70}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.ValidateAge()
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
