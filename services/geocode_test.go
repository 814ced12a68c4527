package services

import (
	"strings"
	"testing"
)

func TestGetBestCoordinatesFromResponse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantLng float64
		wantLat float64
		wantErr bool
	}{
		{
			name: "picks highest relevance",
			body: `{"features": [
				{"place_name": "Oslo gate, Bergen", "center": [5.32, 60.39], "relevance": 0.6},
				{"place_name": "Oslo, Norge", "center": [10.75, 59.91], "relevance": 1.0}
			]}`,
			wantLng: 10.75,
			wantLat: 59.91,
		},
		{
			name:    "single feature",
			body:    `{"features": [{"place_name": "Trondheim", "center": [10.39, 63.43], "relevance": 0.9}]}`,
			wantLng: 10.39,
			wantLat: 63.43,
		},
		{
			name:    "no results",
			body:    `{"features": []}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			body:    `{"features": [`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lng, lat, err := GetBestCoordinatesFromResponse(strings.NewReader(tt.body))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if lng != tt.wantLng || lat != tt.wantLat {
				t.Fatalf("got (%v, %v), want (%v, %v)", lng, lat, tt.wantLng, tt.wantLat)
			}
		})
	}
}
