package catalog

import (
	"context"
	"testing"

	"github.com/jarcoal/httpmock"
)

func TestTransformShareURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"dropbox share link",
			"https://www.dropbox.com/s/abc/books.csv?dl=0",
			"https://www.dropbox.com/s/abc/books.csv?dl=1",
		},
		{
			"already direct",
			"https://www.dropbox.com/s/abc/books.csv?dl=1",
			"https://www.dropbox.com/s/abc/books.csv?dl=1",
		},
		{
			"plain url untouched",
			"https://example.com/books.csv",
			"https://example.com/books.csv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TransformShareURL(tt.in); got != tt.want {
				t.Errorf("TransformShareURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFetchCSV(t *testing.T) {
	httpmock.ActivateNonDefault(httpClient)
	defer httpmock.DeactivateAndReset()

	// The share link gets rewritten before the request goes out.
	httpmock.RegisterResponder("GET", "https://www.dropbox.com/s/abc/books.csv?dl=1",
		httpmock.NewStringResponder(200, "title,author\nDune,Frank Herbert\n"))

	body, err := FetchCSV(context.Background(), "https://www.dropbox.com/s/abc/books.csv?dl=0")
	if err != nil {
		t.Fatalf("FetchCSV: %v", err)
	}
	if body != "title,author\nDune,Frank Herbert\n" {
		t.Errorf("unexpected body: %q", body)
	}
}

func TestFetchCSVNon200(t *testing.T) {
	httpmock.ActivateNonDefault(httpClient)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://example.com/books.csv",
		httpmock.NewStringResponder(403, "forbidden"))

	if _, err := FetchCSV(context.Background(), "https://example.com/books.csv"); err == nil {
		t.Error("expected error for non-200 response")
	}
}
