package utils

import (
	"math"
	"testing"
)

func TestAtoiDefault(t *testing.T) {
	cases := []struct {
		s    string
		def  int
		want int
	}{
		// empty -> default
		{"", 10, 10},
		// valid ints
		{"42", 0, 42},
		{"-13", 1, -13},
		{"0012", 99, 12},
		// invalid -> default (no trim)
		{"x", 5, 5},
		{" 42", 7, 7},
		// overflow -> default
		{"999999999999999999999999", -1, -1},
	}

	for _, tc := range cases {
		if got := AtoiDefault(tc.s, tc.def); got != tc.want {
			t.Fatalf("AtoiDefault(%q, %d) = %d; want %d", tc.s, tc.def, got, tc.want)
		}
	}
}

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{1, 20, 1, 20},
		{0, 0, 1, 20},
		{-3, -1, 1, 20},
		{4, 5, 4, 5},
		{MaxPage + 1, MaxLimit + 1, MaxPage, MaxLimit},
		{math.MaxInt, math.MaxInt, MaxPage, MaxLimit},
	}
	for _, tc := range cases {
		p, l := NormalizePage(tc.page, tc.limit)
		if p != tc.wantPage || l != tc.wantLimit {
			t.Fatalf("NormalizePage(%d, %d) = (%d, %d); want (%d, %d)", tc.page, tc.limit, p, l, tc.wantPage, tc.wantLimit)
		}
	}
	if got := Offset(3, 10); got != 20 {
		t.Fatalf("Offset(3, 10) = %d; want 20", got)
	}
	if got := Offset(math.MaxInt, math.MaxInt); got != (MaxPage-1)*MaxLimit {
		t.Fatalf("Offset(MaxInt, MaxInt) = %d; want %d", got, (MaxPage-1)*MaxLimit)
	}
}

func TestPageSizesSumToTotal(t *testing.T) {
	for total := int64(0); total <= 25; total++ {
		for limit := 1; limit <= 7; limit++ {
			info := NewPageInfo(1, limit, total)
			if want := int((total + int64(limit) - 1) / int64(limit)); info.TotalPages != want {
				t.Fatalf("total=%d limit=%d: totalPages=%d; want %d", total, limit, info.TotalPages, want)
			}
			var sum int64
			for page := 1; page <= info.TotalPages; page++ {
				off := int64(Offset(page, limit))
				size := total - off
				if size > int64(limit) {
					size = int64(limit)
				}
				if size <= 0 {
					t.Fatalf("total=%d limit=%d: page %d is empty", total, limit, page)
				}
				sum += size
			}
			if sum != total {
				t.Fatalf("total=%d limit=%d: page sizes sum to %d", total, limit, sum)
			}
		}
	}
}

func TestNewPageInfo(t *testing.T) {
	cases := []struct {
		page, limit int
		total       int64
		want        PageInfo
	}{
		{1, 20, 0, PageInfo{Page: 1, Limit: 20, Total: 0, TotalPages: 0}},
		{2, 1, 3, PageInfo{Page: 2, Limit: 1, Total: 3, TotalPages: 3, HasNextPage: true, HasPrevPage: true}},
		{3, 1, 3, PageInfo{Page: 3, Limit: 1, Total: 3, TotalPages: 3, HasPrevPage: true}},
		{1, 20, 21, PageInfo{Page: 1, Limit: 20, Total: 21, TotalPages: 2, HasNextPage: true}},
		{0, 0, 40, PageInfo{Page: 1, Limit: 20, Total: 40, TotalPages: 2, HasNextPage: true}},
	}
	for _, tc := range cases {
		if got := NewPageInfo(tc.page, tc.limit, tc.total); got != tc.want {
			t.Fatalf("NewPageInfo(%d, %d, %d) = %+v; want %+v", tc.page, tc.limit, tc.total, got, tc.want)
		}
	}
}
