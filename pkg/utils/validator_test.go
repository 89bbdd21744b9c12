package utils

import (
	"errors"
	"testing"
	"time"
)

func TestIsNumeric(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"12345", true},
		{"0", true},
		{"", false},
		{"12a45", false},
		{" 123", false},
		{"-123", false},
	}
	for _, tc := range cases {
		if got := IsNumeric(tc.in); got != tc.want {
			t.Errorf("IsNumeric(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestValidateEmailFormat(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"a@x.com", true},
		{"first.last+tag@example.co", true},
		{"", true}, // 空邮箱由业务层决定是否允许
		{"  ", true},
		{"no-at-sign", false},
		{"a@b", false},
		{"@x.com", false},
	}
	for _, tc := range cases {
		if got := ValidateEmailFormat(tc.in); got != tc.want {
			t.Errorf("ValidateEmailFormat(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeKeyword(t *testing.T) {
	if got := NormalizeKeyword("  张三  "); got != "张三" {
		t.Errorf("NormalizeKeyword = %q, want %q", got, "张三")
	}
	// 组合字符归一化为预组合形式: e + U+0301 -> U+00E9
	if got := NormalizeKeyword("e\u0301"); got != "\u00e9" {
		t.Errorf("NormalizeKeyword = %q, want %q", got, "\u00e9")
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2024-09-01", "2024/09/01", "2024-9-1", "2024/9/1"} {
		got, err := ParseDate(in)
		if err != nil {
			t.Errorf("ParseDate(%q) failed: %v", in, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}

	for _, in := range []string{"", "not-a-date", "2024-13-40"} {
		if _, err := ParseDate(in); !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("ParseDate(%q) err = %v, want ErrInvalidDateFormat", in, err)
		}
	}
}

func TestHasAnyRole(t *testing.T) {
	cases := []struct {
		owned   []string
		allowed []string
		want    bool
	}{
		{[]string{"ADMIN"}, []string{"ADMIN", "SYSTEM_ADMIN"}, true},
		{[]string{"TEACHER", "SYSTEM_ADMIN"}, []string{"ADMIN", "SYSTEM_ADMIN"}, true},
		{[]string{"STUDENT"}, []string{"ADMIN"}, false},
		{nil, []string{"ADMIN"}, false},
		{[]string{"ADMIN"}, nil, false},
		{nil, nil, false},
	}
	for _, tc := range cases {
		if got := HasAnyRole(tc.owned, tc.allowed); got != tc.want {
			t.Errorf("HasAnyRole(%v, %v) = %v, want %v", tc.owned, tc.allowed, got, tc.want)
		}
	}
}

func TestCompareStringSlices(t *testing.T) {
	cases := []struct {
		a, b []string
		want bool
	}{
		{nil, nil, true},
		{nil, []string{}, true},
		{[]string{"ADMIN"}, []string{"ADMIN"}, true},
		{[]string{"ADMIN", "TEACHER"}, []string{"ADMIN", "TEACHER"}, true},
		{[]string{"ADMIN", "TEACHER"}, []string{"TEACHER", "ADMIN"}, false},
		{[]string{"ADMIN"}, []string{"ADMIN", "TEACHER"}, false},
	}
	for _, tc := range cases {
		if got := CompareStringSlices(tc.a, tc.b); got != tc.want {
			t.Errorf("CompareStringSlices(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}
