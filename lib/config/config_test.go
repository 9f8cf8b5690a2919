package config

import (
	"reflect"
	"testing"

	"github.com/tlandry-heckleandcode/ai-news/lib/logger"
)

func TestGet(t *testing.T) {
	t.Setenv("CFG_TEST_SET", "value")
	if got := Get("CFG_TEST_SET", "fallback"); got != "value" {
		t.Errorf("Get = %q", got)
	}
	if got := Get("CFG_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("Get default = %q", got)
	}
	t.Setenv("CFG_TEST_EMPTY", "")
	if got := Get("CFG_TEST_EMPTY", "fallback"); got != "fallback" {
		t.Errorf("empty value should fall back, got %q", got)
	}
}

func TestGetInt(t *testing.T) {
	t.Setenv("CFG_TEST_INT", " 42 ")
	if got := GetInt("CFG_TEST_INT", 7); got != 42 {
		t.Errorf("GetInt = %d", got)
	}
	t.Setenv("CFG_TEST_INT_BAD", "ten")
	if got := GetInt("CFG_TEST_INT_BAD", 7); got != 7 {
		t.Errorf("bad int should fall back, got %d", got)
	}
	if got := GetInt("CFG_TEST_INT_UNSET", 7); got != 7 {
		t.Errorf("unset int = %d", got)
	}
}

func TestGetFloat(t *testing.T) {
	t.Setenv("CFG_TEST_FLOAT", "0.75")
	if got := GetFloat("CFG_TEST_FLOAT", 0.8); got != 0.75 {
		t.Errorf("GetFloat = %g", got)
	}
	t.Setenv("CFG_TEST_FLOAT_BAD", "high")
	if got := GetFloat("CFG_TEST_FLOAT_BAD", 0.8); got != 0.8 {
		t.Errorf("bad float should fall back, got %g", got)
	}
}

func TestGetBool(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{" True ", true},
		{"false", false},
		{"1", false},
		{"yes", false},
	}
	for _, c := range cases {
		t.Setenv("CFG_TEST_BOOL", c.value)
		if got := GetBool("CFG_TEST_BOOL", false); got != c.want {
			t.Errorf("GetBool(%q) = %v, want %v", c.value, got, c.want)
		}
	}
	if !GetBool("CFG_TEST_BOOL_UNSET", true) {
		t.Error("unset bool should use the default")
	}
}

func TestGetList(t *testing.T) {
	fallback := []string{"a", "b"}

	t.Setenv("CFG_TEST_LIST", "Cursor AI, Claude Code ,, OpenAI ")
	want := []string{"Cursor AI", "Claude Code", "OpenAI"}
	if got := GetList("CFG_TEST_LIST", fallback); !reflect.DeepEqual(got, want) {
		t.Errorf("GetList = %v", got)
	}

	if got := GetList("CFG_TEST_LIST_UNSET", fallback); !reflect.DeepEqual(got, fallback) {
		t.Errorf("unset list = %v", got)
	}

	t.Setenv("CFG_TEST_LIST_BLANK", " , ,")
	if got := GetList("CFG_TEST_LIST_BLANK", fallback); !reflect.DeepEqual(got, fallback) {
		t.Errorf("all-blank list should fall back, got %v", got)
	}
}

func TestLogOpts(t *testing.T) {
	t.Setenv("LOG_PATH", "")
	t.Setenv("LOG_MAX_SIZE", "25")
	t.Setenv("LOG_LEVEL", "debug")

	opts := LogOpts("logs/default.log")
	if opts.Path != "logs/default.log" {
		t.Errorf("Path = %q", opts.Path)
	}
	if opts.MaxSizeMB != 25 {
		t.Errorf("MaxSizeMB = %d", opts.MaxSizeMB)
	}
	if opts.Level != logger.DEBUG {
		t.Errorf("Level = %v", opts.Level)
	}
}
