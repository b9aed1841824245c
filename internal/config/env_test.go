package config

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("FLAPPY_TEST_VALUE", "set")

	if got := GetEnv("FLAPPY_TEST_VALUE", "fallback"); got != "set" {
		t.Errorf("GetEnv() = %q, want %q", got, "set")
	}
	if got := GetEnv("FLAPPY_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetEnv() = %q, want %q", got, "fallback")
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("FLAPPY_TEST_TRUE", "true")
	t.Setenv("FLAPPY_TEST_GARBAGE", "maybe")

	if !GetEnvBool("FLAPPY_TEST_TRUE", false) {
		t.Error("GetEnvBool(true) = false, want true")
	}
	if !GetEnvBool("FLAPPY_TEST_GARBAGE", true) {
		t.Error("GetEnvBool(garbage) should return fallback")
	}
	if GetEnvBool("FLAPPY_TEST_MISSING", false) {
		t.Error("GetEnvBool(missing) should return fallback")
	}
}
