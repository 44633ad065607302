package utils

import (
	"strings"
	"testing"
)

// TestGenerateUUID 测试UUID v4生成
func TestGenerateUUID(t *testing.T) {
	uuid, err := GenerateUUID()
	if err != nil {
		t.Fatalf("GenerateUUID failed: %v", err)
	}

	if len(uuid) != 36 {
		t.Fatalf("Expected 36 characters, got %d: %s", len(uuid), uuid)
	}

	if !IsValidUUID(uuid) {
		t.Errorf("Generated UUID is not valid: %s", uuid)
	}

	// 版本号固定为4
	if uuid[14] != '4' {
		t.Errorf("Expected version 4 UUID, got %c in %s", uuid[14], uuid)
	}

	// 变体位为8/9/a/b
	if !strings.ContainsRune("89ab", rune(uuid[19])) {
		t.Errorf("Expected variant nibble in [89ab], got %c in %s", uuid[19], uuid)
	}
}

// TestGenerateUUID_Unique 测试生成结果不重复
func TestGenerateUUID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		uuid, err := GenerateUUID()
		if err != nil {
			t.Fatalf("GenerateUUID failed: %v", err)
		}
		if seen[uuid] {
			t.Fatalf("Duplicate UUID generated: %s", uuid)
		}
		seen[uuid] = true
	}
}

// TestGenerateShortUUID 测试短UUID长度
func TestGenerateShortUUID(t *testing.T) {
	short, err := GenerateShortUUID()
	if err != nil {
		t.Fatalf("GenerateShortUUID failed: %v", err)
	}
	if len(short) != 8 {
		t.Errorf("Expected 8 characters, got %d: %s", len(short), short)
	}
}

// TestIsValidUUID 测试UUID格式校验
func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"550e8400-e29b-41d4-a716-446655440000",
		"00000000-0000-0000-0000-000000000000",
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("Expected %s to be valid", uuid)
		}
	}

	invalid := []string{
		"",
		"550e8400e29b41d4a716446655440000",
		"550e8400-e29b-41d4-a716-44665544000g",
		"550e8400-e29b-41d4-a716",
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("Expected %s to be invalid", uuid)
		}
	}
}
