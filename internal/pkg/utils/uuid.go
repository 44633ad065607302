/*
 * @author: sun977
 * @date: 2026.08.25
 * @description: uuid工具包
 * @func: 提供uuid生成和校验工具函数
 */

package utils

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"
)

// 标准UUID格式: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// GenerateUUID 生成UUID v4（基于随机数）
// 返回标准格式的UUID字符串，如：550e8400-e29b-41d4-a716-446655440000
func GenerateUUID() (string, error) {
	uuid := make([]byte, 16)
	_, err := rand.Read(uuid)
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	// 设置版本号（第7字节的高4位设为0100，表示版本4）
	uuid[6] = (uuid[6] & 0x0f) | 0x40

	// 设置变体（第9字节的高2位设为10）
	uuid[8] = (uuid[8] & 0x3f) | 0x80

	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		uuid[0:4], uuid[4:6], uuid[6:8], uuid[8:10], uuid[10:16]), nil
}

// GenerateShortUUID 生成短UUID（取前8位）
// 注意：短UUID存在碰撞风险，仅适用于对唯一性要求不高的场景
func GenerateShortUUID() (string, error) {
	uuid, err := GenerateUUID()
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(uuid, "-", "")[:8], nil
}

// IsValidUUID 校验UUID格式是否有效
func IsValidUUID(uuid string) bool {
	if uuid == "" {
		return false
	}
	return uuidRegex.MatchString(uuid)
}
