package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// containsLower 生成大小写无关的 LIKE 参数
func containsLower(s string) string {
	r := strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`)
	return "%" + r.Replace(strings.ToLower(strings.TrimSpace(s))) + "%"
}

// whereContains: LOWER(col) LIKE ?，空值不加条件；'!' 作转义符兼容三种方言
func whereContains(q *gorm.DB, col, v string) *gorm.DB {
	if strings.TrimSpace(v) == "" {
		return q
	}
	return q.Where("LOWER("+col+") LIKE ? ESCAPE '!'", containsLower(v))
}

func isNotFound(err error) bool { return errors.Is(err, gorm.ErrRecordNotFound) }

// IsDupKey 唯一约束冲突
func IsDupKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}
