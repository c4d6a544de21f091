package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Role 会话角色（封闭枚举）
type Role int

const (
	RoleGuest Role = iota
	RoleCustomer
	RoleShopkeeper
	RoleAdmin
)

// String 返回角色名称
func (r Role) String() string {
	switch r {
	case RoleGuest:
		return "guest"
	case RoleCustomer:
		return "customer"
	case RoleShopkeeper:
		return "shopkeeper"
	case RoleAdmin:
		return "admin"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Valid 是否为已知角色
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleCustomer, RoleShopkeeper, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole 解析角色名称
func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "guest":
		return RoleGuest, nil
	case "customer":
		return RoleCustomer, nil
	case "shopkeeper":
		return RoleShopkeeper, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return RoleGuest, fmt.Errorf("unknown role %q", raw)
	}
}

// MarshalJSON 以字符串输出
func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON 从字符串解析
func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Value 以字符串写库
func (r Role) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %d", int(r))
	}
	return r.String(), nil
}

// Scan 从字符串读库
func (r *Role) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		raw = ""
	default:
		return fmt.Errorf("unsupported role value %T", value)
	}
	parsed, err := ParseRole(raw)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
